package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"bare": {
		Window: WindowConfig{
			Width: DefaultWindowWidth, Height: DefaultWindowHeight,
			Title: DefaultWindowTitle, FPS: DefaultFPS,
		},
		GravityY:    DefaultGravityY,
		TraceLength: DefaultTraceLength,
		DefaultMass: DefaultMass,
	},
	"long": {
		Window: WindowConfig{
			Width: DefaultWindowWidth, Height: DefaultWindowHeight,
			Title: DefaultWindowTitle, FPS: DefaultFPS,
		},
		GravityY:    DefaultGravityY,
		TraceLength: DefaultTraceLength,
		DefaultMass: 5,
		Balls: []BallConfig{
			{Mass: 5, X: 440, Y: 300},
			{Mass: 5, X: 480, Y: 300},
			{Mass: 5, X: 520, Y: 300},
			{Mass: 5, X: 560, Y: 300},
			{Mass: 5, X: 600, Y: 300},
			{Mass: 5, X: 640, Y: 300},
			{Mass: 5, X: 680, Y: 300},
			{Mass: 5, X: 720, Y: 300},
		},
	},
	"heavy": {
		Window: WindowConfig{
			Width: DefaultWindowWidth, Height: DefaultWindowHeight,
			Title: DefaultWindowTitle, FPS: DefaultFPS,
		},
		GravityY:    DefaultGravityY,
		TraceLength: DefaultTraceLength,
		DefaultMass: 40,
		Balls: []BallConfig{
			{Mass: 40, X: 500, Y: 300},
			{Mass: 60, X: 620, Y: 300},
		},
	},
	"lowgrav": {
		Window: WindowConfig{
			Width: DefaultWindowWidth, Height: DefaultWindowHeight,
			Title: DefaultWindowTitle, FPS: DefaultFPS,
		},
		GravityY:    -60,
		TraceLength: DefaultTraceLength,
		DefaultMass: DefaultMass,
		Balls: []BallConfig{
			{Mass: 10, X: 500, Y: 300},
			{Mass: 15, X: 600, Y: 300},
			{Mass: 20, X: 650, Y: 300},
		},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
