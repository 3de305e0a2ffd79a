package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendula/internal/config"
	"github.com/san-kum/pendula/internal/gui"
	"github.com/san-kum/pendula/internal/session"
	"github.com/san-kum/pendula/internal/storage"
	"github.com/san-kum/pendula/internal/trace"
	"github.com/san-kum/pendula/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	duration   float64
	dt         float64
	export     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendula",
		Short: "interactive pendulum chain toy",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendula", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the chain headless and plot the tail ball",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0/60.0, "timestep")
	runCmd.Flags().BoolVar(&export, "export", false, "save the recording to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved recordings",
		RunE:  listRuns,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			return viz.Run(cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, tuiCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	cfg.StartRunning = true

	sim := session.New(cfg)
	steps := int(duration / dt)

	rec := &storage.Recording{
		Times:  make([]float64, 0, steps),
		Frames: make([][]trace.Point, 0, steps),
	}
	tailHeights := make([]float64, 0, steps)

	start := time.Now()
	for i := 0; i < steps; i++ {
		sim.Update(dt)

		frame := make([]trace.Point, 0, sim.Chain.Len())
		for _, n := range sim.Chain.Nodes() {
			p := n.Position()
			frame = append(frame, trace.Point{X: p.X, Y: p.Y})
		}
		rec.Times = append(rec.Times, sim.Elapsed())
		rec.Frames = append(rec.Frames, frame)
		tailHeights = append(tailHeights, sim.Chain.Tail().Position().Y)
	}
	elapsed := time.Since(start)

	fmt.Printf("simulated %.1fs (%d steps) in %v\n\n", duration, steps, elapsed)
	if len(tailHeights) > 1 {
		graph := asciigraph.Plot(tailHeights,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("tail ball height"))
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALL\tMASS\tX\tY")
	for i, n := range sim.Chain.Nodes() {
		if i == 0 {
			continue
		}
		p := n.Position()
		fmt.Fprintf(w, "%d\t%.0f\t%.1f\t%.1f\n", i, n.Mass, p.X, p.Y)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nkinetic energy: %.2f\n", sim.KineticEnergy())

	if !export {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	masses := make([]float64, 0, sim.Chain.Len())
	for _, n := range sim.Chain.Nodes() {
		masses = append(masses, n.Mass)
	}
	runID, err := st.Save(dt, duration, cfg.GravityY, masses, rec)
	if err != nil {
		return err
	}
	fmt.Printf("saved recording: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tBALLS\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Masses)-1,
			run.Steps,
		)
	}
	return w.Flush()
}
