package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/atmos/internal/automation"
	"github.com/san-kum/atmos/internal/config"
	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/export"
	"github.com/san-kum/atmos/internal/metrics"
	"github.com/san-kum/atmos/internal/render"
	"github.com/san-kum/atmos/internal/selector"
	"github.com/san-kum/atmos/internal/sim"
	"github.com/san-kum/atmos/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logFile    string
	modeName   string
	// Live and gui view
	frameRate   int
	auto        bool
	sound       bool
	theme       string
	weatherName string
	dateStr     string
	gifPath     string
	hud         bool
	interactive bool
	// Offline runs
	frames       int
	width        int
	height       int
	scenarioFile string
	outPath      string
	numRuns      int
	// classify
	wmoCode int
	// sweep
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
)

// main registers the atmos commands. Without a subcommand the terminal view
// starts.
func main() {
	rootCmd := &cobra.Command{
		Use:          "atmos",
		Short:        "weather and holiday particle ambience",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atmos", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")
	addViewFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "status bar theme")
	rootCmd.Flags().StringVar(&gifPath, "gif", "", "path for GIF recordings (default atmos.gif)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "particle ambience in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addViewFlags(liveCmd)
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "status bar theme")
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "path for GIF recordings (default atmos.gif)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "transparent click-through desktop overlay",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addViewFlags(guiCmd)
	guiCmd.Flags().BoolVar(&hud, "hud", true, "show the status line")
	guiCmd.Flags().BoolVar(&interactive, "interactive", false, "accept focus and keys instead of passing clicks through")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "show the season, condition and mode the selector picks",
		Args:  cobra.NoArgs,
		RunE:  classify,
	}
	classifyCmd.Flags().StringVar(&dateStr, "date", "", "simulate a date (YYYY-MM-DD)")
	classifyCmd.Flags().IntVar(&wmoCode, "code", 0, "use this WMO weather code instead of fetching")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run the engine offline and store the population series",
		Args:  cobra.NoArgs,
		RunE:  record,
	}
	addRunFlags(recordCmd)
	recordCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	recordCmd.Flags().StringVar(&gifPath, "gif", "", "also render the run to this GIF")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one frame to SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "output", "o", "atmos.svg", "output file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the engine over parallel seeds",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	addRunFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one engine parameter",
		Args:  cobra.NoArgs,
		RunE:  sweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&paramName, "param", "snow_count", fmt.Sprintf("parameter %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 500, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run population",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tSNOW\tRAIN\tROCKETS\tSPARKS\tCAP")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%d\t%d\n", name, p.Mode,
					p.Engine.SnowCount, p.Engine.RainCount, p.Engine.RocketChance,
					p.Engine.SparksPerRocket, p.Engine.MaxParticles)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, classifyCmd, recordCmd, snapshotCmd, benchCmd, sweepCmd,
		listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&modeName, "mode", "", "startup mode when not automatic")
	cmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().BoolVar(&auto, "auto", true, "follow weather and calendar")
	cmd.Flags().BoolVar(&sound, "sound", false, "play ambient sound")
	cmd.Flags().StringVar(&weatherName, "weather", "", "force a condition (clear, rain, snow, storm)")
	cmd.Flags().StringVar(&dateStr, "date", "", "simulate a date (YYYY-MM-DD)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&modeName, "mode", "", "mode to run (default snow)")
	cmd.Flags().IntVar(&frames, "frames", 600, "frames to simulate")
	cmd.Flags().IntVar(&width, "width", 1280, "surface width in pixels")
	cmd.Flags().IntVar(&height, "height", 720, "surface height in pixels")
}

// loadConfig layers the config file, the preset and then any changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" && !cfg.ApplyPreset(preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("mode") {
		cfg.Mode = modeName
	}
	if flags.Changed("log") {
		cfg.Live.Log = logFile
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Live.FPS = frameRate
	}
	if flags.Lookup("auto") != nil && flags.Changed("auto") {
		cfg.Live.Auto = auto
	}
	if flags.Lookup("sound") != nil && flags.Changed("sound") {
		cfg.Live.Sound = sound
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Live.Theme = theme
	}
	if flags.Lookup("date") != nil && flags.Changed("date") {
		cfg.Location.SimulatedDate = dateStr
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func classify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	poller, err := newPoller(cfg)
	if err != nil {
		return err
	}

	var st selector.State
	if cmd.Flags().Changed("code") {
		if cfg.Location.SimulatedDate == "" {
			poller.SimulateDate(time.Time{})
		}
		st = poller.Force(selector.MapWMOCode(wmoCode))
	} else {
		ctx, cancel := signalContext()
		defer cancel()
		st = poller.Refresh(ctx)
	}

	fmt.Printf("date:      %s\n", st.Date.Format(selector.DateLayout))
	fmt.Printf("season:    %s\n", st.Season)
	if g := st.Season.Greeting(); g != "" {
		fmt.Printf("greeting:  %s\n", g)
	}
	fmt.Printf("condition: %s\n", st.Condition)
	fmt.Printf("badge:     %s\n", st.Badge())
	fmt.Printf("mode:      %s\n", st.Mode())
	return nil
}

// runMode picks the mode for offline runs. Without a flag, file or preset
// it is snow.
func runMode(cmd *cobra.Command, cfg *config.Config) (engine.Mode, error) {
	if !cmd.Flags().Changed("mode") && configFile == "" && preset == "" {
		return engine.ModeSnow, nil
	}
	return cfg.ParseMode()
}

func record(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ec := cfg.ToEngine()
	s := sim.New()
	for _, m := range metrics.Default(ec.FrameInterval) {
		s.AddMetric(m)
	}

	meta := storage.RunMetadata{Seed: cfg.Seed, Width: width, Height: height, Preset: preset}

	var sc *automation.Scenario
	if scenarioFile != "" {
		sc, err = automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
		if sc.Width == 0 && sc.Height == 0 {
			sc.Width, sc.Height = width, height
		}
		if sc.Seed == 0 {
			sc.Seed = cfg.Seed
		}
		meta.Seed, meta.Width, meta.Height = sc.Seed, sc.Width, sc.Height
		meta.Scenario = sc.Name
		meta.Mode = "scenario"
	}

	var rec *export.GIFRecorder
	if gifPath != "" {
		canvas := &render.Follower{Raster: render.NewRaster(meta.Width, meta.Height)}
		rec = export.NewGIFRecorder(2)
		full := false
		s.SetCanvas(canvas)
		s.AddObserver(sim.ObserverFunc(func(e *engine.Engine) {
			canvas.Engine = e
			if !rec.Add(canvas.Image()) && !full {
				log.Printf("gif: %d frame limit reached, dropping the rest", rec.MaxFrames)
				full = true
			}
		}))
	}

	var result *sim.Result
	if sc != nil {
		fmt.Printf("running scenario %s (%d frames)...\n", sc.Name, sc.TotalFrames())
		result, err = automation.RunScenario(ctx, sc, s, ec)
	} else {
		mode, merr := runMode(cmd, cfg)
		if merr != nil {
			return merr
		}
		meta.Mode = mode.String()
		fmt.Printf("running %s for %d frames...\n", mode, frames)
		result, err = s.Run(ctx, sim.Config{
			Width: width, Height: height, Mode: mode,
			Frames: frames, Seed: cfg.Seed, Engine: ec,
		})
	}
	if err != nil {
		return err
	}

	meta.Frames = len(result.Samples)
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v (%.0f frames/s)\n", result.Elapsed, result.FPS())
	fmt.Printf("run id: %s\n", runID)
	printMetrics(result.Metrics)

	if rec != nil {
		if err := rec.Save(gifPath); err != nil {
			return err
		}
		fmt.Printf("gif: %s (%d frames)\n", gifPath, rec.Len())
	}
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(m) {
		fmt.Printf("  %s: %.4f\n", name, m[name])
	}
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := runMode(cmd, cfg)
	if err != nil {
		return err
	}

	e := engine.New(width, height, cfg.ToEngine(), engine.WithSeed(cfg.Seed))
	if err := e.SetMode(mode); err != nil {
		return err
	}
	for i := 1; i < frames; i++ {
		e.Step()
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := export.Snapshot(e).WriteTo(f); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s, frame %d, %d particles)\n", outPath, mode, e.Frames(), e.Len())
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := runMode(cmd, cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	ec := cfg.ToEngine()
	ens := sim.NewEnsemble(numRuns, cfg.Seed, func() []sim.Metric {
		return metrics.Default(ec.FrameInterval)
	})

	fmt.Printf("benchmarking %s: %d runs x %d frames at %dx%d\n\n", mode, numRuns, frames, width, height)
	start := time.Now()
	results, err := ens.Run(ctx, sim.Config{
		Width: width, Height: height, Mode: mode,
		Frames: frames, Seed: cfg.Seed, Engine: ec,
	})
	if err != nil {
		return err
	}
	wall := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSEED\tTIME\tFRAMES/SEC\tPEAK\tMEAN")
	total := 0
	for i, r := range results {
		total += len(r.Samples)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.0f\t%.1f\n", i, cfg.Seed+int64(i),
			r.Elapsed.Round(time.Microsecond), r.FPS(),
			r.Metrics["peak_population"], r.Metrics["mean_population"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ntotal: %d frames in %v (%.0f frames/s)\n", total, wall.Round(time.Millisecond), float64(total)/wall.Seconds())
	return nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	mode, err := runMode(cmd, cfg)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	ec := cfg.ToEngine()
	sw := &automation.ParameterSweep{
		Mode:      mode,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Frames:    frames,
		Width:     width,
		Height:    height,
		Seed:      cfg.Seed,
	}
	results, err := automation.RunSweep(ctx, sw, ec, func() []sim.Metric {
		return metrics.Default(ec.FrameInterval)
	})
	if err != nil {
		return err
	}

	if len(results) == 0 {
		return nil
	}
	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "\n", paramName)
	for _, n := range names {
		fmt.Fprint(w, "\t", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.3f", r.ParamValue)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tTIME\tFRAMES\tSIZE\tSEED\tPRESET")

	for _, run := range runs {
		p := run.Preset
		if run.Scenario != "" {
			p = run.Scenario
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%d\t%s\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			run.Seed,
			p,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", series.Len())

	plots := []struct {
		caption string
		data    []float64
	}{
		{"population", series.Population},
		{"snowflakes", series.Snowflakes},
		{"raindrops", series.Raindrops},
		{"rockets", series.Rockets},
		{"sparks", series.Sparks},
	}
	for i, p := range plots {
		if i > 0 && allZero(p.data) {
			continue
		}
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func allZero(data []float64) bool {
	for _, v := range data {
		if v != 0 {
			return false
		}
	}
	return true
}
