package main

import (
	"fmt"
	"io"
	"log"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/atmos/internal/audio"
	"github.com/san-kum/atmos/internal/config"
	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/gui"
	"github.com/san-kum/atmos/internal/selector"
	"github.com/san-kum/atmos/internal/viz"
	"github.com/san-kum/atmos/internal/weather"
	"github.com/spf13/cobra"
)

// newPoller builds the weather poller with any forced condition or
// simulated date already applied.
func newPoller(cfg *config.Config) (*selector.Poller, error) {
	client := weather.NewClient(cfg.Location.BaseURL)
	p := selector.NewPoller(client, cfg.Location.Latitude, cfg.Location.Longitude, cfg.Location.Interval)

	if cfg.Location.SimulatedDate != "" {
		date, err := selector.ParseDate(cfg.Location.SimulatedDate)
		if err != nil {
			return nil, err
		}
		p.SimulateDate(date)
	}
	if weatherName != "" {
		cond, err := selector.ParseCondition(weatherName)
		if err != nil {
			return nil, err
		}
		p.Force(cond)
	}
	return p, nil
}

// newEngine builds a clear engine of the given size and returns the
// configured startup mode alongside it.
func newEngine(cfg *config.Config, width, height int) (*engine.Engine, engine.Mode, error) {
	mode, err := cfg.ParseMode()
	if err != nil {
		return nil, mode, err
	}
	return engine.New(width, height, cfg.ToEngine(), engine.WithSeed(cfg.Seed)), mode, nil
}

// setupLogging sends the standard logger to the configured file. With
// quiet set and no file, logs are dropped so they don't tear the screen.
func setupLogging(cfg *config.Config, quiet bool) (io.Closer, error) {
	if cfg.Live.Log != "" {
		f, err := tea.LogToFile(cfg.Live.Log, "atmos")
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		return f, nil
	}
	if quiet {
		log.SetOutput(io.Discard)
	}
	return io.NopCloser(nil), nil
}

// startSound opens the audio stream. Failure is logged and the view runs
// silent.
func startSound(cfg *config.Config) *audio.Processor {
	if !cfg.Live.Sound {
		return nil
	}
	proc := audio.NewProcessor()
	if err := proc.Start(); err != nil {
		log.Printf("sound disabled: %v", err)
		return nil
	}
	return proc
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	viz.SetTheme(cfg.Live.Theme)
	eng, mode, err := newEngine(cfg, viz.DefaultColumns*viz.CellWidth, viz.DefaultRows*viz.CellHeight)
	if err != nil {
		return err
	}
	if err := eng.SetMode(mode); err != nil {
		return err
	}
	poller, err := newPoller(cfg)
	if err != nil {
		return err
	}

	opts := viz.Options{
		Interval: cfg.FrameInterval(),
		Auto:     cfg.Live.Auto,
		GIFPath:  gifPath,
	}
	if proc := startSound(cfg); proc != nil {
		defer proc.Stop()
		opts.Ambience = proc
	}

	ctx, cancel := signalContext()
	defer cancel()

	return viz.Run(eng, opts, func(p *tea.Program) {
		go poller.Run(ctx, func(st selector.State) {
			p.Send(viz.StateMsg(st))
		})
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	eng, mode, err := newEngine(cfg, 0, 0)
	if err != nil {
		return err
	}
	poller, err := newPoller(cfg)
	if err != nil {
		return err
	}

	app := gui.NewApp(eng, cfg.Live.FPS, cfg.Live.Auto)
	app.ShowHUD = hud
	app.Interactive = interactive
	app.StartMode = mode
	if proc := startSound(cfg); proc != nil {
		defer proc.Stop()
		app.Ambience = proc
	}

	ctx, cancel := signalContext()
	defer cancel()
	go poller.Run(ctx, app.Publish)

	return app.Run(ctx)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
