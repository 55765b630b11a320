package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/atmos/internal/engine"
)

// Simulator drives an engine headlessly, sampling stats after every frame.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	canvas    engine.Canvas
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetCanvas makes every frame draw to c. Without a canvas frames only step.
func (s *Simulator) SetCanvas(c engine.Canvas) { s.canvas = c }

// Run builds an engine from cfg, switches it to cfg.Mode and runs
// cfg.Frames frames.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	e := engine.New(cfg.Width, cfg.Height, cfg.Engine, engine.WithSeed(cfg.Seed))
	if err := e.SetMode(cfg.Mode); err != nil {
		return nil, err
	}

	result := s.Begin()
	err := s.Advance(ctx, e, cfg.Frames, result)
	s.Finish(result)
	return result, err
}

// Begin resets metrics and returns an empty result for Advance.
func (s *Simulator) Begin() *Result {
	for _, m := range s.metrics {
		m.Reset()
	}
	return &Result{
		Samples: make([]engine.Stats, 0),
		Times:   make([]float64, 0),
		Metrics: make(map[string]float64),
	}
}

// Advance runs frames more frames of e, appending samples to result. Mode
// changes between calls are the caller's business.
func (s *Simulator) Advance(ctx context.Context, e *engine.Engine, frames int, result *Result) error {
	interval := e.Config().FrameInterval
	start := time.Now()
	defer func() { result.Elapsed += time.Since(start) }()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if s.canvas != nil {
			e.Frame(s.canvas)
		} else {
			e.Step()
		}

		st := e.Stats()
		for _, m := range s.metrics {
			m.Observe(st)
		}
		for _, obs := range s.observers {
			obs.OnFrame(e)
		}
		result.Samples = append(result.Samples, st)
		result.Times = append(result.Times, float64(st.Frame)*interval)
	}
	return nil
}

func (s *Simulator) Finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if cfg.Width < 0 || cfg.Height < 0 {
		return fmt.Errorf("surface size must not be negative, got %dx%d", cfg.Width, cfg.Height)
	}
	if !cfg.Mode.Valid() {
		return fmt.Errorf("%w: %d", engine.ErrInvalidMode, cfg.Mode)
	}
	return nil
}
