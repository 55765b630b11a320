package sim

import (
	"time"

	"github.com/san-kum/atmos/internal/engine"
)

type Metric interface {
	Name() string
	Observe(s engine.Stats)
	Value() float64
	Reset()
}

// Observer sees the engine after every frame. It must not mutate it.
type Observer interface {
	OnFrame(e *engine.Engine)
}

type ObserverFunc func(e *engine.Engine)

func (f ObserverFunc) OnFrame(e *engine.Engine) { f(e) }

type Config struct {
	Width, Height int
	Mode          engine.Mode
	Frames        int
	Seed          int64
	Engine        engine.Config
}

type Result struct {
	Samples []engine.Stats
	// Times holds simulated seconds for each sample.
	Times   []float64
	Metrics map[string]float64
	Elapsed time.Duration
}

// Population extracts the per-frame particle count.
func (r *Result) Population() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = float64(s.Population)
	}
	return out
}

// FPS is frames simulated per wall-clock second.
func (r *Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(len(r.Samples)) / r.Elapsed.Seconds()
}
