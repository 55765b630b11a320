package sim

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/san-kum/atmos/internal/engine"
)

func testConfig(mode engine.Mode, frames int) Config {
	return Config{Width: 320, Height: 240, Mode: mode, Frames: frames, Seed: 7, Engine: engine.DefaultConfig()}
}

func TestSimulatorRun(t *testing.T) {
	result, err := New().Run(context.Background(), testConfig(engine.ModeSnow, 30))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Samples) != 30 {
		t.Errorf("expected 30 samples, got %d", len(result.Samples))
	}
	if len(result.Times) != 30 {
		t.Errorf("expected 30 times, got %d", len(result.Times))
	}
	for _, p := range result.Population() {
		if p != engine.DefaultSnowCount {
			t.Fatalf("expected constant population %d, got %v", engine.DefaultSnowCount, p)
		}
	}
	// Samples continue the pre-warm clock.
	if result.Samples[0].Frame != engine.DefaultSnowPrewarm+1 {
		t.Errorf("expected first sample at frame %d, got %d", engine.DefaultSnowPrewarm+1, result.Samples[0].Frame)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero frames", Config{Width: 10, Height: 10, Frames: 0}},
		{"negative frames", Config{Width: 10, Height: 10, Frames: -1}},
		{"negative size", Config{Width: -1, Height: 10, Frames: 5}},
		{"bad mode", Config{Width: 10, Height: 10, Frames: 5, Mode: engine.Mode(9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New().Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(s engine.Stats) {
	t.count++
	t.sum += float64(s.Population)
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetricsAndObservers(t *testing.T) {
	sim := New()
	metric := &testMetric{}
	sim.AddMetric(metric)

	frames := 0
	sim.AddObserver(ObserverFunc(func(e *engine.Engine) { frames++ }))

	result, err := sim.Run(context.Background(), testConfig(engine.ModeRain, 10))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := result.Metrics["test"]; got != engine.DefaultRainCount {
		t.Errorf("expected mean population %d, got %f", engine.DefaultRainCount, got)
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
	if frames != 10 {
		t.Errorf("expected 10 observer calls, got %d", frames)
	}
}

type countingCanvas struct{ clears, circles int }

func (c *countingCanvas) Clear()                                              { c.clears++ }
func (c *countingCanvas) SetBlend(engine.BlendMode)                           {}
func (c *countingCanvas) FillCircle(x, y, r float64, _ color.NRGBA)           { c.circles++ }
func (c *countingCanvas) FillRect(x, y, w, h float64, _ color.NRGBA)          {}
func (c *countingCanvas) StrokeLine(x0, y0, x1, y1, w float64, _ color.NRGBA) {}

func TestSimulatorCanvas(t *testing.T) {
	sim := New()
	c := &countingCanvas{}
	sim.SetCanvas(c)

	if _, err := sim.Run(context.Background(), testConfig(engine.ModeSnow, 4)); err != nil {
		t.Fatal(err)
	}
	if c.clears != 4 {
		t.Errorf("expected 4 clears, got %d", c.clears)
	}
	if c.circles != 4*engine.DefaultSnowCount {
		t.Errorf("expected %d circles, got %d", 4*engine.DefaultSnowCount, c.circles)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := New().Run(ctx, testConfig(engine.ModeClear, 100))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result == nil || len(result.Samples) != 0 {
		t.Error("expected empty partial result")
	}
}

func TestSimulatorAdvanceAcrossModes(t *testing.T) {
	sim := New()
	e := engine.New(200, 200, engine.DefaultConfig(), engine.WithSeed(1))
	result := sim.Begin()

	if err := sim.Advance(context.Background(), e, 5, result); err != nil {
		t.Fatal(err)
	}
	if err := e.SetMode(engine.ModeSnow); err != nil {
		t.Fatal(err)
	}
	if err := sim.Advance(context.Background(), e, 5, result); err != nil {
		t.Fatal(err)
	}
	sim.Finish(result)

	if len(result.Samples) != 10 {
		t.Fatalf("expected 10 samples, got %d", len(result.Samples))
	}
	if result.Samples[4].Population != 0 || result.Samples[9].Population != engine.DefaultSnowCount {
		t.Errorf("unexpected populations %d, %d", result.Samples[4].Population, result.Samples[9].Population)
	}
}

func TestEnsemble(t *testing.T) {
	ens := NewEnsemble(4, 100, func() []Metric { return []Metric{&testMetric{}} })
	results, err := ens.Run(context.Background(), testConfig(engine.ModeFireworks, 120))
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if len(r.Samples) != 120 {
			t.Errorf("run %d: expected 120 samples, got %d", i, len(r.Samples))
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("run %d: metric missing", i)
		}
	}

	if _, err := ens.Run(context.Background(), Config{Frames: 0}); err == nil {
		t.Error("expected ensemble to surface config errors")
	}
}
