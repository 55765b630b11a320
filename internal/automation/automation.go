package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/san-kum/atmos/internal/engine"
	"github.com/san-kum/atmos/internal/selector"
	"github.com/san-kum/atmos/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of modes played on one engine.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Width       int            `yaml:"width"`
	Height      int            `yaml:"height"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep sets the mode and runs Frames frames. The mode comes from
// Mode when given, otherwise from a WMO weather code and an optional date
// through the selector rules. Width/Height resize the surface first.
type ScenarioStep struct {
	Mode   string `yaml:"mode"`
	Code   *int   `yaml:"code"`
	Date   string `yaml:"date"`
	Frames int    `yaml:"frames"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	if sc.Width < 0 || sc.Height < 0 {
		return fmt.Errorf("scenario %q: negative surface size", sc.Name)
	}
	for i, step := range sc.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("step %d: frames must be positive", i+1)
		}
		if _, err := step.ResolveMode(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// ResolveMode returns the engine mode the step asks for.
func (st ScenarioStep) ResolveMode() (engine.Mode, error) {
	if st.Mode != "" {
		return engine.ParseMode(st.Mode)
	}
	cond := selector.ConditionClear
	if st.Code != nil {
		cond = selector.MapWMOCode(*st.Code)
	}
	season := selector.SeasonOrdinary
	if st.Date != "" {
		d, err := selector.ParseDate(st.Date)
		if err != nil {
			return engine.ModeClear, err
		}
		season = selector.SeasonFor(d)
	}
	return selector.Select(season, cond), nil
}

// TotalFrames is the sum of all step lengths.
func (sc *Scenario) TotalFrames() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Frames
	}
	return n
}

// RunScenario plays every step on a single engine and returns one result
// covering the whole run.
func RunScenario(ctx context.Context, scenario *Scenario, s *sim.Simulator, cfg engine.Config) (*sim.Result, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	e := engine.New(scenario.Width, scenario.Height, cfg, engine.WithSeed(scenario.Seed))
	result := s.Begin()
	defer s.Finish(result)

	for i, step := range scenario.Steps {
		mode, err := step.ResolveMode()
		if err != nil {
			return result, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Printf("Running step %d/%d: %s for %d frames\n", i+1, len(scenario.Steps), mode, step.Frames)

		if step.Width > 0 || step.Height > 0 {
			w, h := e.Size()
			if step.Width > 0 {
				w = step.Width
			}
			if step.Height > 0 {
				h = step.Height
			}
			e.Resize(w, h)
		}
		if err := e.SetMode(mode); err != nil {
			return result, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := s.Advance(ctx, e, step.Frames, result); err != nil {
			return result, fmt.Errorf("step %d run: %w", i+1, err)
		}
	}

	return result, nil
}

// ParameterSweep runs one engine parameter across a range of values
type ParameterSweep struct {
	Mode      engine.Mode
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Width     int
	Height    int
	Seed      int64
}

// SweepResult holds the run metrics for one parameter value
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the names SetParam accepts.
var SweepParams = []string{"snow_count", "rain_count", "rocket_chance", "sparks_per_rocket", "max_particles"}

// SetParam sets a named engine parameter. Counts are truncated.
func SetParam(cfg *engine.Config, name string, v float64) error {
	switch name {
	case "snow_count":
		cfg.SnowCount = int(v)
	case "rain_count":
		cfg.RainCount = int(v)
	case "rocket_chance":
		cfg.RocketChance = v
	case "sparks_per_rocket":
		cfg.SparksPerRocket = int(v)
	case "max_particles":
		cfg.MaxParticles = int(v)
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}

// RunSweep executes a parameter sweep. newMetrics supplies fresh metrics
// for every value.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base engine.Config, newMetrics func() []sim.Metric) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		cfg := base
		if err := SetParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		s := sim.New()
		if newMetrics != nil {
			for _, m := range newMetrics() {
				s.AddMetric(m)
			}
		}
		result, err := s.Run(ctx, sim.Config{
			Width:  sweep.Width,
			Height: sweep.Height,
			Mode:   sweep.Mode,
			Frames: sweep.Frames,
			Seed:   sweep.Seed,
			Engine: cfg,
		})
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{ParamValue: paramVal, Metrics: result.Metrics})
		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
