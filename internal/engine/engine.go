package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine owns the particle collection for one surface.
type Engine struct {
	cfg           Config
	rng           *rand.Rand
	width, height float64
	mode          Mode
	particles     []Particle
	born          []Particle
	sparks        *sparkPool
	frame         uint64
	detonations   uint64
}

type Option func(*Engine)

// WithSeed makes particle parameters reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New creates an engine in clear mode with an empty collection.
func New(width, height int, cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg.normalize(),
		mode:   ModeClear,
		sparks: newSparkPool(),
	}
	e.Resize(width, height)
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Mode() Mode { return e.mode }

// Size returns the surface dimensions in device pixels.
func (e *Engine) Size() (int, int) { return int(e.width), int(e.height) }

// Particles exposes the live collection for inspection. Callers must not
// modify it; sparks are recycled once they die.
func (e *Engine) Particles() []Particle { return e.particles }

func (e *Engine) Len() int { return len(e.particles) }

// Frames returns how many physics steps have run, pre-warm included.
func (e *Engine) Frames() uint64 { return e.frame }

// Detonations returns how many rockets have exploded since creation.
func (e *Engine) Detonations() uint64 { return e.detonations }

// Resize updates the surface dimensions only. Particles left outside the new
// bounds come back through wraparound and recycling.
func (e *Engine) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	e.width, e.height = float64(width), float64(height)
}

// SetMode switches the active mode. Setting the active mode again is a no-op;
// an unknown mode is rejected and the current one kept.
func (e *Engine) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}
	if m == e.mode {
		return nil
	}
	e.mode = m
	e.discard()

	switch m {
	case ModeSnow:
		e.particles = make([]Particle, 0, e.cfg.SnowCount)
		for i := 0; i < e.cfg.SnowCount; i++ {
			e.particles = append(e.particles, e.newSnowflake())
		}
		e.prewarm(e.cfg.SnowPrewarm)
	case ModeRain:
		e.particles = make([]Particle, 0, e.cfg.RainCount)
		for i := 0; i < e.cfg.RainCount; i++ {
			e.particles = append(e.particles, e.newRaindrop())
		}
		e.prewarm(e.cfg.RainPrewarm)
	case ModeFireworks, ModeClear:
		// fireworks populate from the live loop
	}
	return nil
}

// Step advances physics by one frame without drawing.
func (e *Engine) Step() {
	e.advance(nil)
}

// Frame clears c, advances physics by one frame and draws every live
// particle. Clear mode only clears.
func (e *Engine) Frame(c Canvas) {
	c.Clear()
	e.advance(c)
}

func (e *Engine) prewarm(steps int) {
	for i := 0; i < steps; i++ {
		e.advance(nil)
	}
}

// discard drops the whole collection, returning sparks to the pool.
func (e *Engine) discard() {
	for i, p := range e.particles {
		if s, ok := p.(*Spark); ok {
			e.sparks.Put(s)
		}
		e.particles[i] = nil
	}
	e.particles = nil
}

// elapsed is the global simulated time in seconds.
func (e *Engine) elapsed() float64 {
	return float64(e.frame) * e.cfg.FrameInterval
}

func (e *Engine) advance(c Canvas) {
	switch e.mode {
	case ModeSnow:
		e.advanceSnow(c)
	case ModeRain:
		e.advanceRain(c)
	case ModeFireworks:
		e.advanceFireworks(c)
	case ModeClear:
	}
	e.frame++
}

func unknownParticle(p Particle) string {
	return fmt.Sprintf("engine: unexpected particle %T", p)
}
