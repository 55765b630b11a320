package engine

import "math"

const snowRecycleY = -10

func (e *Engine) newSnowflake() *Snowflake {
	return &Snowflake{
		X:         e.rng.Float64() * e.width,
		Y:         e.rng.Float64() * e.height,
		VY:        e.rng.Float64()*1 + 0.5,
		Size:      e.rng.Float64()*2 + 1,
		Opacity:   e.rng.Float64()*0.6 + 0.2,
		Swing:     e.rng.Float64() * 2,
		SwaySpeed: e.rng.Float64()*0.05 + 0.01,
	}
}

// stepSnowflake adds the sway to x every frame, so flakes drift rather than
// trace a fixed sine path.
func (e *Engine) stepSnowflake(p *Snowflake, t float64) {
	p.X += math.Sin(t*p.SwaySpeed + p.Swing)
	p.Y += p.VY

	if p.X > e.width {
		p.X = 0
	}
	if p.X < 0 {
		p.X = e.width
	}
	if p.Y > e.height {
		p.Y = snowRecycleY
		p.X = e.rng.Float64() * e.width
	}
}

func (e *Engine) advanceSnow(c Canvas) {
	t := e.elapsed()
	for _, p := range e.particles {
		switch p := p.(type) {
		case *Snowflake:
			e.stepSnowflake(p, t)
			if c != nil {
				drawSnowflake(c, p)
			}
		default:
			panic(unknownParticle(p))
		}
	}
}
