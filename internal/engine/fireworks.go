package engine

import "math"

const (
	rocketLaunchVY  = -15.0
	rocketGravity   = 0.2
	detonationVY    = -1.0
	sparkGravity    = 0.1
	sparkFriction   = 0.95
	sparkMinSpeed   = 1.0
	sparkSpeedRange = 5.0
	sparkMinDecay   = 0.015
	sparkDecayRange = 0.02
)

// newRocket launches from the bottom edge toward a point in the upper half,
// kept inside the central 10-90% band.
func (e *Engine) newRocket() *Rocket {
	tx := e.rng.Float64()*e.width*0.8 + e.width*0.1
	ty := e.rng.Float64() * e.height * 0.5
	return &Rocket{
		X:   tx,
		Y:   e.height,
		TX:  tx,
		TY:  ty,
		VX:  0,
		VY:  rocketLaunchVY,
		Hue: e.rng.Float64() * 360,
	}
}

func (e *Engine) newSpark(x, y, hue float64) *Spark {
	angle := e.rng.Float64() * math.Pi * 2
	speed := e.rng.Float64()*sparkSpeedRange + sparkMinSpeed
	s := e.sparks.Get()
	*s = Spark{
		X:        x,
		Y:        y,
		VX:       math.Cos(angle) * speed,
		VY:       math.Sin(angle) * speed,
		Gravity:  sparkGravity,
		Friction: sparkFriction,
		Opacity:  1,
		Decay:    e.rng.Float64()*sparkDecayRange + sparkMinDecay,
		Hue:      hue,
	}
	return s
}

func stepRocket(p *Rocket) {
	p.X += p.VX
	p.Y += p.VY
	p.VY += rocketGravity
}

func stepSpark(p *Spark) {
	p.X += p.VX
	p.Y += p.VY
	p.VY += p.Gravity
	p.VX *= p.Friction
	p.VY *= p.Friction
	p.Opacity -= p.Decay
}

// room reports how many more particles fit under MaxParticles.
func (e *Engine) room(live int) int {
	if e.cfg.MaxParticles == 0 {
		return math.MaxInt
	}
	if n := e.cfg.MaxParticles - live; n > 0 {
		return n
	}
	return 0
}

func (e *Engine) detonate(r *Rocket, live int) {
	n := e.cfg.SparksPerRocket
	if free := e.room(live); free < n {
		n = free
	}
	for i := 0; i < n; i++ {
		e.born = append(e.born, e.newSpark(r.X, r.Y, r.Hue))
	}
	e.detonations++
}

// advanceFireworks steps every rocket and spark in a single retain pass.
// Sparks born from a detonation join the collection after the pass, so they
// are first stepped on the next frame.
func (e *Engine) advanceFireworks(c Canvas) {
	if e.rng.Float64() < e.cfg.RocketChance && e.room(len(e.particles)) > 0 {
		e.particles = append(e.particles, e.newRocket())
	}

	kept := e.particles[:0]
	for _, p := range e.particles {
		switch p := p.(type) {
		case *Rocket:
			stepRocket(p)
			if c != nil {
				drawRocket(c, p)
			}
			if p.VY >= detonationVY {
				e.detonate(p, len(e.particles)+len(e.born))
				continue
			}
			kept = append(kept, p)
		case *Spark:
			stepSpark(p)
			if p.Opacity <= 0 {
				e.sparks.Put(p)
				continue
			}
			if c != nil {
				drawSpark(c, p)
			}
			kept = append(kept, p)
		default:
			panic(unknownParticle(p))
		}
	}
	for i := len(kept); i < len(e.particles); i++ {
		e.particles[i] = nil
	}

	e.particles = append(kept, e.born...)
	for i := range e.born {
		e.born[i] = nil
	}
	e.born = e.born[:0]
}
