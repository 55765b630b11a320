package engine

// RaindropFromScale derives every raindrop attribute from one scale draw.
func RaindropFromScale(x, y, scale float64) Raindrop {
	return Raindrop{
		X:       x,
		Y:       y,
		Scale:   scale,
		VY:      6 + scale*8,
		Length:  5 + scale*25,
		Opacity: 0.05 + scale*0.5,
	}
}

func (e *Engine) newRaindrop() *Raindrop {
	scale := e.rng.Float64()
	d := RaindropFromScale(e.rng.Float64()*e.width, e.rng.Float64()*e.height, scale)
	return &d
}

func (e *Engine) stepRaindrop(p *Raindrop) {
	p.Y += p.VY
	if p.Y > e.height {
		p.Y = -p.Length
		p.X = e.rng.Float64() * e.width
	}
}

func (e *Engine) advanceRain(c Canvas) {
	for _, p := range e.particles {
		switch p := p.(type) {
		case *Raindrop:
			e.stepRaindrop(p)
			if c != nil {
				drawRaindrop(c, p)
			}
		default:
			panic(unknownParticle(p))
		}
	}
}
