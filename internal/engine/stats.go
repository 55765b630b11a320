package engine

import "math"

// Stats is a read-only summary of the engine for status lines and metrics.
type Stats struct {
	Frame         uint64
	Mode          Mode
	Width, Height int
	Population    int
	Snowflakes    int
	Raindrops     int
	Rockets       int
	Sparks        int
	Detonations   uint64
	MinY, MaxY    float64
}

// Spread is the fraction of the surface height covered by particle
// y-positions. It is zero for an empty collection or a zero-height surface.
func (s Stats) Spread() float64 {
	if s.Population == 0 || s.Height <= 0 {
		return 0
	}
	return (s.MaxY - s.MinY) / float64(s.Height)
}

func (e *Engine) Stats() Stats {
	w, h := e.Size()
	s := Stats{
		Frame:       e.frame,
		Mode:        e.mode,
		Width:       w,
		Height:      h,
		Population:  len(e.particles),
		Detonations: e.detonations,
		MinY:        math.Inf(1),
		MaxY:        math.Inf(-1),
	}
	for _, p := range e.particles {
		switch p.Kind() {
		case KindSnowflake:
			s.Snowflakes++
		case KindRaindrop:
			s.Raindrops++
		case KindRocket:
			s.Rockets++
		case KindSpark:
			s.Sparks++
		}
		_, y := p.Position()
		s.MinY = math.Min(s.MinY, y)
		s.MaxY = math.Max(s.MaxY, y)
	}
	if s.Population == 0 {
		s.MinY, s.MaxY = 0, 0
	}
	return s
}
