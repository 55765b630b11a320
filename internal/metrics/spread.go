package metrics

import "github.com/san-kum/atmos/internal/engine"

// Spread averages the vertical coverage of the surface over frames with
// at least one particle.
type Spread struct {
	name    string
	sum     float64
	samples int
}

func NewSpread() *Spread { return &Spread{name: "spread"} }

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(st engine.Stats) {
	if st.Population == 0 {
		return
	}
	s.sum += st.Spread()
	s.samples++
}

func (s *Spread) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Spread) Reset() {
	s.sum = 0
	s.samples = 0
}
