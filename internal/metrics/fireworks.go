package metrics

import "github.com/san-kum/atmos/internal/engine"

// DetonationRate counts rocket detonations per simulated second.
type DetonationRate struct {
	name          string
	frameInterval float64
	first, last   uint64
	samples       int
}

func NewDetonationRate(frameInterval float64) *DetonationRate {
	if frameInterval <= 0 {
		frameInterval = engine.DefaultFrameInterval
	}
	return &DetonationRate{name: "detonations_per_sec", frameInterval: frameInterval}
}

func (d *DetonationRate) Name() string { return d.name }

func (d *DetonationRate) Observe(s engine.Stats) {
	if d.samples == 0 {
		d.first = s.Detonations
	}
	d.last = s.Detonations
	d.samples++
}

func (d *DetonationRate) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.last-d.first) / (float64(d.samples) * d.frameInterval)
}

func (d *DetonationRate) Reset() {
	d.first, d.last = 0, 0
	d.samples = 0
}

// PeakSparks is the largest number of live sparks in one frame.
type PeakSparks struct {
	name string
	peak int
}

func NewPeakSparks() *PeakSparks { return &PeakSparks{name: "peak_sparks"} }

func (p *PeakSparks) Name() string { return p.name }

func (p *PeakSparks) Observe(s engine.Stats) {
	if s.Sparks > p.peak {
		p.peak = s.Sparks
	}
}

func (p *PeakSparks) Value() float64 { return float64(p.peak) }

func (p *PeakSparks) Reset() { p.peak = 0 }
