// Package audio plays a soft ambience that follows the engine: a filtered
// pad for snow, noise hiss for rain and a short burst per firework.
package audio

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/atmos/internal/engine"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	popLength = SampleRate / 8
	maxPops   = 6
)

type Processor struct {
	Stream *portaudio.Stream

	// Callback-only state
	Time        float64
	FilterState [2]float64   // Stereo LPF state
	noiseState  [2]float64   // Hiss LPF state
	DelayLine   [2][]float64 // Stereo Delay Buffer (Reverb-ish)
	DelayHead   int
	rng         *rand.Rand
	pops        []int // samples left per active burst
	padLevel    float64
	hissLevel   float64

	// Targets written by the render loop
	mu          sync.Mutex
	padTarget   float64
	hissTarget  float64
	pendingPops int
	detonations uint64
	seen        bool

	Active bool
}

func NewProcessor() *Processor {
	// 0.6 second delay for larger space
	delayLen := int(float64(SampleRate) * 0.6)

	return &Processor{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		rng:       rand.New(rand.NewSource(1)),
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}
	log.Printf("audio started: %d Hz stereo", SampleRate)

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
}

// Update is called once per rendered frame with the engine stats.
func (a *Processor) Update(s engine.Stats) {
	pad, hiss := 0.15, 0.0
	switch s.Mode {
	case engine.ModeSnow:
		pad = 0.6 + 0.4*math.Min(float64(s.Snowflakes)/engine.DefaultSnowCount, 1)
	case engine.ModeRain:
		pad = 0.25
		hiss = math.Min(float64(s.Raindrops)/engine.DefaultRainCount, 1.5)
	case engine.ModeFireworks:
		pad = 0.35
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.padTarget, a.hissTarget = pad, hiss
	if a.seen && s.Detonations > a.detonations {
		a.pendingPops += int(s.Detonations - a.detonations)
	}
	a.detonations, a.seen = s.Detonations, true
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// Process is the portaudio output callback.
func (a *Processor) Process(out [][]float32) {
	a.mu.Lock()
	padTarget, hissTarget := a.padTarget, a.hissTarget
	for ; a.pendingPops > 0; a.pendingPops-- {
		if len(a.pops) < maxPops {
			a.pops = append(a.pops, popLength)
		}
	}
	a.mu.Unlock()

	// Gm7 add9 pad: G2, Bb2, D3, F3, A3
	freqs := []float64{98.00, 116.54, 146.83, 174.61, 220.00}
	dt := 1.0 / float64(SampleRate)
	vol := 0.25

	for i := 0; i < len(out[0]); i++ {
		// Slow morphing so mode switches fade
		a.padLevel = a.padLevel*0.99995 + padTarget*0.00005
		a.hissLevel = a.hissLevel*0.9999 + hissTarget*0.0001

		sampleL, sampleR := 0.0, 0.0
		for j, f := range freqs {
			oscL := triangle(a.Time * (f * 0.999))
			oscR := triangle(a.Time * (f * 1.001))
			g := 1.0 / float64(len(freqs))
			lfo := math.Sin(a.Time*0.2 + float64(j))
			sampleL += oscL * g * (0.7 + 0.3*lfo)
			sampleR += oscR * g * (0.7 + 0.3*lfo)
		}
		var padL, padR float64
		padL, a.FilterState[0] = lpf(sampleL, 600, dt, a.FilterState[0])
		padR, a.FilterState[1] = lpf(sampleR, 600, dt, a.FilterState[1])

		var hissL, hissR float64
		hissL, a.noiseState[0] = lpf(a.rng.Float64()*2-1, 2500, dt, a.noiseState[0])
		hissR, a.noiseState[1] = lpf(a.rng.Float64()*2-1, 2500, dt, a.noiseState[1])

		pop := 0.0
		kept := a.pops[:0]
		for _, left := range a.pops {
			env := float64(left) / popLength
			pop += (a.rng.Float64()*2 - 1) * env * env * env
			if left > 1 {
				kept = append(kept, left-1)
			}
		}
		a.pops = kept

		dryL := padL*a.padLevel + hissL*a.hissLevel*0.8 + pop*0.5
		dryR := padR*a.padLevel + hissR*a.hissLevel*0.8 + pop*0.5

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]
		mixL := dryL + delayL*0.3 + delayR*0.1
		mixR := dryR + delayR*0.3 + delayL*0.1
		a.DelayLine[0][a.DelayHead] = mixL * 0.6
		a.DelayLine[1][a.DelayHead] = mixR * 0.6
		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(mixL * vol)
		out[1][i] = float32(mixR * vol)

		a.Time += dt
	}
}
