package engine

import (
	"math"
	"sort"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	testWidth  = 1280
	testHeight = 720
)

func quietFireworks() Config {
	cfg := DefaultConfig()
	cfg.RocketChance = 0
	return cfg
}

var _ = Describe("Engine", func() {
	var e *Engine

	BeforeEach(func() {
		e = New(testWidth, testHeight, DefaultConfig(), WithSeed(7))
	})

	It("starts clear and empty", func() {
		Expect(e.Mode()).To(Equal(ModeClear))
		Expect(e.Len()).To(BeZero())
	})

	Describe("SetMode", func() {
		It("is idempotent for the active mode", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			before := e.Particles()
			first := before[0]
			x, y := first.Position()

			Expect(e.SetMode(ModeSnow)).To(Succeed())
			after := e.Particles()
			Expect(after).To(HaveLen(len(before)))
			Expect(after[0]).To(BeIdenticalTo(first))
			x2, y2 := after[0].Position()
			Expect(x2).To(Equal(x))
			Expect(y2).To(Equal(y))
		})

		It("replaces the population on a switch", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			Expect(e.SetMode(ModeRain)).To(Succeed())
			Expect(e.Particles()).To(HaveLen(DefaultRainCount))
			for _, p := range e.Particles() {
				Expect(p.Kind()).To(Equal(KindRaindrop))
			}
		})

		It("starts fireworks and clear empty", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			Expect(e.SetMode(ModeFireworks)).To(Succeed())
			Expect(e.Len()).To(BeZero())
			Expect(e.SetMode(ModeClear)).To(Succeed())
			Expect(e.Len()).To(BeZero())
		})

		It("rejects unknown modes and keeps the current one", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			err := e.SetMode(Mode(42))
			Expect(err).To(MatchError(ErrInvalidMode))
			Expect(e.Mode()).To(Equal(ModeRain))
			Expect(e.Len()).To(Equal(DefaultRainCount))
		})

		It("pre-warms snow across the surface", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			Expect(e.Frames()).To(BeEquivalentTo(DefaultSnowPrewarm))
			Expect(e.Stats().Spread()).To(BeNumerically(">=", 0.8))
		})

		It("pre-warms rain", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			Expect(e.Frames()).To(BeEquivalentTo(DefaultRainPrewarm))
		})
	})

	Describe("snow", func() {
		It("keeps snowflakes within their ranges", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			for _, p := range e.Particles() {
				f := p.(*Snowflake)
				Expect(f.VY).To(BeNumerically(">=", 0.5))
				Expect(f.VY).To(BeNumerically("<=", 1.5))
				Expect(f.Size).To(BeNumerically(">=", 1))
				Expect(f.Size).To(BeNumerically("<=", 3))
				Expect(f.Opacity).To(BeNumerically(">=", 0.2))
				Expect(f.Opacity).To(BeNumerically("<=", 0.8))
				Expect(f.Swing).To(BeNumerically(">=", 0))
				Expect(f.Swing).To(BeNumerically("<=", 2))
				Expect(f.SwaySpeed).To(BeNumerically(">=", 0.01))
				Expect(f.SwaySpeed).To(BeNumerically("<=", 0.06))
			}
		})

		It("recycles instead of destroying", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			for i := 0; i < 2000; i++ {
				e.Step()
				Expect(e.Len()).To(Equal(DefaultSnowCount))
			}
		})

		Context("with a single hand-placed flake", func() {
			var flake *Snowflake

			BeforeEach(func() {
				cfg := DefaultConfig()
				cfg.SnowCount = 0
				cfg.SnowPrewarm = 0
				e = New(testWidth, testHeight, cfg, WithSeed(1))
				Expect(e.SetMode(ModeSnow)).To(Succeed())
				flake = &Snowflake{Y: 100, VY: 1, Size: 2, Opacity: 0.5, SwaySpeed: 0.01}
				e.particles = append(e.particles, flake)
			})

			It("wraps from the right edge to zero", func() {
				flake.X = testWidth + 0.01
				flake.Swing = math.Pi / 2
				e.Step()
				Expect(flake.X).To(Equal(0.0))
			})

			It("wraps from the left edge to the width", func() {
				flake.X = -0.01
				flake.Swing = -math.Pi / 2
				e.Step()
				Expect(flake.X).To(Equal(float64(testWidth)))
			})

			It("re-enters above the top edge after falling off", func() {
				flake.X = 50
				flake.Y = testHeight - 0.5
				e.Step()
				Expect(flake.Y).To(Equal(-10.0))
				Expect(flake.X).To(BeNumerically(">=", 0))
				Expect(flake.X).To(BeNumerically("<=", testWidth))
			})

			It("accumulates sway instead of following a fixed path", func() {
				flake.X = 200
				flake.Swing = math.Pi / 2
				e.Step()
				e.Step()
				Expect(flake.X).To(BeNumerically(">", 201.9))
			})
		})
	})

	Describe("rain", func() {
		It("derives speed, length and opacity from one scale", func() {
			for _, scale := range []float64{0, 0.25, 0.5, 0.999} {
				d := RaindropFromScale(0, 0, scale)
				Expect(d.VY).To(BeNumerically("~", 6+8*scale, 1e-9))
				Expect(d.Length).To(BeNumerically("~", 5+25*scale, 1e-9))
				Expect(d.Opacity).To(BeNumerically("~", 0.05+0.5*scale, 1e-9))
			}
		})

		It("orders a random sample identically by length, speed and opacity", func() {
			drops := make([]*Raindrop, 0, 2000)
			for i := 0; i < 2000; i++ {
				drops = append(drops, e.newRaindrop())
			}
			sort.Slice(drops, func(i, j int) bool { return drops[i].Length < drops[j].Length })

			agree, pairs := 0, 0
			for i := 1; i < len(drops); i++ {
				pairs++
				a, b := drops[i-1], drops[i]
				if a.VY <= b.VY+1e-12 && a.Opacity <= b.Opacity+1e-12 {
					agree++
				}
			}
			Expect(float64(agree) / float64(pairs)).To(BeNumerically(">=", 0.95))
		})

		It("recycles raindrops to one length above the top", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			for i := 0; i < 1000; i++ {
				e.Step()
			}
			Expect(e.Len()).To(Equal(DefaultRainCount))

			d := e.Particles()[0].(*Raindrop)
			d.Y = testHeight + 1
			e.stepRaindrop(d)
			Expect(d.Y).To(Equal(-d.Length))
		})
	})

	Describe("fireworks", func() {
		BeforeEach(func() {
			e = New(testWidth, testHeight, quietFireworks(), WithSeed(3))
			Expect(e.SetMode(ModeFireworks)).To(Succeed())
		})

		It("detonates a rocket into fifty sparks near its apex", func() {
			rocket := &Rocket{X: 300, Y: testHeight, TX: 300, TY: 100, VY: -15, Hue: 120}
			e.particles = append(e.particles, rocket)

			steps := 0
			for e.Stats().Rockets > 0 {
				e.Step()
				steps++
				Expect(steps).To(BeNumerically("<=", 80))
			}

			stats := e.Stats()
			Expect(stats.Sparks).To(Equal(DefaultSparksPerRocket))
			Expect(stats.Detonations).To(BeEquivalentTo(1))
			for _, p := range e.Particles() {
				s := p.(*Spark)
				Expect(s.Hue).To(Equal(120.0))
				Expect(s.X).To(Equal(rocket.X))
				Expect(s.Y).To(Equal(rocket.Y))
				Expect(s.Opacity).To(Equal(1.0))
				Expect(s.Decay).To(BeNumerically(">=", 0.015))
				Expect(s.Decay).To(BeNumerically("<=", 0.035))
			}
		})

		It("removes a spark once it has faded", func() {
			e.particles = append(e.particles, &Spark{X: 10, Y: 10, Gravity: 0.1, Friction: 1, Opacity: 1, Decay: 0.02})

			for i := 0; i < 48; i++ {
				e.Step()
			}
			Expect(e.Len()).To(Equal(1))

			for i := 0; i < 3 && e.Len() > 0; i++ {
				e.Step()
			}
			Expect(e.Len()).To(BeZero())
		})

		It("does not skip neighbours when removing in place", func() {
			dying := &Spark{Friction: 1, Opacity: 0.01, Decay: 0.02}
			alive := &Spark{Friction: 1, Opacity: 1, Decay: 0.02}
			e.particles = append(e.particles, dying, alive, &Spark{Friction: 1, Opacity: 0.01, Decay: 0.02})

			e.Step()
			Expect(e.Particles()).To(HaveLen(1))
			Expect(alive.Opacity).To(BeNumerically("~", 0.98, 1e-9))
		})

		It("launches rockets toward the upper central band", func() {
			cfg := DefaultConfig()
			cfg.RocketChance = 1
			e = New(testWidth, testHeight, cfg, WithSeed(11))
			Expect(e.SetMode(ModeFireworks)).To(Succeed())

			for i := 0; i < 20; i++ {
				e.Step()
			}
			rockets := 0
			for _, p := range e.Particles() {
				r, ok := p.(*Rocket)
				if !ok {
					continue
				}
				rockets++
				Expect(r.TX).To(BeNumerically(">=", 0.1*testWidth))
				Expect(r.TX).To(BeNumerically("<", 0.9*testWidth))
				Expect(r.TY).To(BeNumerically(">=", 0))
				Expect(r.TY).To(BeNumerically("<", 0.5*testHeight))
				Expect(r.VX).To(BeZero())
			}
			Expect(rockets).To(BeNumerically(">", 0))
		})

		It("respects the particle cap", func() {
			cfg := quietFireworks()
			cfg.MaxParticles = 60
			e = New(testWidth, testHeight, cfg, WithSeed(5))
			Expect(e.SetMode(ModeFireworks)).To(Succeed())
			e.particles = append(e.particles,
				&Rocket{X: 100, Y: 100, VY: -1.1},
				&Rocket{X: 200, Y: 100, VY: -1.1},
			)

			e.Step()
			Expect(e.Len()).To(BeNumerically("<=", 60))
			Expect(e.Detonations()).To(BeEquivalentTo(2))
		})

		It("returns sparks to the pool when switching away", func() {
			e.particles = append(e.particles, &Rocket{X: 100, Y: 100, VY: -1.1})
			e.Step()
			Expect(e.Stats().Sparks).To(Equal(DefaultSparksPerRocket))

			Expect(e.SetMode(ModeClear)).To(Succeed())
			Expect(e.Len()).To(BeZero())
		})
	})

	Describe("Frame", func() {
		var canvas *recordingCanvas

		BeforeEach(func() {
			canvas = &recordingCanvas{}
		})

		It("only clears in clear mode", func() {
			e.Frame(canvas)
			Expect(canvas.clears).To(Equal(1))
			Expect(canvas.circles + canvas.rects + canvas.lines).To(BeZero())
		})

		It("draws one circle per snowflake", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			e.Frame(canvas)
			Expect(canvas.circles).To(Equal(DefaultSnowCount))
			for _, c := range canvas.colors {
				Expect(c.R).To(BeEquivalentTo(255))
				Expect(c.A).To(BeNumerically(">=", 51))
				Expect(c.A).To(BeNumerically("<=", 204))
			}
		})

		It("draws one line per raindrop", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			e.Frame(canvas)
			Expect(canvas.lines).To(Equal(DefaultRainCount))
		})

		It("draws sparks additively and restores normal blending", func() {
			e = New(testWidth, testHeight, quietFireworks(), WithSeed(9))
			Expect(e.SetMode(ModeFireworks)).To(Succeed())
			e.particles = append(e.particles, &Rocket{X: 100, Y: 300, VY: -1.1, Hue: 30})

			e.Frame(canvas)
			Expect(canvas.rects).To(Equal(1))

			canvas = &recordingCanvas{}
			e.Frame(canvas)
			Expect(canvas.circles).To(Equal(DefaultSparksPerRocket))
			Expect(canvas.blends).To(HaveLen(2 * DefaultSparksPerRocket))
			for i := 0; i < len(canvas.blends); i += 2 {
				Expect(canvas.blends[i]).To(Equal(BlendAdditive))
				Expect(canvas.blends[i+1]).To(Equal(BlendNormal))
			}
		})
	})

	Describe("Resize", func() {
		It("keeps mode and particles", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			first := e.Particles()[0]
			e.Resize(320, 200)
			Expect(e.Mode()).To(Equal(ModeRain))
			Expect(e.Particles()[0]).To(BeIdenticalTo(first))
			w, h := e.Size()
			Expect(w).To(Equal(320))
			Expect(h).To(Equal(200))
		})

		It("brings snowflakes back in range after shrinking", func() {
			Expect(e.SetMode(ModeSnow)).To(Succeed())
			e.Resize(320, 180)
			e.Step()
			for _, p := range e.Particles() {
				x, y := p.Position()
				Expect(x).To(BeNumerically(">=", 0))
				Expect(x).To(BeNumerically("<=", 320))
				Expect(y).To(BeNumerically(">=", snowRecycleY))
				Expect(y).To(BeNumerically("<=", 180))
			}
		})

		It("brings raindrops back in range once they pass the new height", func() {
			Expect(e.SetMode(ModeRain)).To(Succeed())
			e.Resize(320, 180)

			prevY := make(map[*Raindrop]float64)
			recycled := make(map[*Raindrop]bool)
			for _, p := range e.Particles() {
				prevY[p.(*Raindrop)] = p.(*Raindrop).Y
			}
			for i := 0; i < 60; i++ {
				e.Step()
				for _, p := range e.Particles() {
					d := p.(*Raindrop)
					if d.Y < prevY[d] {
						recycled[d] = true
					}
					prevY[d] = d.Y
					if recycled[d] {
						Expect(d.X).To(BeNumerically("<", 320))
					}
				}
			}
			for _, p := range e.Particles() {
				d := p.(*Raindrop)
				Expect(d.X).To(BeNumerically(">=", 0))
				Expect(d.X).To(BeNumerically("<", 320))
				Expect(d.Y).To(BeNumerically(">=", -d.Length))
				Expect(d.Y).To(BeNumerically("<=", 180))
			}
		})

		It("survives a zero-sized surface", func() {
			e.Resize(0, 0)
			canvas := &recordingCanvas{}
			for _, m := range Modes() {
				Expect(e.SetMode(m)).To(Succeed())
				for i := 0; i < 100; i++ {
					e.Frame(canvas)
				}
			}
			e.Resize(-5, -5)
			w, h := e.Size()
			Expect(w).To(BeZero())
			Expect(h).To(BeZero())
		})
	})
})
