package engine

const (
	DefaultSnowCount       = 150
	DefaultSnowPrewarm     = 200
	DefaultRainCount       = 200
	DefaultRainPrewarm     = 100
	DefaultRocketChance    = 0.03
	DefaultSparksPerRocket = 50
	DefaultMaxParticles    = 4000
	DefaultFrameInterval   = 1.0 / 60.0
)

// Config holds population sizes and rates. Zero MaxParticles disables the cap.
type Config struct {
	SnowCount       int
	SnowPrewarm     int
	RainCount       int
	RainPrewarm     int
	RocketChance    float64
	SparksPerRocket int
	MaxParticles    int
	FrameInterval   float64 // simulated seconds per step
}

func DefaultConfig() Config {
	return Config{
		SnowCount:       DefaultSnowCount,
		SnowPrewarm:     DefaultSnowPrewarm,
		RainCount:       DefaultRainCount,
		RainPrewarm:     DefaultRainPrewarm,
		RocketChance:    DefaultRocketChance,
		SparksPerRocket: DefaultSparksPerRocket,
		MaxParticles:    DefaultMaxParticles,
		FrameInterval:   DefaultFrameInterval,
	}
}

// normalize replaces negative counts with zero and a non-positive frame
// interval with the default.
func (c Config) normalize() Config {
	for _, v := range []*int{&c.SnowCount, &c.SnowPrewarm, &c.RainCount, &c.RainPrewarm, &c.SparksPerRocket, &c.MaxParticles} {
		if *v < 0 {
			*v = 0
		}
	}
	if c.RocketChance < 0 {
		c.RocketChance = 0
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	return c
}
