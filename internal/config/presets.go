package config

import "sort"

// Presets are named engine tunings. Apply copies one onto a loaded config.
var Presets = map[string]*Config{
	"calm": {
		Mode: "snow",
		Engine: EngineConfig{
			SnowCount: 60, SnowPrewarm: 200, RainCount: 80, RainPrewarm: 100,
			RocketChance: 0.01, SparksPerRocket: 30, MaxParticles: 2000,
		},
	},
	"blizzard": {
		Mode: "snow",
		Engine: EngineConfig{
			SnowCount: 600, SnowPrewarm: 300, RainCount: 200, RainPrewarm: 100,
			RocketChance: 0.03, SparksPerRocket: 50, MaxParticles: 4000,
		},
	},
	"drizzle": {
		Mode: "rain",
		Engine: EngineConfig{
			SnowCount: 150, SnowPrewarm: 200, RainCount: 70, RainPrewarm: 100,
			RocketChance: 0.03, SparksPerRocket: 50, MaxParticles: 4000,
		},
	},
	"downpour": {
		Mode: "rain",
		Engine: EngineConfig{
			SnowCount: 150, SnowPrewarm: 200, RainCount: 700, RainPrewarm: 150,
			RocketChance: 0.03, SparksPerRocket: 50, MaxParticles: 4000,
		},
	},
	"gala": {
		Mode: "fireworks",
		Engine: EngineConfig{
			SnowCount: 150, SnowPrewarm: 200, RainCount: 200, RainPrewarm: 100,
			RocketChance: 0.08, SparksPerRocket: 80, MaxParticles: 6000,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset overwrites the mode and engine section of c with the named
// preset. It reports whether the preset exists.
func (c *Config) ApplyPreset(name string) bool {
	p := GetPreset(name)
	if p == nil {
		return false
	}
	c.Mode = p.Mode
	c.Engine = p.Engine
	return true
}
