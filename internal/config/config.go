package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/atmos/internal/engine"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60
	DefaultTheme     = "minimal"
	DefaultLatitude  = 37.6190
	DefaultLongitude = -84.5786
	DefaultInterval  = time.Hour
	DefaultBaseURL   = "https://api.open-meteo.com"
)

type Config struct {
	Mode     string         `yaml:"mode"`
	Seed     int64          `yaml:"seed"`
	Engine   EngineConfig   `yaml:"engine"`
	Live     LiveConfig     `yaml:"live"`
	Location LocationConfig `yaml:"location"`
}

type EngineConfig struct {
	SnowCount       int     `yaml:"snow_count"`
	SnowPrewarm     int     `yaml:"snow_prewarm"`
	RainCount       int     `yaml:"rain_count"`
	RainPrewarm     int     `yaml:"rain_prewarm"`
	RocketChance    float64 `yaml:"rocket_chance"`
	SparksPerRocket int     `yaml:"sparks_per_rocket"`
	MaxParticles    int     `yaml:"max_particles"`
}

type LiveConfig struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Auto  bool   `yaml:"auto"`
	Sound bool   `yaml:"sound"`
	Log   string `yaml:"log"`
}

// LocationConfig drives the weather poller. SimulatedDate (YYYY-MM-DD)
// pins the calendar used for season selection.
type LocationConfig struct {
	Latitude      float64       `yaml:"latitude"`
	Longitude     float64       `yaml:"longitude"`
	Interval      time.Duration `yaml:"interval"`
	BaseURL       string        `yaml:"base_url"`
	SimulatedDate string        `yaml:"simulated_date"`
}

func DefaultConfig() *Config {
	ec := engine.DefaultConfig()
	return &Config{
		Mode: engine.ModeClear.String(),
		Engine: EngineConfig{
			SnowCount:       ec.SnowCount,
			SnowPrewarm:     ec.SnowPrewarm,
			RainCount:       ec.RainCount,
			RainPrewarm:     ec.RainPrewarm,
			RocketChance:    ec.RocketChance,
			SparksPerRocket: ec.SparksPerRocket,
			MaxParticles:    ec.MaxParticles,
		},
		Live: LiveConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Auto:  true,
		},
		Location: LocationConfig{
			Latitude:  DefaultLatitude,
			Longitude: DefaultLongitude,
			Interval:  DefaultInterval,
			BaseURL:   DefaultBaseURL,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseMode returns the configured startup mode.
func (c *Config) ParseMode() (engine.Mode, error) {
	if c.Mode == "" {
		return engine.ModeClear, nil
	}
	return engine.ParseMode(c.Mode)
}

// ToEngine converts the engine section into engine parameters.
func (c *Config) ToEngine() engine.Config {
	ec := engine.DefaultConfig()
	ec.SnowCount = c.Engine.SnowCount
	ec.SnowPrewarm = c.Engine.SnowPrewarm
	ec.RainCount = c.Engine.RainCount
	ec.RainPrewarm = c.Engine.RainPrewarm
	ec.RocketChance = c.Engine.RocketChance
	ec.SparksPerRocket = c.Engine.SparksPerRocket
	ec.MaxParticles = c.Engine.MaxParticles
	return ec
}

// FrameInterval is the wall-clock delay between live frames.
func (c *Config) FrameInterval() time.Duration {
	fps := c.Live.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}
