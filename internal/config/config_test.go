package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/atmos/internal/engine"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "clear" {
		t.Errorf("expected mode clear, got %s", cfg.Mode)
	}
	if cfg.Live.FPS != DefaultFPS {
		t.Errorf("expected fps %d, got %d", DefaultFPS, cfg.Live.FPS)
	}
	if cfg.Location.Interval != time.Hour {
		t.Errorf("expected hourly refresh, got %v", cfg.Location.Interval)
	}
	if got := cfg.ToEngine(); got != engine.DefaultConfig() {
		t.Errorf("default engine config mismatch: %+v", got)
	}
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atmos.yaml")
	cfg := DefaultConfig()
	cfg.Mode = "rain"
	cfg.Engine.RainCount = 321
	cfg.Location.SimulatedDate = "2024-12-25"
	cfg.Location.Interval = 15 * time.Minute

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Engine.RainCount != 321 {
		t.Errorf("expected rain count 321, got %d", loaded.Engine.RainCount)
	}
	if loaded.Location.Interval != 15*time.Minute {
		t.Errorf("expected 15m interval, got %v", loaded.Location.Interval)
	}
	m, err := loaded.ParseMode()
	if err != nil || m != engine.ModeRain {
		t.Errorf("expected rain, got %v (%v)", m, err)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseMode_Invalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Mode = "hail"
	if _, err := cfg.ParseMode(); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Live.FPS = 30
	if got := cfg.FrameInterval(); got != time.Second/30 {
		t.Errorf("expected %v, got %v", time.Second/30, got)
	}
	cfg.Live.FPS = 0
	if got := cfg.FrameInterval(); got != time.Second/DefaultFPS {
		t.Errorf("expected default interval, got %v", got)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("blizzard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Engine.SnowCount != 600 {
		t.Errorf("expected snow count 600, got %d", cfg.Engine.SnowCount)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestPresetModesParse(t *testing.T) {
	for name, p := range Presets {
		if _, err := engine.ParseMode(p.Mode); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.ApplyPreset("gala") {
		t.Fatal("expected gala preset")
	}
	if cfg.Mode != "fireworks" || cfg.Engine.SparksPerRocket != 80 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Live.FPS != DefaultFPS {
		t.Error("preset should leave live settings alone")
	}
	if cfg.ApplyPreset("nope") {
		t.Error("expected false for unknown preset")
	}
}
