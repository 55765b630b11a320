package selector

import (
	"errors"
	"testing"

	"github.com/san-kum/atmos/internal/engine"
)

func TestMapWMOCode(t *testing.T) {
	tests := []struct {
		code int
		want Condition
	}{
		{0, ConditionClear},
		{3, ConditionClear},
		{50, ConditionClear},
		{51, ConditionRain},
		{65, ConditionRain},
		{70, ConditionRain},
		{71, ConditionSnow},
		{86, ConditionSnow},
		{94, ConditionSnow},
		{95, ConditionStorm},
		{99, ConditionStorm},
	}
	for _, tt := range tests {
		if got := MapWMOCode(tt.code); got != tt.want {
			t.Errorf("code %d: expected %s, got %s", tt.code, tt.want, got)
		}
	}
}

func TestSeasonFor(t *testing.T) {
	tests := []struct {
		date string
		want Season
	}{
		{"2025-12-25", SeasonChristmas},
		{"2026-01-01", SeasonNewYear},
		{"2025-04-20", SeasonEaster},
		{"2025-01-15", SeasonWinter},
		{"2025-02-28", SeasonWinter},
		{"2025-12-01", SeasonWinter},
		{"2025-03-01", SeasonOrdinary},
		{"2025-06-15", SeasonOrdinary},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := SeasonFor(d); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.date, tt.want, got)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "2025-13-01", "12/25/2025"} {
		if _, err := ParseDate(s); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%q: expected ErrInvalidDate, got %v", s, err)
		}
	}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		season Season
		cond   Condition
		want   engine.Mode
	}{
		{SeasonNewYear, ConditionClear, engine.ModeFireworks},
		{SeasonNewYear, ConditionSnow, engine.ModeFireworks},
		{SeasonWinter, ConditionSnow, engine.ModeSnow},
		{SeasonOrdinary, ConditionRain, engine.ModeRain},
		{SeasonOrdinary, ConditionStorm, engine.ModeRain},
		{SeasonChristmas, ConditionClear, engine.ModeClear},
		{SeasonEaster, ConditionClear, engine.ModeClear},
	}
	for _, tt := range tests {
		if got := Select(tt.season, tt.cond); got != tt.want {
			t.Errorf("%s/%s: expected %s, got %s", tt.season, tt.cond, tt.want, got)
		}
	}
}

func TestParseCondition(t *testing.T) {
	c, err := ParseCondition(" Snow ")
	if err != nil || c != ConditionSnow {
		t.Errorf("expected snow, got %v (%v)", c, err)
	}
	if _, err := ParseCondition("hail"); !errors.Is(err, ErrUnknownCondition) {
		t.Errorf("expected ErrUnknownCondition, got %v", err)
	}
}

func TestBadge(t *testing.T) {
	s := State{Condition: ConditionClear, Day: false}
	if got := s.Badge(); got != "🌙" {
		t.Errorf("expected moon without temperature, got %q", got)
	}
	temp := 28.6
	s = State{Condition: ConditionSnow, TempF: &temp}
	if got := s.Badge(); got != "🌨️ 29°F" {
		t.Errorf("unexpected badge %q", got)
	}
}

func TestSeasonGreeting(t *testing.T) {
	if SeasonOrdinary.Greeting() != "" {
		t.Error("ordinary season has no greeting")
	}
	if SeasonNewYear.Greeting() != "Happy New Year" {
		t.Errorf("unexpected greeting %q", SeasonNewYear.Greeting())
	}
}
