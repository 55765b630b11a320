package selector

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/atmos/internal/engine"
)

// State is a snapshot of everything the selection rules look at.
type State struct {
	Condition Condition
	Season    Season
	Day       bool
	Date      time.Time
	// TempF is nil until the first successful weather fetch.
	TempF *float64
}

// Select applies the mode rules. Holidays other than new year's day do not
// change the particles.
func Select(season Season, cond Condition) engine.Mode {
	switch {
	case season == SeasonNewYear:
		return engine.ModeFireworks
	case cond == ConditionSnow:
		return engine.ModeSnow
	case cond == ConditionRain, cond == ConditionStorm:
		return engine.ModeRain
	}
	return engine.ModeClear
}

func (s State) Mode() engine.Mode { return Select(s.Season, s.Condition) }

// Badge renders the condition icon and rounded temperature, e.g. "🌨️ 28°F".
func (s State) Badge() string {
	icon := s.Condition.Icon(s.Day)
	if s.TempF == nil {
		return icon
	}
	return fmt.Sprintf("%s %d°F", icon, int(math.Round(*s.TempF)))
}
