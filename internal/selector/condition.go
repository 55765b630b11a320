package selector

import (
	"fmt"
	"strings"
)

type Condition uint8

const (
	ConditionClear Condition = iota
	ConditionRain
	ConditionSnow
	ConditionStorm
)

var conditionNames = [...]string{
	ConditionClear: "clear",
	ConditionRain:  "rain",
	ConditionSnow:  "snow",
	ConditionStorm: "storm",
}

func (c Condition) String() string {
	if int(c) < len(conditionNames) {
		return conditionNames[c]
	}
	return fmt.Sprintf("condition(%d)", c)
}

func ParseCondition(s string) (Condition, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range conditionNames {
		if n == name {
			return Condition(i), nil
		}
	}
	return ConditionClear, fmt.Errorf("%w: %q", ErrUnknownCondition, s)
}

// MapWMOCode buckets a WMO weather interpretation code.
func MapWMOCode(code int) Condition {
	switch {
	case code >= 95:
		return ConditionStorm
	case code >= 71:
		return ConditionSnow
	case code >= 51:
		return ConditionRain
	default:
		return ConditionClear
	}
}

// Icon is the badge glyph for the condition.
func (c Condition) Icon(day bool) string {
	switch c {
	case ConditionRain:
		return "🌧️"
	case ConditionSnow:
		return "🌨️"
	case ConditionStorm:
		return "⚡"
	case ConditionClear:
		if day {
			return "☀️"
		}
		return "🌙"
	}
	return ""
}
