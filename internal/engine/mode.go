package engine

import (
	"fmt"
	"strings"
)

// Mode is the ambient visual state the engine renders.
type Mode uint8

const (
	ModeClear Mode = iota
	ModeSnow
	ModeRain
	ModeFireworks
)

var modeNames = [...]string{
	ModeClear:     "clear",
	ModeSnow:      "snow",
	ModeRain:      "rain",
	ModeFireworks: "fireworks",
}

// Modes lists every valid mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeClear, ModeSnow, ModeRain, ModeFireworks}
}

func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode converts a mode name (case-insensitive) into a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeClear, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, uint8(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
