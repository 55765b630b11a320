package selector

import (
	"fmt"
	"time"
)

type Season uint8

const (
	SeasonOrdinary Season = iota
	SeasonWinter
	SeasonChristmas
	SeasonNewYear
	SeasonEaster
)

var seasonNames = [...]string{
	SeasonOrdinary:  "ordinary",
	SeasonWinter:    "winter",
	SeasonChristmas: "christmas",
	SeasonNewYear:   "newyear",
	SeasonEaster:    "easter",
}

func (s Season) String() string {
	if int(s) < len(seasonNames) {
		return seasonNames[s]
	}
	return fmt.Sprintf("season(%d)", s)
}

// Greeting is the display title for holidays, empty otherwise.
func (s Season) Greeting() string {
	switch s {
	case SeasonChristmas:
		return "Christmas Day"
	case SeasonEaster:
		return "Resurrection Sunday"
	case SeasonNewYear:
		return "Happy New Year"
	}
	return ""
}

// SeasonFor classifies a calendar date. Easter is pinned to April 20.
func SeasonFor(t time.Time) Season {
	month, day := t.Month(), t.Day()
	switch {
	case month == time.December && day == 25:
		return SeasonChristmas
	case month == time.January && day == 1:
		return SeasonNewYear
	case month == time.April && day == 20:
		return SeasonEaster
	case month == time.December || month == time.January || month == time.February:
		return SeasonWinter
	}
	return SeasonOrdinary
}

const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
