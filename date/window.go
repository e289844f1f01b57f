package date

import (
	"fmt"
	"strings"
	"time"
)

// Window is a rolling time frame ending now, used to filter a history.
type Window int

const (
	All Window = iota
	Today
	Week
	Month
	Quarter
	ThreeMonths
	Year
)

func (w Window) String() string {
	switch w {
	case All:
		return "all"
	case Today:
		return "today"
	case Week:
		return "week"
	case Month:
		return "month"
	case Quarter:
		return "quarter"
	case ThreeMonths:
		return "threeMonths"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// Valid reports whether w is one of the known windows.
func (w Window) Valid() bool { return w >= All && w <= Year }

// Windows lists every known window, in increasing length.
func Windows() []Window { return []Window{All, Today, Week, Month, Quarter, ThreeMonths, Year} }

// ParseWindow parses a window name, case-insensitively.
// "3months" is accepted as an alias for "threeMonths".
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "":
		return All, nil
	case "today":
		return Today, nil
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "quarter":
		return Quarter, nil
	case "threemonths", "3months":
		return ThreeMonths, nil
	case "year":
		return Year, nil
	default:
		return All, fmt.Errorf("unknown window %q", s)
	}
}

// Cutoff returns the earliest instant included in the window ending at now.
//
// It returns false for All, which has no cutoff.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	switch w {
	case Today:
		return StartOfDay(now), true
	case Week:
		return now.AddDate(0, 0, -7), true
	case Month:
		return ShiftMonths(now, -1), true
	case Quarter, ThreeMonths:
		return ShiftMonths(now, -3), true
	case Year:
		return ShiftMonths(now, -12), true
	default:
		return time.Time{}, false
	}
}
