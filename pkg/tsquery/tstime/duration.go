package tstime

import (
	"fmt"
	"strconv"
)

// ParseDuration parses a descriptor duration string of the form "<amount><unit>"
// (spec.md §6, e.g. "5m", "1h"), where unit is one of ms, s, m, h, d.
func ParseDuration(s string) (Duration, error) {
	if len(s) < 2 {
		return Duration{}, fmt.Errorf("tstime: duration %q too short", s)
	}
	// "ms" is the only two-character unit suffix; try it before the
	// single-character suffixes.
	if len(s) >= 3 && s[len(s)-2:] == "ms" {
		amount, err := strconv.ParseInt(s[:len(s)-2], 10, 64)
		if err != nil {
			return Duration{}, fmt.Errorf("tstime: invalid duration %q: %w", s, err)
		}
		return Duration{Amount: amount, Unit: Millis}, nil
	}
	unitCh := s[len(s)-1]
	var unit Unit
	switch unitCh {
	case 's':
		unit = Seconds
	case 'm':
		unit = Minutes
	case 'h':
		unit = Hours
	case 'd':
		unit = Days
	default:
		return Duration{}, fmt.Errorf("tstime: duration %q has unknown unit %q", s, string(unitCh))
	}
	amount, err := strconv.ParseInt(s[:len(s)-1], 10, 64)
	if err != nil {
		return Duration{}, fmt.Errorf("tstime: invalid duration %q: %w", s, err)
	}
	return Duration{Amount: amount, Unit: unit}, nil
}
