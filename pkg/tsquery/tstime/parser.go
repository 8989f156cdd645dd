package tstime

import (
	"fmt"
	"strings"
	"time"
)

// Clock reports the current instant. exec.Clock (and exec.SystemClock /
// exec.FixedClock) satisfies this structurally; Parser takes it by this
// local interface rather than importing package exec, which itself depends
// on tstime for TimeStamp.
type Clock interface {
	Now() TimeStamp
}

// Parser implements the TimeParser external collaborator contract from
// spec.md §6: parse(text, timeZone) -> TimeStamp. It understands RFC3339
// instants, the literal "now", and relative-duration shorthands like "-1h"
// or "+90s" measured against clock.
type Parser struct {
	clock Clock
}

// NewParser builds a Parser that resolves "now" and relative offsets
// against clock.
func NewParser(clock Clock) Parser {
	return Parser{clock: clock}
}

// Parse resolves text to a TimeStamp in the named IANA time zone. An empty
// timeZone is treated as UTC. Recognized forms:
//
//   - "now"                reported instant from the Parser's Clock
//   - "-1h", "+90s", "-500ms"   offset from now, any Unit suffix ParseDuration accepts
//   - RFC3339 ("2024-01-02T15:04:05Z")
func (p Parser) Parse(text, timeZone string) (TimeStamp, error) {
	text = strings.TrimSpace(text)
	if text == "now" {
		return p.clock.Now(), nil
	}
	if len(text) > 1 && (text[0] == '+' || text[0] == '-') {
		d, err := ParseDuration(text[1:])
		if err != nil {
			return TimeStamp{}, fmt.Errorf("tstime: parse relative time %q: %w", text, err)
		}
		if text[0] == '-' {
			d.Amount = -d.Amount
		}
		return p.clock.Now().Add(d), nil
	}

	loc := time.UTC
	if timeZone != "" {
		l, err := time.LoadLocation(timeZone)
		if err != nil {
			return TimeStamp{}, fmt.Errorf("tstime: unknown time zone %q: %w", timeZone, err)
		}
		loc = l
	}
	t, err := time.ParseInLocation(time.RFC3339, text, loc)
	if err != nil {
		return TimeStamp{}, fmt.Errorf("tstime: parse %q: %w", text, err)
	}
	return FromMillis(t.UnixMilli()), nil
}
