package chat

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp is a parsed message time. When none of the known layouts match,
// Fallback is set and Time holds the clock time at which parsing happened, so
// a malformed line never kills the whole parse.
type Timestamp struct {
	Time     time.Time
	Fallback bool
	Reason   string
}

// Layouts tried in order. 24h layouts must come first: Go's non-padded hour
// verb would happily accept "8:08 PM"'s digits and leave the meridiem
// dangling, so the stricter forms get the first shot.
var timestampLayouts = []string{
	"02.01.06 15:04:05",
	"02.01.06 15:04",
	"02.01.06 3:04:05 PM",
	"02.01.06 3:04 PM",
}

// ParseTimestamp combines the date and time captures of a message header into
// a Timestamp, falling back to now on any mismatch.
func ParseTimestamp(date, clock string, now time.Time) Timestamp {
	raw := strings.TrimSpace(date) + " " + normalizeClock(clock)
	for _, layout := range timestampLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{
		Time:     now,
		Fallback: true,
		Reason:   fmt.Sprintf("no layout matched %q", raw),
	}
}

// normalizeClock collapses the whitespace variants exports put between the
// time and the meridiem (narrow no-break space included) into a single space.
func normalizeClock(clock string) string {
	fields := strings.FieldsFunc(clock, func(r rune) bool {
		switch r {
		case ' ', ' ', ' ', '\t':
			return true
		}
		return false
	})
	return strings.ToUpper(strings.Join(fields, " "))
}
