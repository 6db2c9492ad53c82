package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		want  time.Time
	}{
		{"24h with seconds", "24.12.23", "21:30:05", time.Date(2023, 12, 24, 21, 30, 5, 0, time.Local)},
		{"24h without seconds", "01.01.24", "09:15", time.Date(2024, 1, 1, 9, 15, 0, 0, time.Local)},
		{"12h pm", "24.12.23", "9:30 PM", time.Date(2023, 12, 24, 21, 30, 0, 0, time.Local)},
		{"12h am with seconds", "05.03.24", "8:08:42 AM", time.Date(2024, 3, 5, 8, 8, 42, 0, time.Local)},
		{"12h pm with seconds", "05.03.24", "8:08:42 PM", time.Date(2024, 3, 5, 20, 8, 42, 0, time.Local)},
		{"narrow no-break space before meridiem", "24.12.23", "9:30 PM", time.Date(2023, 12, 24, 21, 30, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := ParseTimestamp(tt.date, tt.clock, time.Time{})
			assert.False(t, ts.Fallback)
			assert.Equal(t, tt.want, ts.Time)
		})
	}
}

func TestParseTimestampFallback(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local)
	for _, tt := range []struct{ date, clock string }{
		{"99.99.99", "21:30:05"},
		{"not a date", "21:30"},
		{"24.12.23", "25:99"},
	} {
		ts := ParseTimestamp(tt.date, tt.clock, now)
		assert.True(t, ts.Fallback, "%s %s", tt.date, tt.clock)
		assert.Equal(t, now, ts.Time)
		assert.NotEmpty(t, ts.Reason)
	}
}
