package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Token
	}{
		{
			"bracketed dialect",
			"[24.12.23, 21:30:05] Anna: Hallo zusammen",
			Token{Date: "24.12.23", Clock: "21:30:05", Sender: "Anna", Content: "Hallo zusammen"},
		},
		{
			"dash dialect 12h",
			"24.12.23, 9:30 PM - Ben Maier: see you there",
			Token{Date: "24.12.23", Clock: "9:30 PM", Sender: "Ben Maier", Content: "see you there"},
		},
		{
			"leading LRM",
			"‎[24.12.23, 21:30] Anna: ok",
			Token{Date: "24.12.23", Clock: "21:30", Sender: "Anna", Content: "ok"},
		},
		{
			"colon inside content",
			"[24.12.23, 21:30] Anna: note: call later",
			Token{Date: "24.12.23", Clock: "21:30", Sender: "Anna", Content: "note: call later"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := TokenizeLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, tok)
		})
	}
}

func TestTokenizeLineRejects(t *testing.T) {
	for _, line := range []string{
		"",
		"just a continuation line",
		"[24.12.23, 21:30] Messages and calls are end-to-end encrypted",
		"24.12.23 - broken header",
	} {
		_, ok := TokenizeLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestStripEditMarker(t *testing.T) {
	got, edited := StripEditMarker("neuer Plan ‎<Diese Nachricht wurde bearbeitet.>", DefaultEditMarkers)
	assert.True(t, edited)
	assert.Equal(t, "neuer Plan", got)

	got, edited = StripEditMarker("new plan <This message was edited>", DefaultEditMarkers)
	assert.True(t, edited)
	assert.Equal(t, "new plan", got)

	got, edited = StripEditMarker("new plan <this message was edited>", DefaultEditMarkers)
	assert.True(t, edited)
	assert.Equal(t, "new plan", got)

	got, edited = StripEditMarker("plain message", DefaultEditMarkers)
	assert.False(t, edited)
	assert.Equal(t, "plain message", got)
}

func TestStripInvisible(t *testing.T) {
	assert.Equal(t, "IMG-20231224-WA0001.jpg",
		stripInvisible("‎IMG-20231224-WA0001.jpg‏"))
	assert.Equal(t, "hi", stripInvisible("\uFEFFhi\u200B"))
}
