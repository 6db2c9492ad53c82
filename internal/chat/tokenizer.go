package chat

import (
	"regexp"
	"strings"
)

// messageLineRe matches the header of a message line in both export dialects:
// bracketed "[24.12.23, 21:30:05] Anna: hi" and dash-separated
// "24.12.23, 9:30 PM - Anna: hi". An optional LRM mark may precede the
// bracket. The sender capture is lazy so the first colon ends it.
var messageLineRe = regexp.MustCompile(
	`^\x{200E}?\[?(\d{2}\.\d{2}\.\d{2}),\s*(\d{1,2}:\d{2}(?::\d{2})?\s*(?:[AP]M)?)(?:\]|\s*-)\s*([^:]+?)\s*:\s*(.+)$`)

// Token is the raw capture of one message header line, before any timestamp
// or content interpretation.
type Token struct {
	Date    string
	Clock   string
	Sender  string
	Content string
}

// TokenizeLine splits a line into its header captures. ok is false for
// continuation lines, system notices without a sender, and empty lines.
func TokenizeLine(line string) (Token, bool) {
	m := messageLineRe.FindStringSubmatch(line)
	if m == nil {
		return Token{}, false
	}
	return Token{
		Date:    m[1],
		Clock:   strings.TrimSpace(m[2]),
		Sender:  strings.TrimSpace(m[3]),
		Content: strings.TrimSpace(m[4]),
	}, true
}

// DefaultEditMarkers are the trailing notes WhatsApp appends to edited
// messages. The set is configurable because the text is localized.
var DefaultEditMarkers = []string{
	"<Diese Nachricht wurde bearbeitet.>",
	"<This message was edited>",
	"<This message was edited.>",
	"<this message was edited>",
}

// StripEditMarker removes a trailing edit marker and reports whether one was
// present. Matching tolerates the LRM and spaces exports put before the
// marker.
func StripEditMarker(content string, markers []string) (string, bool) {
	s := strings.TrimRight(content, " \u200E")
	for _, marker := range markers {
		if marker == "" {
			continue
		}
		if strings.HasSuffix(s, marker) {
			s = strings.TrimSuffix(s, marker)
			return strings.TrimRight(s, " \u200E"), true
		}
	}
	return content, false
}

// stripInvisible drops the direction and zero-width marks exports sprinkle
// around attachment names. They carry no content and break filename matching.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u200E', // left-to-right mark
			'\u200F', // right-to-left mark
			'\u200B', // zero-width space
			'\u200C', // zero-width non-joiner
			'\u200D', // zero-width joiner
			'\uFEFF': // byte order mark
			return -1
		}
		return r
	}, s)
}
