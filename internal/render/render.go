package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/hbeckmann/waex/internal/index"
)

const (
	colorReset   = "\033[0m"
	colorOwner   = "\033[1;32m" // bold green for the device owner
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// senderColors are cycled through for everyone who is not the owner, so each
// member of a group chat keeps a stable color.
var senderColors = []string{
	"\033[1;34m", // bold blue
	"\033[1;35m", // bold magenta
	"\033[1;36m", // bold cyan
	"\033[1;33m", // bold yellow
	"\033[1;31m", // bold red
}

type Options struct {
	HitMsgID int
	Context  int    // messages before/after hit to show
	Width    int    // wrap width (0 = no wrap)
	Query    string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	terms := strings.Fields(query)
	var filtered []string
	for _, t := range terms {
		if !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return text
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// senderColor picks a stable color for a sender name.
func senderColor(sender, owner string) string {
	if owner != "" && sender == owner {
		return colorOwner
	}
	h := 0
	for _, r := range sender {
		h = h*31 + int(r)
	}
	if h < 0 {
		h = -h
	}
	return senderColors[h%len(senderColors)]
}

// attachmentLine describes an attachment row under the message header.
func attachmentLine(m index.MessageRow) string {
	label := fmt.Sprintf("[%s] %s", m.ContentType, m.AttachmentFile)
	if m.AttachmentFile == "" {
		label = fmt.Sprintf("[%s]", m.ContentType)
	}
	if !m.ExistsInExport {
		label += " (missing)"
	}
	if m.IsMultiframe {
		label += " (animated)"
	}
	return colorDim + label + colorReset
}

// RenderTranscript renders a chat transcript window and returns the content,
// the 0-based line number of the hit message header (-1 if no hit), and any
// error.
func RenderTranscript(db *index.DB, exportKey string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	export, err := db.GetExport(exportKey)
	if err != nil {
		return "", -1, fmt.Errorf("get export: %w", err)
	}
	if export == nil {
		return "", -1, fmt.Errorf("export not found: %s", exportKey)
	}

	msgs, hitIdx, startPos, totalCount, err := db.GetMessagesWindow(exportKey, opts.HitMsgID, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get messages: %w", err)
	}

	if totalCount == 0 {
		return "(empty chat)", -1, nil
	}

	skipAfter := totalCount - startPos - len(msgs)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	wrapW := opts.Width

	// helper to track line count; wraps long lines if Width is set
	writeLine := func(s string) {
		wrapped := wrapLine(s, wrapW)
		for _, wl := range wrapped {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	// header
	writeLine(fmt.Sprintf("%s--- %s (%d messages) ---%s", colorDim, export.ChatFile, totalCount, colorReset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages before) ...%s", colorDim, startPos, colorReset))
	}

	for i, m := range msgs {
		isHit := (i == hitIdx)

		if isHit {
			hitLine = lineCount
		}

		ts := m.Ts
		if m.TsFallback {
			ts += " (?)"
		}
		edited := ""
		if m.IsEdited {
			edited = " (edited)"
		}

		if isHit {
			writeLine(fmt.Sprintf("%s>> %s > %s%s <<%s", colorHit, m.Sender, ts, edited, colorReset))
		} else {
			c := senderColor(m.Sender, export.DeviceOwner)
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s%s", c, m.Sender, colorReset, colorDim, ts, edited, colorReset))
		}

		if m.IsAttachment {
			writeLine(indentLines(attachmentLine(m), "  "))
		} else {
			text := highlightKeywords(m.Content, opts.Query)
			for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
				writeLine(tl)
			}
		}
		writeLine("") // blank line after message
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d messages after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}
