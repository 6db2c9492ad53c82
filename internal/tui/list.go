package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hbeckmann/waex/internal/chat"
	"github.com/hbeckmann/waex/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel: search results list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No results")
		return empty
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listTop {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		rows := formatResultLine(r, width, i == m.cursor)
		lines = append(lines, rows...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// typeBadge renders a short colored tag for the message's content type.
func typeBadge(name string) string {
	t := chat.ParseContentType(name)
	switch {
	case t == chat.TypeText || t == chat.TypeLink:
		return styleTypeText.Render("txt")
	case t == chat.TypeSticker:
		return styleTypeSticker.Render("stk")
	case t.IsImage():
		return styleTypeImage.Render("img")
	case t.IsVideo():
		return styleTypeVideo.Render("vid")
	case t.IsAudio():
		return styleTypeAudio.Render("aud")
	case t.IsDocument() || t == chat.TypeContact:
		return styleTypeDoc.Render("doc")
	}
	return styleTypeDoc.Render("???")
}

// formatResultLine formats a single search result as two lines:
//
//	line 1: [>] type  date  sender
//	line 2:    snippet (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	badge := typeBadge(r.ContentType)

	// Extract short date from Ts (e.g. "2023-12-24T21:30:05Z" -> "12-24")
	date := r.Ts
	if len(date) >= 10 {
		date = date[5:10] // MM-DD
	}

	// Truncate sender to fit width: leave room for prefix "  tag MM-DD "
	sender := strings.ReplaceAll(r.Sender, "\n", " ")
	senderMax := width - 2 - 4 - 6 - 2 // prefix + badge + date + padding
	if senderMax < 0 {
		senderMax = 0
	}
	if runewidth.StringWidth(sender) > senderMax {
		sender = runewidth.Truncate(sender, senderMax, "")
	}

	// Line 1: type date sender
	line1 := fmt.Sprintf("%s %s %s", badge, date, sender)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: snippet (dimmed, indented)
	snippet := r.Snippet
	if r.IsAttachment && r.AttachmentFile != "" {
		snippet = r.AttachmentFile
	}
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	snippet = strings.ReplaceAll(snippet, "\t", " ")
	snippet = strings.ReplaceAll(snippet, ">>>", "")
	snippet = strings.ReplaceAll(snippet, "<<<", "")
	snippetMax := width - 4 // indent
	if snippetMax < 0 {
		snippetMax = 0
	}
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(snippet)

	return []string{line1, line2}
}

// keepCursorVisible scrolls the list so the cursor row stays on screen.
func (m *model) keepCursorVisible(listHeight int) {
	visible := listHeight / linesPerItem
	if visible < 1 {
		visible = 1
	}
	if m.cursor < m.listTop {
		m.listTop = m.cursor
	}
	if m.cursor >= m.listTop+visible {
		m.listTop = m.cursor - visible + 1
	}
}
