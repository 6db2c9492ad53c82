package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hbeckmann/waex/internal/index"
	"github.com/hbeckmann/waex/internal/render"
	"github.com/hbeckmann/waex/internal/search"
)

// transcriptMsg carries a finished async transcript render.
type transcriptMsg struct {
	exportKey string
	msgID     int
	content   string
	hitLine   int
	err       error
}

// loadTranscriptCmd renders the full transcript around a result off the
// update loop.
func loadTranscriptCmd(db *index.DB, r search.Result, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := render.RenderTranscript(db, r.ExportKey, render.Options{
			HitMsgID: r.MsgID,
			Context:  -1,
			Width:    width,
			Query:    query,
		})
		return transcriptMsg{
			exportKey: r.ExportKey,
			msgID:     r.MsgID,
			content:   content,
			hitLine:   hitLine,
			err:       err,
		}
	}
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
