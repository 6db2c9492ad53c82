package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hbeckmann/waex/internal/index"
	"github.com/hbeckmann/waex/internal/search"
)

// typeDelay is how long we wait after the last keystroke before querying.
const typeDelay = 200 * time.Millisecond

type viewMode int

const (
	searchView viewMode = iota
	browseView
)

type resultsMsg struct {
	forQuery string
	hits     []search.Result
	err      error
}

type queryTickMsg struct {
	forQuery string
}

type model struct {
	db         *index.DB
	opts       search.Options
	view       viewMode
	query      string
	results    []search.Result
	cursor     int
	listTop    int
	input      textinput.Model
	transcript viewport.Model
	shownKey   string
	width      int
	height     int
	sized      bool
	done       bool
	picked     *search.Result
}

func newModel(db *index.DB, view viewMode, query string, opts search.Options) model {
	in := textinput.New()
	if view == browseView {
		in.Placeholder = "Filter..."
	} else {
		in.Placeholder = "Search..."
	}
	in.Focus()
	in.SetValue(query)
	in.Prompt = "> "
	in.PromptStyle = styleInputPrompt
	in.TextStyle = styleInput
	in.CharLimit = 256

	return model{
		db:         db,
		opts:       opts,
		view:       view,
		query:      query,
		input:      in,
		transcript: viewport.New(0, 0),
	}
}

// Run opens the search picker and blocks until it exits. A picked result is
// copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	return runPicker(newModel(db, searchView, query, opts))
}

// RunBrowse opens the picker on the newest messages across all indexed
// exports. Typing switches to a full-text filter over the same set.
func RunBrowse(db *index.DB, opts search.Options) error {
	return runPicker(newModel(db, browseView, "", opts))
}

func runPicker(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	out, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if picked := out.(model).picked; picked != nil {
		return copySelection(picked)
	}
	return nil
}

// copySelection puts the picked message on the clipboard: the attachment
// filename for media, the message text otherwise. Without a clipboard the
// value is printed so shell pipelines still get it.
func copySelection(r *search.Result) error {
	value := r.Snippet
	if r.IsAttachment && r.AttachmentFile != "" {
		value = r.AttachmentFile
	}
	value = strings.NewReplacer(">>>", "", "<<<", "").Replace(value)

	if err := clipboard.WriteAll(value); err != nil {
		fmt.Printf("%s\n", value)
		return nil
	}
	fmt.Printf("Copied to clipboard: %s\n", value)
	return nil
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.view == browseView || m.query != "" {
		cmds = append(cmds, m.runQuery(m.query))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sized = true
		m.transcript = newViewport(m.rightWidth(), m.bodyHeight())
		if len(m.results) > 0 && m.cursor < len(m.results) {
			return m, loadTranscriptCmd(m.db, m.results[m.cursor], m.query, m.rightWidth())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case queryTickMsg:
		// Fire only if the query is still what it was when the tick was set.
		if msg.forQuery == m.query {
			return m, m.runQuery(msg.forQuery)
		}
		return m, nil

	case resultsMsg:
		if msg.forQuery != m.query {
			return m, nil
		}
		m.cursor = 0
		m.listTop = 0
		if msg.err != nil {
			m.results = nil
			m.transcript.SetContent("Error: " + msg.err.Error())
			m.shownKey = ""
			return m, nil
		}
		m.results = msg.hits
		if len(m.results) == 0 {
			m.transcript.SetContent("")
			m.shownKey = ""
			return m, nil
		}
		return m, m.refreshTranscript()

	case transcriptMsg:
		return m.applyTranscript(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.quit):
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, keys.pick):
		if len(m.results) > 0 && m.cursor < len(m.results) {
			r := m.results[m.cursor]
			m.picked = &r
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.moveUp):
		if m.cursor > 0 {
			m.cursor--
			m.keepCursorVisible(m.bodyHeight())
			return m, m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, keys.moveDown):
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.keepCursorVisible(m.bodyHeight())
			return m, m.refreshTranscript()
		}
		return m, nil

	case key.Matches(msg, keys.scrollUp):
		m.transcript.LineUp(m.bodyHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.scrollDown):
		m.transcript.LineDown(m.bodyHeight() / 2)
		return m, nil

	case key.Matches(msg, keys.pageUp):
		m.transcript.LineUp(m.bodyHeight())
		return m, nil

	case key.Matches(msg, keys.pageDown):
		m.transcript.LineDown(m.bodyHeight())
		return m, nil
	}

	var cmds []tea.Cmd
	var inCmd tea.Cmd
	m.input, inCmd = m.input.Update(msg)
	cmds = append(cmds, inCmd)

	if q := m.input.Value(); q != m.query {
		m.query = q
		cmds = append(cmds, m.debounce(q))
	}
	return m, tea.Batch(cmds...)
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.sized || len(m.results) == 0 {
		return m, nil
	}

	zone, item := m.locate(msg.X, msg.Y)

	switch {
	case zone == zoneResults && msg.Button == tea.MouseButtonWheelUp:
		if m.listTop > 0 {
			m.listTop--
		}
		return m, nil

	case zone == zoneResults && msg.Button == tea.MouseButtonWheelDown:
		visible := m.bodyHeight() / linesPerItem
		top := len(m.results) - visible
		if top < 0 {
			top = 0
		}
		if m.listTop < top {
			m.listTop++
		}
		return m, nil

	case zone == zoneResults && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if item >= 0 && item < len(m.results) && m.cursor != item {
			m.cursor = item
			m.keepCursorVisible(m.bodyHeight())
			return m, m.refreshTranscript()
		}
		return m, nil

	case zone == zoneTranscript && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown):
		var vpCmd tea.Cmd
		m.transcript, vpCmd = m.transcript.Update(msg)
		return m, vpCmd
	}

	return m, nil
}

func (m model) applyTranscript(msg transcriptMsg) (tea.Model, tea.Cmd) {
	k := resultKey(msg.exportKey, msg.msgID)
	if k == m.shownKey {
		return m, nil
	}
	// Drop renders for a result the cursor has already left.
	if len(m.results) > 0 && m.cursor < len(m.results) {
		r := m.results[m.cursor]
		if k != resultKey(r.ExportKey, r.MsgID) {
			return m, nil
		}
	}
	if msg.err != nil {
		m.transcript.SetContent("Preview error: " + msg.err.Error())
	} else {
		m.transcript.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.transcript.SetYOffset(msg.hitLine)
		} else {
			m.transcript.GotoTop()
		}
	}
	m.shownKey = k
	return m, nil
}

func (m model) View() string {
	if m.done || !m.sized {
		return ""
	}

	leftW := m.leftWidth()
	rightW := m.rightWidth()
	bodyH := m.bodyHeight()

	left := stylePanelBorder.
		Width(leftW).
		Height(bodyH).
		Render(m.renderList(leftW, bodyH))

	m.transcript.Width = rightW
	m.transcript.Height = bodyH
	right := styleActiveBorder.
		Width(rightW).
		Height(bodyH).
		Render(m.transcript.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), body, m.footer())
}

// The results list takes 40% of the terminal, the transcript the rest.
// Widths subtract the panel borders.

func (m model) leftWidth() int {
	if m.width <= 0 {
		return 40
	}
	if w := m.width*40/100 - 4; w >= 20 {
		return w
	}
	return 20
}

func (m model) rightWidth() int {
	if m.width <= 0 {
		return 60
	}
	if w := m.width*60/100 - 4; w >= 20 {
		return w
	}
	return 20
}

func (m model) bodyHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Input row, status row and the horizontal borders eat six lines.
	if h := m.height - 6; h >= 5 {
		return h
	}
	return 5
}

type zone int

const (
	zoneNone zone = iota
	zoneResults
	zoneTranscript
)

// locate maps a terminal coordinate to a panel and, for the results panel,
// the index of the row under the pointer.
func (m model) locate(x, y int) (zone, int) {
	bodyH := m.bodyHeight()
	top := 2 // input row plus top border
	bottom := top + bodyH - 1

	if y < top || y > bottom {
		return zoneNone, -1
	}

	leftW := m.leftWidth()
	if x >= 1 && x <= leftW {
		return zoneResults, m.listTop + (y-top)/linesPerItem
	}
	if x > leftW+2 {
		return zoneTranscript, -1
	}
	return zoneNone, -1
}

func (m model) footer() string {
	parts := []string{
		fmt.Sprintf("%d results", len(m.results)),
		"click/up/dn navigate",
		"scroll/C-u/C-d transcript",
		"Enter copy message",
		"Esc quit",
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}

func (m model) runQuery(q string) tea.Cmd {
	db := m.db
	opts := m.opts
	opts.Query = q
	browse := m.view == browseView
	return func() tea.Msg {
		switch {
		case q == "" && browse:
			hits, err := search.ListAll(db, opts)
			return resultsMsg{forQuery: q, hits: hits, err: err}
		case q == "":
			return resultsMsg{forQuery: q}
		default:
			hits, err := search.Search(db, opts)
			return resultsMsg{forQuery: q, hits: hits, err: err}
		}
	}
}

func (m model) debounce(q string) tea.Cmd {
	return tea.Tick(typeDelay, func(time.Time) tea.Msg {
		return queryTickMsg{forQuery: q}
	})
}

func (m model) refreshTranscript() tea.Cmd {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return nil
	}
	r := m.results[m.cursor]
	if resultKey(r.ExportKey, r.MsgID) == m.shownKey {
		return nil
	}
	return loadTranscriptCmd(m.db, r, m.query, m.rightWidth())
}

func resultKey(exportKey string, msgID int) string {
	return fmt.Sprintf("%s:%d", exportKey, msgID)
}
