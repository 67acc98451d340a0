// Package tui is the interactive snippet browser: a list of snippets where
// pressing enter copies the selected one and flashes its confirmation.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go.klb.dev/snipcopy/internal/page"
	"go.klb.dev/snipcopy/internal/widget"
)

// pageChangeMsg carries a visibility change from the document into the
// bubbletea message loop.
type pageChangeMsg struct {
	change page.Change
}

// copyResultMsg is sent when an asynchronous CopyToClipboard call returns.
// Clipboard failures are logged by the widget and arrive here as nil; only
// missing elements produce an error.
type copyResultMsg struct {
	id  string
	err error
}

// Model is the top-level bubbletea model.
type Model struct {
	ctx     context.Context
	doc     *page.Document
	widget  *widget.Widget
	changes <-chan page.Change
	keys    KeyMap
	theme   Theme
	backend string

	snippets []page.Snippet
	cursor   int
	offset   int

	width  int
	height int

	// status holds the last copy error, cleared by the next successful copy.
	status string
}

// New returns a model browsing doc. changes should come from doc.Watch; the
// model re-renders whenever it delivers.
func New(ctx context.Context, doc *page.Document, w *widget.Widget, changes <-chan page.Change, backend string) Model {
	return Model{
		ctx:      ctx,
		doc:      doc,
		widget:   w,
		changes:  changes,
		keys:     DefaultKeyMap(),
		theme:    DefaultTheme(),
		backend:  backend,
		snippets: doc.Snippets(),
	}
}

// Init starts listening for document changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan page.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return pageChangeMsg{change: c}
	}
}

// copySnippet runs the copy off the UI goroutine; the result comes back as
// a copyResultMsg and the reveal/hide arrive as pageChangeMsgs.
func (m Model) copySnippet(id string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{id: id, err: m.widget.CopyToClipboard(m.ctx, id)}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampOffset()
		return m, nil

	case pageChangeMsg:
		return m, waitForChange(m.changes)

	case copyResultMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Top):
			m.move(-len(m.snippets))
		case key.Matches(msg, m.keys.End):
			m.move(len(m.snippets))
		case key.Matches(msg, m.keys.Copy):
			if len(m.snippets) == 0 {
				return m, nil
			}
			return m, m.copySnippet(m.snippets[m.cursor].ID)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if len(m.snippets) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.snippets)-1, m.cursor+delta))
	m.clampOffset()
}

// listHeight is the number of snippet rows that fit between the header and
// the footer. Zero height (before the first WindowSizeMsg) shows everything.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return len(m.snippets)
	}
	return max(1, m.height-4)
}

func (m *Model) clampOffset() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("snipcopy"))
	b.WriteString(m.theme.Faint.Render(fmt.Sprintf("  %d snippets · clipboard: %s", len(m.snippets), m.backend)))
	b.WriteString("\n\n")

	if len(m.snippets) == 0 {
		b.WriteString(m.theme.Faint.Render("No snippets loaded."))
		b.WriteString("\n")
	}

	idWidth := 0
	for _, s := range m.snippets {
		idWidth = max(idWidth, lipgloss.Width(s.ID))
	}

	end := min(len(m.snippets), m.offset+m.listHeight())
	for i := m.offset; i < end; i++ {
		b.WriteString(m.row(i, idWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.theme.Error.Render(m.status))
		b.WriteString("  ")
	}
	b.WriteString(m.theme.Faint.Render(m.helpLine()))
	return b.String()
}

func (m Model) row(i, idWidth int) string {
	s := m.snippets[i]

	cursor := "  "
	idStyle := m.theme.ID
	if i == m.cursor {
		cursor = m.theme.Cursor.Render("> ")
		idStyle = m.theme.Selected
	}

	id := idStyle.Render(s.ID + strings.Repeat(" ", idWidth-lipgloss.Width(s.ID)))
	line := cursor + id + "  "

	notice := ""
	if m.doc.Visible(s.MessageID) {
		if el, ok := m.doc.Element(s.MessageID); ok {
			notice = "  " + m.theme.Notice.Render(el.Text)
		}
	}

	avail := m.width - lipgloss.Width(line) - lipgloss.Width(notice)
	return line + m.theme.Faint.Render(previewText(s.Text, avail)) + notice
}

func (m Model) helpLine() string {
	parts := make([]string, 0, 4)
	for _, b := range m.keys.help() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// previewText renders the first line of text, truncated to width cells.
// width <= 0 means unlimited.
func previewText(text string, width int) string {
	text = strings.TrimSpace(text)
	first, _, multi := strings.Cut(text, "\n")
	if multi {
		first += " …"
	}
	if width <= 0 || lipgloss.Width(first) <= width {
		return first
	}
	r := []rune(first)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
