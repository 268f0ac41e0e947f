// Package tui implements the interactive review screen: the proposed
// renames in a scrollable list, editable per row before applying.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"photorename/internal/rename"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			MarginLeft(2)
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// tableFeed subscribes to the mapping table and keeps the latest rendered
// rows and apply results where the model can read them between updates.
type tableFeed struct {
	mu      sync.Mutex
	rows    []rename.Row
	results []rename.RenameResult
}

func (f *tableFeed) TableCreated(rows []rename.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = rows
}

func (f *tableFeed) TableUpdated(index int, row rename.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if index >= 0 && index < len(f.rows) {
		f.rows[index] = row
	}
}

func (f *tableFeed) RenameCompleted(results []rename.RenameResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append([]rename.RenameResult(nil), results...)
}

func (f *tableFeed) Rows() []rename.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]rename.Row(nil), f.rows...)
}

func (f *tableFeed) Results() []rename.RenameResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]rename.RenameResult(nil), f.results...)
}

var _ rename.TableListener = (*tableFeed)(nil)

type applyDoneMsg struct {
	report *rename.BatchReport
}

// Model drives the interactive rename review over an already populated
// service.
type Model struct {
	svc  *rename.RenameService
	feed *tableFeed

	rows     []rename.Row
	cursor   int
	offset   int
	editing  bool
	applying bool
	done     bool
	report   *rename.BatchReport
	input    textinput.Model
	status   string

	width  int
	height int
}

// NewModel creates a Model showing the service's current mapping table.
func NewModel(svc *rename.RenameService) Model {
	ti := textinput.New()
	ti.Placeholder = "new name"
	ti.CharLimit = 200
	ti.Width = 48

	feed := &tableFeed{rows: svc.Rows()}
	svc.Subscribe(feed)

	return Model{
		svc:   svc,
		feed:  feed,
		rows:  svc.Rows(),
		input: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func applyBatch(svc *rename.RenameService) tea.Cmd {
	return func() tea.Msg {
		return applyDoneMsg{report: svc.ApplyAll()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case applyDoneMsg:
		m.applying = false
		m.done = true
		m.report = msg.report
		m.rows = m.feed.Rows()
		m.cursor = 0
		m.offset = 0
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.applying {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		if m.done {
			switch msg.String() {
			case "q", "ctrl+c", "enter", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.status = ""
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	case "enter":
		if err := m.svc.UpdateRow(m.cursor, m.input.Value()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.rows = m.feed.Rows()
		m.editing = false
		m.status = ""
		m.input.Blur()
		m.input.SetValue("")
		return m, nil

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.visibleRows() {
				m.offset = m.cursor - m.visibleRows() + 1
			}
		}

	case "e":
		if len(m.rows) == 0 {
			return m, nil
		}
		after := m.rows[m.cursor].After
		m.input.SetValue(strings.TrimSuffix(after, filepath.Ext(after)))
		m.input.CursorEnd()
		m.input.Focus()
		m.editing = true
		m.status = ""
		return m, textinput.Blink

	case "d":
		if len(m.rows) == 0 {
			return m, nil
		}
		m.svc.DeleteRows([]int{m.cursor})
		m.rows = m.feed.Rows()
		m.clampCursor()

	case "r":
		m.svc.Refresh()
		m.rows = m.feed.Rows()
		m.clampCursor()

	case "a", "enter":
		if len(m.rows) == 0 {
			return m, tea.Quit
		}
		m.applying = true
		m.status = ""
		return m, applyBatch(m.svc)
	}

	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// visibleRows returns how many table rows fit between header and footer.
func (m Model) visibleRows() int {
	rows := m.height - 9
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("photorename"))
	b.WriteString("\n\n")

	switch {
	case m.done:
		b.WriteString(m.renderDone())
	case m.applying:
		b.WriteString("  Renaming files...\n")
	default:
		b.WriteString(m.renderList())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderList() string {
	var b strings.Builder

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render("  No files selected."))
		b.WriteString("\n")
		return b.String()
	}

	beforeWidth := 0
	for _, r := range m.rows {
		if len(r.Before) > beforeWidth {
			beforeWidth = len(r.Before)
		}
	}
	if beforeWidth > 40 {
		beforeWidth = 40
	}

	end := m.offset + m.visibleRows()
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		line := fmt.Sprintf("%-*s -> %s", beforeWidth, truncateName(r.Before, 40), truncateName(r.After, 44))
		label := labelStyle.Render("[" + r.Label + "]")

		if i == m.cursor {
			b.WriteString("  " + selectedStyle.Render("► "+line) + " " + label)
		} else {
			b.WriteString("    " + line + " " + label)
		}
		b.WriteString("\n")

		if i == m.cursor && m.editing {
			b.WriteString("      " + m.input.View() + "\n")
		}
	}

	if end < len(m.rows) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more ...", len(m.rows)-end)))
		b.WriteString("\n")
	}

	tpl := m.svc.Template()
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d file(s) • format %s • %s", len(m.rows), tpl.DateFormat, tpl.Method)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render("  " + m.status))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder

	b.WriteString("  " + successStyle.Render(fmt.Sprintf("Renamed %d file(s)", m.report.Succeeded)) + "\n")
	for _, res := range m.feed.Results() {
		if res.Outcome == rename.Success {
			b.WriteString(fmt.Sprintf("    %s %s -> %s\n",
				successStyle.Render("✓"),
				filepath.Base(res.OriginalPath),
				filepath.Base(res.MappedPath)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s: %v\n",
				errorStyle.Render("✗"),
				filepath.Base(res.OriginalPath),
				res.Err))
		}
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %d file(s) could not be renamed", len(m.rows))))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderFooter() string {
	switch {
	case m.editing:
		return mutedStyle.Render("  enter: save name • esc: cancel")
	case m.applying:
		return mutedStyle.Render("  renaming, please wait...")
	case m.done:
		return mutedStyle.Render("  enter/q: quit")
	default:
		return mutedStyle.Render("  ↑/↓: move • e: edit name • d: remove • r: re-read dates • a/enter: rename all • q: quit")
	}
}

// truncateName shortens a name for display, keeping the end.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	if maxLen > 10 {
		return "..." + name[len(name)-maxLen+3:]
	}
	return name[:maxLen]
}
