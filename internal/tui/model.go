// Package tui is the terminal front end of SpinLedger.
//
// The model never mutates ledger state itself: every change goes through the
// Ledger interface, after which the model re-reads a snapshot and renders it.
// Like every bubbletea model it is single-threaded; do not share it between
// goroutines.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"SpinLedger/internal/ledger"
	"SpinLedger/internal/model"
	"SpinLedger/internal/render"
)

// Ledger is the set of operations the UI drives.
type Ledger interface {
	Append(raw string) (int, error)
	Edit(index int, raw string) error
	ToggleCheckpoint(index int) error
	Snapshot() model.Snapshot
	Summary() model.Summary
	Export(dir string) (string, error)
}

// Config configures the UI.
type Config struct {
	// ExportDir receives snapshots written with ctrl+s.
	ExportDir string
}

// chromeLines is the number of lines View draws around the table.
const chromeLines = 10

// Model is the bubbletea model for the entry screen.
type Model struct {
	ledger Ledger
	config Config

	input     textinput.Model
	editInput textinput.Model

	snap    model.Snapshot
	summary model.Summary

	cursor    int
	editing   bool
	editIndex int

	status string
	errMsg string

	width    int
	height   int
	quitting bool
}

// New creates the entry screen model.
func New(l Ledger, cfg Config) Model {
	in := textinput.New()
	in.Prompt = "spin> "
	in.Placeholder = "enter a result"
	in.CharLimit = 16
	in.Focus()

	edit := textinput.New()
	edit.Prompt = "value> "
	edit.CharLimit = 16

	m := Model{
		ledger:    l,
		config:    cfg,
		input:     in,
		editInput: edit,
	}
	m.refresh()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEdit(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submitAppend()
			return m, nil
		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil
		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil
		case tea.KeyCtrlT:
			m.toggleSelected()
			return m, nil
		case tea.KeyCtrlE:
			cmd := m.openEdit()
			return m, cmd
		case tea.KeyCtrlS:
			m.export()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	filterInput(&m.input)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.closeEdit()
		m.status = "edit cancelled"
		return m, nil
	case tea.KeyEnter:
		if err := m.ledger.Edit(m.editIndex, m.editInput.Value()); err != nil {
			// The dialog stays open with its text untouched.
			m.errMsg = describeError(err)
			return m, nil
		}
		m.status = fmt.Sprintf("#%d updated", m.editIndex+1)
		m.closeEdit()
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	filterInput(&m.editInput)
	return m, cmd
}

func (m *Model) submitAppend() {
	idx, err := m.ledger.Append(m.input.Value())
	if err != nil {
		m.errMsg = describeError(err)
		return
	}
	m.input.SetValue("")
	m.errMsg = ""
	m.status = fmt.Sprintf("#%d added", idx+1)
	m.refresh()
	m.cursor = idx
}

func (m *Model) toggleSelected() {
	if len(m.snap.Rows) == 0 {
		m.errMsg = "nothing to mark yet"
		return
	}
	if err := m.ledger.ToggleCheckpoint(m.cursor); err != nil {
		m.errMsg = describeError(err)
		return
	}
	m.errMsg = ""
	m.refresh()
	if m.snap.Rows[m.cursor].Checkpoint {
		m.status = fmt.Sprintf("#%d marked %s", m.cursor+1, render.CheckpointMarker)
	} else {
		m.status = fmt.Sprintf("#%d unmarked", m.cursor+1)
	}
}

func (m *Model) openEdit() tea.Cmd {
	if len(m.snap.Rows) == 0 {
		m.errMsg = "nothing to edit yet"
		return nil
	}
	m.editing = true
	m.editIndex = m.cursor
	m.errMsg = ""
	m.editInput.SetValue(render.FormatValue(m.snap.Rows[m.cursor].Value))
	m.editInput.CursorEnd()
	m.input.Blur()
	return m.editInput.Focus()
}

func (m *Model) closeEdit() {
	m.editing = false
	m.errMsg = ""
	m.editInput.Blur()
	m.editInput.SetValue("")
	m.input.Focus()
}

func (m *Model) export() {
	path, err := m.ledger.Export(m.config.ExportDir)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.status = "exported to " + path
}

func (m *Model) moveCursor(step int) {
	m.cursor += step
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Rows) {
		m.cursor = len(m.snap.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) refresh() {
	m.snap = m.ledger.Snapshot()
	m.summary = m.ledger.Summary()
	m.clampCursor()
}

func filterInput(in *textinput.Model) {
	if v := in.Value(); FilterNumeric(v) != v {
		in.SetValue(FilterNumeric(v))
	}
}

func describeError(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidValue):
		return "enter a non-negative number"
	case errors.Is(err, ledger.ErrIndexOutOfRange):
		return "no such entry"
	default:
		return err.Error()
	}
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("SpinLedger"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")

	if m.editing {
		dialog := fmt.Sprintf("Edit #%d\n%s", m.editIndex+1, m.editInput.View())
		b.WriteString(DialogStyle.Render(dialog))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
	} else if m.status != "" {
		b.WriteString(StatusStyle.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(MutedStyle.Render(render.FormatSummary(m.summary)))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) helpLine() string {
	if m.editing {
		return "enter save • esc cancel"
	}
	return "enter add • ↑/↓ select • ctrl+t JP • ctrl+e edit • ctrl+s export • esc quit"
}

func (m Model) renderTable() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("  %4s %7s %3s %5s %7s", "#", "value", "JP", "since", "delta")))
	b.WriteString("\n")
	if len(m.snap.Rows) == 0 {
		b.WriteString(MutedStyle.Render("  no spins yet"))
		b.WriteString("\n")
		return b.String()
	}

	start, end := m.visibleRange()
	for _, row := range m.snap.Rows[start:end] {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(row model.Row) string {
	marker := "  "
	if row.Index == m.cursor {
		marker = "> "
	}
	cells := fmt.Sprintf("%4d %7s ", row.Index+1, render.FormatValue(row.Value))
	jp := CheckStyle.Render(fmt.Sprintf("%3s", render.FormatCheckpoint(row.Checkpoint)))
	since := fmt.Sprintf(" %5d ", row.CountSinceCheckpoint)
	delta := trendStyle(render.DeltaTrend(row.Delta)).Render(fmt.Sprintf("%7s", render.FormatDelta(row.Delta)))

	if row.Index == m.cursor {
		return SelectedStyle.Render(marker+cells) + jp + since + delta
	}
	return marker + cells + jp + since + delta
}

// visibleRange returns the window of rows that fits the terminal height and
// contains the cursor.
func (m Model) visibleRange() (int, int) {
	n := len(m.snap.Rows)
	if m.height <= chromeLines {
		return 0, n
	}
	size := m.height - chromeLines
	if n <= size {
		return 0, n
	}
	start := m.cursor - size + 1
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}
