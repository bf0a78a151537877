// Package tui is the interactive terminal front end: an entry field, the
// category tabs that double as the filter, and the filtered task list.
package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/tasklist/internal/locale"
	"github.com/mesh-intelligence/tasklist/internal/session"
	"github.com/mesh-intelligence/tasklist/pkg/types"
)

type mode int

const (
	modeList mode = iota
	modeUpdate
	modeAlert
)

// localeKeys maps function keys to bundle codes, in the order of the
// language buttons.
var localeKeys = map[string]string{
	"f1": "ru",
	"f2": "en",
	"f3": "uz",
}

// statusMsg carries the result of a background command.
type statusMsg struct{ text string }

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyText = write }
}

// Model is the bubbletea model of the task list.
type Model struct {
	sess     *session.Session
	alerts   *alertQueue
	copyText func(string) error

	mode    mode
	cursor  int
	input   textinput.Model
	edit    textinput.Model
	pending session.UpdateRequest
	alert   string
	status  string
	width   int
}

// New builds a model over store showing labels from bundle.
func New(store types.TaskStore, locales *locale.Registry, bundle *locale.Bundle, opts ...Option) Model {
	q := &alertQueue{}

	ti := textinput.New()
	ti.CharLimit = types.MaxItemLength
	ti.Width = 40
	ti.Placeholder = bundle.Labels.InputPlaceholder
	ti.Focus()

	ed := textinput.New()
	ed.Width = 40

	m := Model{
		sess:     session.New(store, locales, bundle, q),
		alerts:   q,
		copyText: clipboard.WriteAll,
		input:    ti,
		edit:     ed,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAlert:
			return m.updateAlert(msg)
		case modeUpdate:
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-20, 10)
		m.edit.Width = 40
	case statusMsg:
		m.status = msg.text
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if code, ok := localeKeys[key]; ok {
		if err := m.sess.SetLocale(code); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.input.Placeholder = m.sess.Locale.Labels.InputPlaceholder
		m.status = ""
		return m, nil
	}

	switch key {
	case "enter":
		_, err := m.sess.Submit(context.Background(), m.input.Value())
		m.input.SetValue(m.sess.Form.Input())
		m.input.CursorEnd()
		m.status = ""
		if err != nil && m.sess.Locale.Error(err) == "" {
			m.status = err.Error()
		}
		m = m.nextAlert()
		m.clampCursor()
		return m, nil
	case "tab":
		_ = m.sess.SelectCategory(m.sess.Category.Next())
		m.clampCursor()
		return m, nil
	case "shift+tab":
		_ = m.sess.SelectCategory(m.sess.Category.Prev())
		m.clampCursor()
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		m.cursor++
		m.clampCursor()
		return m, nil
	case "ctrl+d":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.sess.Delete(row.Task.ID); err != nil {
			m.status = err.Error()
		}
		m.clampCursor()
		return m, nil
	case "ctrl+e":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		req, err := m.sess.BeginUpdate(row.Task.ID)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.pending = req
		m.edit.SetValue(req.Default)
		m.edit.CursorEnd()
		m.edit.Focus()
		m.input.Blur()
		m.mode = modeUpdate
		return m, nil
	case "ctrl+y":
		row, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.copyCmd(row.Task.Item)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		ok := msg.String() == "enter"
		if _, err := m.sess.FinishUpdate(m.pending, m.edit.Value(), ok); err != nil {
			m.status = err.Error()
		}
		m.pending = session.UpdateRequest{}
		m.edit.Blur()
		m.edit.SetValue("")
		m.input.Focus()
		m.mode = modeList
		m.clampCursor()
		return m, nil
	}
	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = modeList
		m.alert = ""
		m.input.Focus()
		m = m.nextAlert()
	}
	return m, nil
}

// nextAlert switches to the alert dialog when one is pending.
func (m Model) nextAlert() Model {
	if msg, ok := m.alerts.pop(); ok {
		m.alert = msg
		m.mode = modeAlert
		m.input.Blur()
	}
	return m
}

func (m Model) copyCmd(text string) tea.Cmd {
	write := m.copyText
	return func() tea.Msg {
		if err := write(text); err != nil {
			return statusMsg{text: fmt.Sprintf("copy failed: %v", err)}
		}
		return statusMsg{text: "copied: " + text}
	}
}

func (m Model) selected() (session.Row, bool) {
	rows := m.sess.Rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return session.Row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.sess.Rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
