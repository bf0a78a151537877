package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/tasklist/pkg/types"
)

// View implements tea.Model.
func (m Model) View() string {
	labels := m.sess.Locale.Labels
	var head, body strings.Builder

	head.WriteString(titleStyle.Render(labels.AllTasks))
	head.WriteString("\n")
	head.WriteString(m.languageBar())
	head.WriteString("\n\n")
	head.WriteString(m.input.View())
	head.WriteString(" ")
	head.WriteString(buttonStyle.Render(labels.AddButton))
	head.WriteString("\n\n")
	head.WriteString(m.categoryBar())
	head.WriteString("\n")

	for i, r := range m.sess.Rows() {
		marker := "  "
		item := r.Task.Item
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
			item = cursorStyle.Render(item)
		}
		body.WriteString(marker)
		body.WriteString(item)
		if m.sess.Category == types.CategoryAll {
			body.WriteString("  ")
			body.WriteString(categoryStyle.Render(m.sess.Locale.Category(r.Task.Category)))
		}
		body.WriteString("\n")
	}
	body.WriteString("\n")
	if m.status != "" {
		body.WriteString(statusStyle.Render(m.status))
		body.WriteString("\n")
	}
	body.WriteString(helpStyle.Render("enter add • tab category • ↑/↓ move • ctrl+e edit • ctrl+d delete • ctrl+y copy • f1/f2/f3 language • ctrl+c quit"))

	parts := []string{head.String()}
	if d := m.dialog(); d != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(max(m.width, lipgloss.Width(d)), lipgloss.Center, d))
	}
	parts = append(parts, body.String())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// dialog renders the open modal, if any. It sits between the category tabs
// and the list so no row is hidden.
func (m Model) dialog() string {
	switch m.mode {
	case modeAlert:
		return m.dialogStyle(alertStyle).Render(m.alert + "\n\n" + helpStyle.Render("enter/esc"))
	case modeUpdate:
		body := m.pending.Message + "\n\n" + m.edit.View() + "\n\n" + helpStyle.Render("enter ok • esc cancel")
		return m.dialogStyle(dialogStyle).Render(body)
	}
	return ""
}

// dialogStyle widens st to the window, leaving room for the border.
func (m Model) dialogStyle(st lipgloss.Style) lipgloss.Style {
	if m.width > 0 {
		return st.Width(min(m.width-4, 72))
	}
	return st
}

func (m Model) languageBar() string {
	var parts []string
	for _, key := range []string{"f1", "f2", "f3"} {
		bundle, err := m.sess.Locales.Get(localeKeys[key])
		if err != nil {
			continue
		}
		style := tabStyle
		if bundle.Code == m.sess.Locale.Code {
			style = activeTab
		}
		parts = append(parts, style.Render(strings.ToUpper(key)+" "+bundle.Labels.Language))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) categoryBar() string {
	parts := make([]string, 0, len(types.Categories))
	for _, c := range types.Categories {
		style := tabStyle
		if c == m.sess.Category {
			style = activeTab
		}
		parts = append(parts, style.Render(m.sess.Locale.Category(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
