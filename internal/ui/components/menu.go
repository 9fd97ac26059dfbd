package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

// MenuItem represents a single row in a menu.
type MenuItem struct {
	Label    string
	Detail   string
	Marked   bool
	Disabled bool
}

// Menu is a vertical, scrollable list. Disabled rows are shown dimmed but
// can still be browsed.
type Menu struct {
	Items    []MenuItem
	Selected int
	offset   int
}

// NewMenu creates a new menu with the first marked item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if item.Marked {
			m.Selected = i
			break
		}
	}
	return m
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = len(m.Items) - 1
	}

	return m, nil
}

// View renders at most height rows, keeping the selection visible.
func (m *Menu) View(height int) string {
	if height < 1 {
		height = 1
	}
	if m.Selected < m.offset {
		m.offset = m.Selected
	}
	if m.Selected >= m.offset+height {
		m.offset = m.Selected - height + 1
	}

	end := m.offset + height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.Items[i]
		mark := "  "
		if item.Marked {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("● ")
		}

		style := theme.Unselected
		switch {
		case i == m.Selected:
			style = theme.Selected
		case item.Disabled:
			style = theme.Disabled
		}

		cursor := "  "
		if i == m.Selected {
			cursor = "▸ "
		}
		line := style.Render(cursor+item.Label) + " " + mark
		if item.Detail != "" {
			line += theme.Hint.Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
