// Package models shows the models visible to the configured key and which
// one the tutor would pick.
package models

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/tutor"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
	"github.com/abhisek/tutor/internal/ui/theme"
)

// Discoverer lists models for a credential.
type Discoverer interface {
	Discover(ctx context.Context, credential string) ([]llm.ModelDescriptor, string, error)
}

// modelsMsg carries the discovery result.
type modelsMsg struct {
	Models   []llm.ModelDescriptor
	Selected string
	Err      error
}

// ModelsScreen lists discovered models.
type ModelsScreen struct {
	discoverer Discoverer
	credential string

	loading  bool
	menu     components.Menu
	selected string
	capable  int
	errMsg   string
}

var _ screen.Screen = (*ModelsScreen)(nil)
var _ screen.KeyHintProvider = (*ModelsScreen)(nil)
var _ screen.StatusProvider = (*ModelsScreen)(nil)

// New creates a ModelsScreen that discovers with credential.
func New(d Discoverer, credential string) *ModelsScreen {
	return &ModelsScreen{discoverer: d, credential: credential, loading: true}
}

func (m *ModelsScreen) Init() tea.Cmd {
	d, key := m.discoverer, m.credential
	return func() tea.Msg {
		models, selected, err := d.Discover(context.Background(), key)
		return modelsMsg{Models: models, Selected: selected, Err: err}
	}
}

func (m *ModelsScreen) Title() string {
	return "Models"
}

func (m *ModelsScreen) Status() string {
	if m.selected == "" {
		return ""
	}
	return "using " + m.selected
}

func (m *ModelsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m *ModelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case modelsMsg:
		m.loading = false
		if msg.Err != nil && tutor.Classify(msg.Err) != tutor.KindNoUsableModel {
			m.errMsg = tutor.UserMessage(msg.Err)
			return m, nil
		}
		m.selected = msg.Selected
		m.capable = len(modelselect.Capable(msg.Models))
		m.menu = components.NewMenu(menuItems(msg.Models, msg.Selected))
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

func menuItems(models []llm.ModelDescriptor, selected string) []components.MenuItem {
	items := make([]components.MenuItem, 0, len(models))
	for _, md := range models {
		detail := md.DisplayName
		if !md.CanGenerate {
			detail = strings.TrimSpace(detail + " (cannot generate)")
		}
		items = append(items, components.MenuItem{
			Label:    md.ID,
			Detail:   detail,
			Marked:   md.ID == selected,
			Disabled: !md.CanGenerate,
		})
	}
	return items
}

func (m *ModelsScreen) View(width, height int) string {
	pad := lipgloss.NewStyle().Padding(1, 2)
	switch {
	case m.loading:
		return pad.Foreground(theme.TextDim).Render("Asking the service which models this key can use...")
	case m.errMsg != "":
		return pad.Render(theme.ErrorText.Width(width - 4).Render(m.errMsg))
	}

	summary := fmt.Sprintf("%d models, %d can answer questions.", len(m.menu.Items), m.capable)
	if m.selected == "" {
		summary += "\n" + theme.ErrorText.Render(tutor.UserMessage(modelselect.ErrNoUsableModel))
	}

	list := m.menu.View(height - 4)
	return pad.Render(theme.Body.Render(summary) + "\n\n" + list)
}
