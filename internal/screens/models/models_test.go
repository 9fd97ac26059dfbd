package models

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/tutor"
)

type stubDiscoverer struct {
	models   []llm.ModelDescriptor
	selected string
	err      error
	keys     []string
}

func (d *stubDiscoverer) Discover(_ context.Context, key string) ([]llm.ModelDescriptor, string, error) {
	d.keys = append(d.keys, key)
	return d.models, d.selected, d.err
}

func load(t *testing.T, m *ModelsScreen) {
	t.Helper()
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected discovery command from Init")
	}
	m.Update(cmd())
}

func TestModelsScreenListsAndMarksSelection(t *testing.T) {
	d := &stubDiscoverer{
		models: []llm.ModelDescriptor{
			{ID: "models/embedding-001"},
			{ID: "models/gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash", CanGenerate: true},
		},
		selected: "models/gemini-1.5-flash",
	}
	m := New(d, "key-1")

	if !strings.Contains(m.View(80, 20), "Asking") {
		t.Error("expected loading message before discovery completes")
	}

	load(t, m)

	if len(d.keys) != 1 || d.keys[0] != "key-1" {
		t.Errorf("expected discovery with key-1, got %v", d.keys)
	}
	view := ansi.Strip(m.View(80, 20))
	if !strings.Contains(view, "2 models, 1 can answer questions.") {
		t.Errorf("missing summary in %q", view)
	}
	if !strings.Contains(view, "cannot generate") {
		t.Errorf("expected incapable model annotated, got %q", view)
	}
	if m.menu.Selected != 1 {
		t.Errorf("expected cursor on the selected model, got %d", m.menu.Selected)
	}
	if m.Status() != "using models/gemini-1.5-flash" {
		t.Errorf("unexpected status %q", m.Status())
	}
}

func TestModelsScreenNoUsableModel(t *testing.T) {
	d := &stubDiscoverer{
		models: []llm.ModelDescriptor{{ID: "models/embedding-001"}},
		err:    modelselect.ErrNoUsableModel,
	}
	m := New(d, "k")
	load(t, m)

	view := ansi.Strip(m.View(100, 20))
	if !strings.Contains(view, "no access to a model") {
		t.Errorf("expected no-model notice, got %q", view)
	}
	if m.Status() != "" {
		t.Errorf("expected empty status, got %q", m.Status())
	}
}

func TestModelsScreenDiscoveryFailure(t *testing.T) {
	d := &stubDiscoverer{err: &tutor.DiscoveryError{Err: &llm.ErrUnauthorized{Err: errors.New("401")}}}
	m := New(d, "bad")
	load(t, m)

	view := ansi.Strip(m.View(100, 20))
	if !strings.Contains(view, "rejected") {
		t.Errorf("expected rejected-key message, got %q", view)
	}
}

func TestModelsScreenBrowse(t *testing.T) {
	d := &stubDiscoverer{
		models: []llm.ModelDescriptor{
			{ID: "a", CanGenerate: true},
			{ID: "b", CanGenerate: true},
		},
		selected: "a",
	}
	m := New(d, "k")
	load(t, m)

	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.menu.Selected != 1 {
		t.Errorf("expected cursor to move down, got %d", m.menu.Selected)
	}
}
