package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
)

type stubTutor struct{}

func (stubTutor) Ask(context.Context, string, submission.Submission) (*tutor.Answer, error) {
	return &tutor.Answer{Text: "ok", Model: "m"}, nil
}

func (stubTutor) Discover(context.Context, string) ([]llm.ModelDescriptor, string, error) {
	return nil, "", nil
}

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "stub" }
func (s *stubScreen) Title() string                           { return "Stub" }

func newTestModel() AppModel {
	m := newAppModel(Options{
		Tutor:       stubTutor{},
		Provider:    llm.ProviderGemini,
		Credentials: credential.Chain{credential.Static("k")},
		Subtitle:    "Grade 9",
	})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	m := newTestModel()
	view := ansi.Strip(m.render())

	for _, want := range []string{"Tutor", "Ask", "Grade 9", "Explain", "Ctrl+L"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestTooSmall(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	view := ansi.Strip(updated.(AppModel).render())
	if !strings.Contains(view, "needs at least 60 x 20") {
		t.Errorf("expected size warning, got %q", view)
	}
	if strings.Contains(view, "Explain") {
		t.Error("screen should not render below the minimum size")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestEscPopsPushedScreen(t *testing.T) {
	m := newTestModel()
	m.router.Push(&stubScreen{})

	view := ansi.Strip(m.render())
	if !strings.Contains(view, "Ask › Stub") {
		t.Errorf("expected breadcrumb title, got %q", view)
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected PopScreenMsg")
	}
	m.Update(router.PopScreenMsg{})
	if m.router.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", m.router.Depth())
	}
}

func TestEscAtBottomReachesScreen(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("Esc on the bottom screen must not pop")
		}
	}
	if m.router.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", m.router.Depth())
	}
}
