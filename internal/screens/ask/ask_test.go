package ask

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screens/models"
	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
)

// stubTutor records submissions and replies with a fixed answer or error.
type stubTutor struct {
	answer *tutor.Answer
	err    error
	keys   []string
	subs   []submission.Submission
}

func (s *stubTutor) Ask(_ context.Context, key string, sub submission.Submission) (*tutor.Answer, error) {
	s.keys = append(s.keys, key)
	s.subs = append(s.subs, sub)
	return s.answer, s.err
}

func (s *stubTutor) Discover(context.Context, string) ([]llm.ModelDescriptor, string, error) {
	return nil, "", nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *AskScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newScreen(t *testing.T, st *stubTutor, creds credential.Chain) *AskScreen {
	t.Helper()
	s := New(Config{
		Tutor:       st,
		Provider:    llm.ProviderGemini,
		Credentials: creds,
		Subtitle:    "Grade 9",
	})
	s.Init()
	return s
}

// submitAndWait presses Enter and feeds the answer back to the screen.
func submitAndWait(t *testing.T, s *AskScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}
	if !s.busy {
		t.Fatal("expected screen to be busy while answering")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatalf("expected batch of ask and spinner commands")
	}
	s.Update(batch[0]())
}

func TestAskScreenAnswers(t *testing.T) {
	st := &stubTutor{answer: &tutor.Answer{
		Text:    "## Idea\nSince $a = 0$, the parabola passes through the origin.",
		Model:   "models/gemini-1.5-flash",
		Elapsed: 1200 * time.Millisecond,
	}}
	s := newScreen(t, st, credential.Chain{credential.Static("env-key")})

	if s.needKey {
		t.Fatal("key field should be hidden when a key is preconfigured")
	}

	typeText(s, "why c=0")
	submitAndWait(t, s)

	if s.busy {
		t.Error("expected busy cleared after answer")
	}
	if len(st.keys) != 1 || st.keys[0] != "env-key" {
		t.Errorf("expected preconfigured key, got %v", st.keys)
	}
	if st.subs[0].Text != "why c=0" || st.subs[0].Image != nil {
		t.Errorf("unexpected submission %+v", st.subs[0])
	}

	view := ansi.Strip(s.View(100, 40))
	if !strings.Contains(view, "$a = 0$") {
		t.Errorf("expected answer with math verbatim, got %q", view)
	}
	if s.Status() != "models/gemini-1.5-flash · 1.2s" {
		t.Errorf("unexpected status %q", s.Status())
	}
}

func TestAskScreenTypedKeyWins(t *testing.T) {
	st := &stubTutor{answer: &tutor.Answer{Text: "ok", Model: "m"}}
	s := newScreen(t, st, nil)
	if !s.needKey {
		t.Fatal("expected key field without preconfigured key")
	}

	typeText(s, "q")
	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if s.focus != fieldKey {
		t.Fatalf("expected focus on key field, got %d", s.focus)
	}
	typeText(s, "typed-key")

	if strings.Contains(ansi.Strip(s.View(100, 40)), "typed-key") {
		t.Error("key must be masked on screen")
	}

	submitAndWait(t, s)
	if len(st.keys) != 1 || st.keys[0] != "typed-key" {
		t.Errorf("expected typed key, got %v", st.keys)
	}
}

func TestAskScreenRejectsLocally(t *testing.T) {
	tests := []struct {
		name    string
		creds   credential.Chain
		text    string
		wantMsg string
	}{
		{"missing key", nil, "q", "API key"},
		{"empty submission", credential.Chain{credential.Static("k")}, "   ", "type a question"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &stubTutor{}
			s := newScreen(t, st, tt.creds)
			typeText(s, tt.text)

			_, cmd := s.Update(specialKey(tea.KeyEnter))
			if cmd != nil {
				t.Error("expected no command for a rejected submission")
			}
			if len(st.subs) != 0 {
				t.Error("expected no call to the tutor")
			}
			if !strings.Contains(s.errMsg, tt.wantMsg) {
				t.Errorf("expected %q in error, got %q", tt.wantMsg, s.errMsg)
			}
		})
	}
}

func TestAskScreenImage(t *testing.T) {
	dir := t.TempDir()
	png := filepath.Join(dir, "problem.png")
	if err := os.WriteFile(png, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("attached", func(t *testing.T) {
		st := &stubTutor{answer: &tutor.Answer{Text: "ok", Model: "m"}}
		s := newScreen(t, st, credential.Chain{credential.Static("k")})
		s.Update(specialKey(tea.KeyTab))
		s.image.SetValue(png)

		submitAndWait(t, s)
		img := st.subs[0].Image
		if img == nil || img.MIMEType != "image/png" || len(img.Data) != 4 {
			t.Errorf("unexpected image %+v", img)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		st := &stubTutor{}
		s := newScreen(t, st, credential.Chain{credential.Static("k")})
		s.image.SetValue(filepath.Join(dir, "scan.gif"))

		s.Update(specialKey(tea.KeyEnter))
		if len(st.subs) != 0 {
			t.Error("expected no call for an unsupported image")
		}
		if !strings.Contains(s.errMsg, ".png") {
			t.Errorf("unexpected message %q", s.errMsg)
		}
	})
}

func TestAskScreenBackendError(t *testing.T) {
	st := &stubTutor{err: &tutor.GenerationError{
		Model: "models/gemini-1.5-flash",
		Err:   &llm.ErrRateLimit{Err: errors.New("429 quota")},
	}}
	s := newScreen(t, st, credential.Chain{credential.Static("k")})
	typeText(s, "q")
	submitAndWait(t, s)

	if !strings.Contains(s.errMsg, "quota") {
		t.Errorf("expected quota message, got %q", s.errMsg)
	}
	if s.answer != nil {
		t.Error("expected no answer on failure")
	}

	s.Update(specialKey(tea.KeyEscape))
	if s.errMsg != "" {
		t.Error("expected Esc to clear the error")
	}
}

func TestAskScreenIgnoresKeysWhileBusy(t *testing.T) {
	st := &stubTutor{answer: &tutor.Answer{Text: "ok", Model: "m"}}
	s := newScreen(t, st, credential.Chain{credential.Static("k")})
	typeText(s, "q")
	s.Update(specialKey(tea.KeyEnter))

	typeText(s, "more")
	if s.question.Value() != "q" {
		t.Errorf("expected input frozen while busy, got %q", s.question.Value())
	}
	if _, cmd := s.Update(specialKey(tea.KeyEnter)); cmd != nil {
		t.Error("expected second submit to be ignored")
	}
}

func TestAskScreenScroll(t *testing.T) {
	st := &stubTutor{answer: &tutor.Answer{Text: strings.Repeat("line\n", 60), Model: "m"}}
	s := newScreen(t, st, credential.Chain{credential.Static("k")})
	typeText(s, "q")
	submitAndWait(t, s)
	s.View(100, 30)

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyPgDown))
	if s.scroll != 11 {
		t.Errorf("expected scroll 11, got %d", s.scroll)
	}
	s.Update(specialKey(tea.KeyPgUp))
	s.Update(specialKey(tea.KeyPgUp))
	if s.scroll != 0 {
		t.Errorf("expected scroll clamped at 0, got %d", s.scroll)
	}
}

func TestAskScreenOpensModels(t *testing.T) {
	s := newScreen(t, &stubTutor{}, credential.Chain{credential.Static("k")})

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected a command for ctrl+l")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := push.Screen.(*models.ModelsScreen); !ok {
		t.Errorf("expected models screen, got %T", push.Screen)
	}
}
