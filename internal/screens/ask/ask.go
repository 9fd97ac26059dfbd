// Package ask implements the question screen of the terminal tutor.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/router"
	"github.com/abhisek/tutor/internal/screen"
	"github.com/abhisek/tutor/internal/screens/models"
	"github.com/abhisek/tutor/internal/submission"
	"github.com/abhisek/tutor/internal/tutor"
	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

// Tutor answers submissions.
type Tutor interface {
	Ask(ctx context.Context, credential string, sub submission.Submission) (*tutor.Answer, error)
	Discover(ctx context.Context, credential string) ([]llm.ModelDescriptor, string, error)
}

// Config configures the ask screen.
type Config struct {
	Tutor       Tutor
	Provider    string
	Credentials credential.Chain
	Subtitle    string
}

type field int

const (
	fieldQuestion field = iota
	fieldImage
	fieldKey
	fieldSubmit
)

// AskScreen lets the student type a question, attach a photo and read the
// answer.
type AskScreen struct {
	cfg      Config
	question components.TextInput
	image    components.TextInput
	key      components.TextInput
	button   components.Button
	needKey  bool
	focus    field

	busy    bool
	frame   int
	answer  *tutor.Answer
	errMsg  string
	scroll  int
	lines   []string
	wrapped int
}

var _ screen.Screen = (*AskScreen)(nil)
var _ screen.KeyHintProvider = (*AskScreen)(nil)
var _ screen.StatusProvider = (*AskScreen)(nil)

// New creates an AskScreen. The key field is only shown when no credential
// is preconfigured.
func New(cfg Config) *AskScreen {
	s := &AskScreen{
		cfg:      cfg,
		question: components.NewTextInput("Question", "e.g. a parabola y = ax² + bx + c passes through (0, 0)...", false, 4000),
		image:    components.NewTextInput("Photo (optional)", "path to a .jpg, .jpeg or .png file", false, 1024),
		key:      components.NewTextInput("API key", "paste your API key", true, 512),
		button:   components.NewButton("Explain"),
	}
	key, _, err := cfg.Credentials.Resolve(cfg.Provider)
	s.needKey = err != nil || key == ""
	return s
}

func (s *AskScreen) Init() tea.Cmd {
	return s.setFocus(fieldQuestion)
}

func (s *AskScreen) Title() string {
	return "Ask"
}

// Status shows which model answered last.
func (s *AskScreen) Status() string {
	if s.answer == nil {
		return s.cfg.Subtitle
	}
	return fmt.Sprintf("%s · %.1fs", s.answer.Model, s.answer.Elapsed.Seconds())
}

func (s *AskScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Explain"},
	}
	if s.answer != nil || s.errMsg != "" {
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Scroll"},
			layout.KeyHint{Key: "Esc", Description: "Clear"},
		)
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+L", Description: "Models"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}

func (s *AskScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		return s.handleAnswer(msg)

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.frame++
		return s, spinnerTick()

	case router.RevealedMsg:
		return s, s.setFocus(s.focus)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forward(msg)
}

func (s *AskScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		if msg.String() == "down" && s.hasResult() {
			s.scrollBy(1)
			return s, nil
		}
		return s, s.setFocus(s.next(1))
	case "shift+tab", "up":
		if msg.String() == "up" && s.hasResult() {
			s.scrollBy(-1)
			return s, nil
		}
		return s, s.setFocus(s.next(-1))
	case "pgdown":
		s.scrollBy(10)
		return s, nil
	case "pgup":
		s.scrollBy(-10)
		return s, nil
	case "enter":
		return s.submit()
	case "esc":
		s.clearResult()
		return s, nil
	case "ctrl+l":
		return s.openModels()
	}

	return s.forward(msg)
}

// forward passes msg to the focused input.
func (s *AskScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldQuestion:
		s.question, cmd = s.question.Update(msg)
	case fieldImage:
		s.image, cmd = s.image.Update(msg)
	case fieldKey:
		s.key, cmd = s.key.Update(msg)
	}
	return s, cmd
}

func (s *AskScreen) next(step int) field {
	order := []field{fieldQuestion, fieldImage}
	if s.needKey {
		order = append(order, fieldKey)
	}
	order = append(order, fieldSubmit)

	for i, f := range order {
		if f == s.focus {
			return order[(i+step+len(order))%len(order)]
		}
	}
	return fieldQuestion
}

func (s *AskScreen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.question.Blur()
	s.image.Blur()
	s.key.Blur()
	s.button.Focused = f == fieldSubmit

	switch f {
	case fieldQuestion:
		return s.question.Focus()
	case fieldImage:
		return s.image.Focus()
	case fieldKey:
		return s.key.Focus()
	}
	return nil
}

// credential resolves the typed key first, then the preconfigured sources.
func (s *AskScreen) credential() (string, error) {
	key, _, err := credential.WithInput(s.key.Value(), s.cfg.Credentials).Resolve(s.cfg.Provider)
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", tutor.ErrMissingCredential
	}
	return key, nil
}

func (s *AskScreen) submit() (screen.Screen, tea.Cmd) {
	s.clearResult()

	var img *submission.Image
	if path := strings.TrimSpace(s.image.Value()); path != "" {
		loaded, err := submission.LoadImage(path)
		if err != nil {
			s.image.Submit(false)
			s.setError(imageMessage(err))
			return s, nil
		}
		s.image.Submit(true)
		img = loaded
	}

	key, err := s.credential()
	if err != nil {
		s.setError(tutor.UserMessage(err))
		return s, nil
	}

	sub := submission.New(s.question.Value(), img)
	if err := sub.Validate(); err != nil {
		s.setError(tutor.UserMessage(err))
		return s, nil
	}

	s.busy = true
	s.frame = 0
	s.button.Disabled = true
	return s, tea.Batch(s.askCmd(key, sub), spinnerTick())
}

func (s *AskScreen) askCmd(key string, sub submission.Submission) tea.Cmd {
	t := s.cfg.Tutor
	return func() tea.Msg {
		answer, err := t.Ask(context.Background(), key, sub)
		return answerMsg{Answer: answer, Err: err}
	}
}

func (s *AskScreen) handleAnswer(msg answerMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	s.button.Disabled = false
	if msg.Err != nil {
		s.setError(tutor.UserMessage(msg.Err))
		return s, nil
	}
	s.answer = msg.Answer
	s.wrapped = 0
	return s, nil
}

func (s *AskScreen) openModels() (screen.Screen, tea.Cmd) {
	key, err := s.credential()
	if err != nil {
		s.setError(tutor.UserMessage(err))
		return s, nil
	}
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: models.New(s.cfg.Tutor, key)}
	}
}

func (s *AskScreen) setError(msg string) {
	s.answer = nil
	s.errMsg = msg
	s.scroll = 0
}

func (s *AskScreen) clearResult() {
	s.answer = nil
	s.errMsg = ""
	s.scroll = 0
	s.lines = nil
	s.wrapped = 0
}

func (s *AskScreen) hasResult() bool {
	return s.answer != nil || s.errMsg != ""
}

func (s *AskScreen) scrollBy(n int) {
	s.scroll += n
	if last := len(s.lines) - 1; s.scroll > last {
		s.scroll = last
	}
	if s.scroll < 0 {
		s.scroll = 0
	}
}

func imageMessage(err error) string {
	if errors.Is(err, submission.ErrUnsupportedImage) {
		return "Please attach a .jpg, .jpeg or .png image."
	}
	return fmt.Sprintf("Could not read the photo: %v", err)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
