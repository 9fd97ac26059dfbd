package ask

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/components"
	"github.com/abhisek/tutor/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *AskScreen) View(width, height int) string {
	inner := width - 4
	if inner > 100 {
		inner = 100
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(inner).Render("Math & Physics Tutor") + "\n")
	if s.cfg.Subtitle != "" {
		b.WriteString(theme.Subtitle.Width(inner).Render(s.cfg.Subtitle) + "\n")
	}
	b.WriteString(s.question.View(inner) + "\n")
	b.WriteString(s.image.View(inner) + "\n")
	if s.needKey {
		b.WriteString(s.key.View(inner) + "\n")
	}
	b.WriteString(s.button.View(spinnerFrames[s.frame%len(spinnerFrames)]+" Thinking...") + "\n")

	form := b.String()
	remaining := height - lipgloss.Height(form) - 1
	if remaining < 3 {
		remaining = 3
	}

	content := form + "\n" + s.renderResult(inner, remaining)
	return lipgloss.NewStyle().PaddingLeft(2).Render(content)
}

// renderResult renders the visible window of the answer or the error.
func (s *AskScreen) renderResult(width, height int) string {
	switch {
	case s.errMsg != "":
		return theme.ErrorText.Width(width).Render(s.errMsg)
	case s.answer == nil:
		return ""
	}

	if s.lines == nil || s.wrapped != width {
		s.lines = components.RenderAnswer(s.answer.Text, width)
		s.wrapped = width
		if s.scroll >= len(s.lines) {
			s.scroll = len(s.lines) - 1
		}
	}

	end := s.scroll + height - 1
	if end > len(s.lines) {
		end = len(s.lines)
	}
	visible := strings.Join(s.lines[s.scroll:end], "\n")

	footer := theme.Hint.Render(fmt.Sprintf("%s · lines %d-%d of %d", s.answer.Model, s.scroll+1, end, len(s.lines)))
	return visible + "\n" + footer
}
