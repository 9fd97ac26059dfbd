package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func plain(lines []string) string {
	return ansi.Strip(strings.Join(lines, "\n"))
}

func TestRenderAnswerKeepsMathVerbatim(t *testing.T) {
	got := plain(RenderAnswer("Since $x^2 + 1 > 0$, and $$\\frac{a}{b}$$ holds.", 80))
	if !strings.Contains(got, "$x^2 + 1 > 0$") {
		t.Errorf("inline math lost: %q", got)
	}
	if !strings.Contains(got, "$$\\frac{a}{b}$$") {
		t.Errorf("display math lost: %q", got)
	}
}

func TestRenderAnswerHeadingsAndBold(t *testing.T) {
	got := plain(RenderAnswer("## Step 1\nUse **Newton's law**.", 80))
	if strings.Contains(got, "#") || strings.Contains(got, "**") {
		t.Errorf("markdown markers should be consumed: %q", got)
	}
	if !strings.Contains(got, "Step 1") || !strings.Contains(got, "Newton's law") {
		t.Errorf("content missing: %q", got)
	}
}

func TestRenderAnswerWraps(t *testing.T) {
	lines := RenderAnswer(strings.Repeat("word ", 40), 20)
	if len(lines) < 5 {
		t.Fatalf("expected wrapping into several lines, got %d", len(lines))
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 20 {
			t.Errorf("line wider than 20: %d %q", w, l)
		}
	}
}

func TestMenuNavigationAndScroll(t *testing.T) {
	items := []MenuItem{{Label: "a"}, {Label: "b", Marked: true}, {Label: "c"}, {Label: "d"}}
	m := NewMenu(items)
	if m.Selected != 1 {
		t.Fatalf("expected marked item selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("expected selection clamped at 3, got %d", m.Selected)
	}

	view := ansi.Strip(m.View(2))
	if strings.Contains(view, "a") || !strings.Contains(view, "d") {
		t.Errorf("expected window scrolled to the selection, got %q", view)
	}
}
