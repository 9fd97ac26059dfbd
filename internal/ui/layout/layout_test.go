package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) {
		t.Error("narrow window should be too small")
	}
	if !IsTooSmall(MinWidth, MinHeight-1) {
		t.Error("short window should be too small")
	}
	if IsTooSmall(MinWidth, MinHeight) {
		t.Error("minimum size should fit")
	}
}

func TestRenderHeaderStatus(t *testing.T) {
	out := ansi.Strip(RenderHeader("Ask", "models/gemini-1.5-flash", 80))
	if !strings.Contains(out, "Tutor  Ask") {
		t.Errorf("header missing trail: %q", out)
	}
	if !strings.Contains(out, "models/gemini-1.5-flash") {
		t.Errorf("header missing status: %q", out)
	}

	narrow := ansi.Strip(RenderHeader("Ask", strings.Repeat("x", 70), 60))
	if strings.Contains(narrow, "xxx") {
		t.Errorf("status should be dropped when it does not fit: %q", narrow)
	}
}

func TestRenderFooterDropsOverflow(t *testing.T) {
	hints := []KeyHint{
		{Key: "Enter", Description: "Explain"},
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+C", Description: strings.Repeat("q", 80)},
	}
	out := ansi.Strip(RenderFooter(hints, 60))
	if !strings.Contains(out, "Enter Explain") || !strings.Contains(out, "Tab Next field") {
		t.Errorf("footer missing hints: %q", out)
	}
	if strings.Contains(out, "Ctrl+C") {
		t.Errorf("overflowing hint should be dropped: %q", out)
	}
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("Ask", "", 60)
	footer := RenderFooter(nil, 60)
	frame := RenderFrame(header, "body", footer, 60, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}
