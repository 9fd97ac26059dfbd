// Package layout draws the frame around every screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

// Below this size the frame is replaced by a resize notice.
const (
	MinWidth  = 60
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

const hintGap = "   "

var (
	bar = lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	brand     = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	crumb     = lipgloss.NewStyle().Foreground(theme.Text)
	statusTxt = lipgloss.NewStyle().Foreground(theme.TextDim)
	hintKey   = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	hintDesc  = lipgloss.NewStyle().Foreground(theme.TextDim)
)

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Window is %d x %d.\n\nThe tutor needs at least %d x %d.",
			width, height, MinWidth, MinHeight))
}

// innerWidth is the text width left inside a bar of the given outer width.
func innerWidth(width int) int {
	w := width - bar.GetHorizontalFrameSize()
	if w < 0 {
		return 0
	}
	return w
}

// RenderHeader shows the brand and the screen trail on the left and status
// on the right. Status is dropped first when space runs out.
func RenderHeader(title, status string, width int) string {
	inner := innerWidth(width)
	left := brand.Render("Tutor")
	if title != "" {
		left += "  " + crumb.Render(title)
	}

	right := statusTxt.Render(status)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if status == "" || gap < 2 {
		return bar.Width(width).Render(left)
	}
	return bar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter lays out hints left to right and stops at the first one that
// no longer fits.
func RenderFooter(hints []KeyHint, width int) string {
	inner := innerWidth(width)
	var b strings.Builder
	used := 0
	for i, h := range hints {
		part := hintKey.Render(h.Key) + " " + hintDesc.Render(h.Description)
		need := lipgloss.Width(part)
		if i > 0 {
			need += len(hintGap)
		}
		if used+need > inner {
			break
		}
		if i > 0 {
			b.WriteString(hintGap)
		}
		b.WriteString(part)
		used += need
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content all the
// height the bars leave over.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if body < 0 {
		body = 0
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
