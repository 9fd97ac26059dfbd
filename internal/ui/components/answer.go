package components

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tutor/internal/ui/theme"
)

var (
	mathSpan = regexp.MustCompile(`\$\$[^$]+\$\$|\$[^$\n]+\$`)
	boldSpan = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
)

// RenderAnswer styles an answer for the terminal and wraps it to width. Math
// is kept verbatim, including its $ delimiters, and only colored.
func RenderAnswer(text string, width int) []string {
	if width < 10 {
		width = 10
	}
	wrap := lipgloss.NewStyle().Width(width)

	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		var styled string
		if strings.HasPrefix(trimmed, "#") {
			styled = theme.Heading.Render(strings.TrimSpace(strings.TrimLeft(trimmed, "#")))
		} else {
			styled = styleInline(line)
		}
		out = append(out, strings.Split(wrap.Render(styled), "\n")...)
	}
	return out
}

func styleInline(line string) string {
	var b strings.Builder
	last := 0
	for _, loc := range mathSpan.FindAllStringIndex(line, -1) {
		b.WriteString(styleBold(line[last:loc[0]]))
		b.WriteString(theme.Math.Render(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(styleBold(line[last:]))
	return b.String()
}

func styleBold(s string) string {
	return boldSpan.ReplaceAllStringFunc(s, func(m string) string {
		return theme.Heading.Render(boldSpan.FindStringSubmatch(m)[1])
	})
}
