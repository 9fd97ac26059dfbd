package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, a dark rendition of the web page's Apple-like look.
var (
	Primary   = lipgloss.Color("#0A84FF") // System Blue
	Secondary = lipgloss.Color("#64D2FF") // Light Blue
	Accent    = lipgloss.Color("#FFD60A") // Yellow, used for math
	Success   = lipgloss.Color("#30D158") // Green
	Error     = lipgloss.Color("#FF453A") // Red
	Text      = lipgloss.Color("#F5F5F7") // Near white
	TextDim   = lipgloss.Color("#86868B") // Grey
	BgDark    = lipgloss.Color("#1D1D1F") // Graphite
	BgCard    = lipgloss.Color("#2C2C2E") // Card
	Border    = lipgloss.Color("#3A3A3C") // Hairline
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	// Math highlights $...$ spans in answers.
	Math = lipgloss.NewStyle().
		Foreground(Accent)

	// Heading renders markdown headings and bold runs in answers.
	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	FocusedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	BlurredCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
