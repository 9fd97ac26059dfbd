package tutor

import (
	"fmt"
	"strings"
)

// Persona describes who answers and how answers are formatted.
type Persona struct {
	// Grade is the student's level, e.g. "Grade 9".
	Grade string `yaml:"grade"`
	// Subjects the teacher covers.
	Subjects []string `yaml:"subjects"`
	// Language answers are written in.
	Language string `yaml:"language"`
	// Rules are appended after the built-in style rules.
	Rules []string `yaml:"rules"`
	// Override replaces the generated instruction entirely.
	Override string `yaml:"override"`
}

// DefaultPersona is a middle-school math and physics teacher.
func DefaultPersona() Persona {
	return Persona{
		Grade:    "Grade 9",
		Subjects: []string{"math", "physics"},
		Language: "English",
	}
}

// BuildInstruction renders the system instruction sent as the first part of
// every generation request.
func BuildInstruction(p Persona) string {
	if s := strings.TrimSpace(p.Override); s != "" {
		return s
	}

	def := DefaultPersona()
	if strings.TrimSpace(p.Grade) == "" {
		p.Grade = def.Grade
	}
	if len(p.Subjects) == 0 {
		p.Subjects = def.Subjects
	}
	if strings.TrimSpace(p.Language) == "" {
		p.Language = def.Language
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a world-class middle-school %s teacher.\n", joinSubjects(p.Subjects))
	fmt.Fprintf(&b, "Your student is at %s level.\n", p.Grade)
	b.WriteString("Answer in the following style:\n")

	rules := []string{
		"Clear and intuitive: structure the explanation in layers, one idea at a time.",
		"Formulas: write every mathematical expression in LaTeX wrapped in $.",
		"Guide the student: analyse the approach first, then give the steps.",
		fmt.Sprintf("Tone: warm and encouraging. Answer in %s.", p.Language),
	}
	rules = append(rules, p.Rules...)
	for i, r := range rules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(r))
	}

	return strings.TrimRight(b.String(), "\n")
}

func joinSubjects(subjects []string) string {
	switch len(subjects) {
	case 1:
		return subjects[0]
	case 2:
		return subjects[0] + " and " + subjects[1]
	default:
		return strings.Join(subjects[:len(subjects)-1], ", ") + " and " + subjects[len(subjects)-1]
	}
}

// Subtitle is the one-line description shown under page and screen titles,
// e.g. "Grade 9 · math and physics".
func Subtitle(p Persona) string {
	var parts []string
	if g := strings.TrimSpace(p.Grade); g != "" {
		parts = append(parts, g)
	}
	if len(p.Subjects) > 0 {
		parts = append(parts, joinSubjects(p.Subjects))
	}
	return strings.Join(parts, " · ")
}
