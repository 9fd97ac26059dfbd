package tutor

import "github.com/abhisek/tutor/internal/modelselect"

// Config is the tutoring pipeline as data: which models to prefer and who
// answers.
type Config struct {
	// Tiers are model-name substrings tried in order during selection.
	Tiers   []string
	Persona Persona
}

// DefaultConfig returns the Gemini-oriented defaults.
func DefaultConfig() Config {
	return Config{
		Tiers:   append([]string(nil), modelselect.DefaultTiers...),
		Persona: DefaultPersona(),
	}
}
