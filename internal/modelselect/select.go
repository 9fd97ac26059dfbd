// Package modelselect picks the generation model from a discovered list.
package modelselect

import (
	"errors"
	"strings"

	"github.com/abhisek/tutor/internal/llm"
)

// ErrNoUsableModel is returned when no listed model can generate content.
var ErrNoUsableModel = errors.New("no model available that can generate content")

// DefaultTiers prefers fast, cheap models and then more capable ones.
var DefaultTiers = []string{"flash", "pro"}

// Select returns the ID of the model to use.
//
// Models that cannot generate are ignored. Tiers are tried in order; within a
// tier the first model, in listed order, whose ID contains the tier
// (case-insensitive) wins. With no tier match the first capable model is
// returned.
func Select(models []llm.ModelDescriptor, tiers []string) (string, error) {
	capable := Capable(models)
	if len(capable) == 0 {
		return "", ErrNoUsableModel
	}

	for _, tier := range tiers {
		needle := strings.ToLower(strings.TrimSpace(tier))
		if needle == "" {
			continue
		}
		for _, m := range capable {
			if strings.Contains(strings.ToLower(m.ID), needle) {
				return m.ID, nil
			}
		}
	}

	return capable[0].ID, nil
}

// Capable filters models to those that can generate, keeping order.
func Capable(models []llm.ModelDescriptor) []llm.ModelDescriptor {
	var out []llm.ModelDescriptor
	for _, m := range models {
		if m.CanGenerate {
			out = append(out, m)
		}
	}
	return out
}
