package tutor

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/submission"
)

func TestBuildInstruction_Default(t *testing.T) {
	got := BuildInstruction(DefaultPersona())

	for _, want := range []string{
		"middle-school math and physics teacher",
		"Grade 9",
		"LaTeX wrapped in $",
		"analyse the approach first, then give the steps",
		"warm and encouraging",
		"Answer in English.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestBuildInstruction_Customized(t *testing.T) {
	got := BuildInstruction(Persona{
		Grade:    "Grade 7",
		Subjects: []string{"chemistry"},
		Language: "Chinese",
		Rules:    []string{"Keep answers under 300 words."},
	})

	for _, want := range []string{
		"middle-school chemistry teacher",
		"Grade 7",
		"Answer in Chinese.",
		"5. Keep answers under 300 words.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instruction missing %q:\n%s", want, got)
		}
	}
}

func TestBuildInstruction_BlankFieldsUseDefaults(t *testing.T) {
	if BuildInstruction(Persona{}) != BuildInstruction(DefaultPersona()) {
		t.Fatal("empty persona should render like the default persona")
	}
}

func TestBuildInstruction_Override(t *testing.T) {
	got := BuildInstruction(Persona{Grade: "Grade 9", Override: "  Answer like a pirate.  "})
	if got != "Answer like a pirate." {
		t.Fatalf("override ignored: %q", got)
	}
}

func TestJoinSubjects(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"math"}, "math"},
		{[]string{"math", "physics"}, "math and physics"},
		{[]string{"math", "physics", "chemistry"}, "math, physics and chemistry"},
	}
	for _, tt := range tests {
		if got := joinSubjects(tt.in); got != tt.want {
			t.Errorf("joinSubjects(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubtitle(t *testing.T) {
	tests := []struct {
		p    Persona
		want string
	}{
		{DefaultPersona(), "Grade 9 · math and physics"},
		{Persona{Grade: "Grade 8"}, "Grade 8"},
		{Persona{Subjects: []string{"physics"}}, "physics"},
		{Persona{}, ""},
	}
	for _, tt := range tests {
		if got := Subtitle(tt.p); got != tt.want {
			t.Errorf("Subtitle(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestClassifyAndUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		contains string
	}{
		{"missing credential", ErrMissingCredential, KindMissingCredential, "API key"},
		{"unreadable secrets", &credential.SourceError{Source: "secrets file", Err: errors.New("yaml: bad")}, KindMissingCredential, "stored API keys could not be read"},
		{"empty submission", submission.ErrEmpty, KindEmptySubmission, "question or attach a photo"},
		{"unauthorized", &DiscoveryError{Err: &llm.ErrUnauthorized{Err: errors.New("401")}}, KindBackendUnreachable, "rejected"},
		{"unreachable", &DiscoveryError{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}}, KindBackendUnreachable, "Cannot reach"},
		{"no model", modelselect.ErrNoUsableModel, KindNoUsableModel, "no access to a model"},
		{"model not found", &GenerationError{Model: "m", Err: &llm.ErrModelNotFound{Model: "m", Err: errors.New("404")}}, KindGeneration, "not available"},
		{"rate limited", &GenerationError{Model: "m", Err: &llm.ErrRateLimit{Err: errors.New("429")}}, KindGeneration, "quota"},
		{"generic generation", &GenerationError{Model: "m", Err: errors.New("safety block")}, KindGeneration, "safety block"},
		{"unknown", errors.New("weird"), KindUnknown, "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.kind {
				t.Fatalf("Classify = %v, want %v", got, tt.kind)
			}
			if msg := UserMessage(tt.err); !strings.Contains(msg, tt.contains) {
				t.Fatalf("UserMessage = %q, want it to contain %q", msg, tt.contains)
			}
		})
	}

	if UserMessage(nil) != "" {
		t.Fatal("nil error should have no message")
	}
}

func TestKindString(t *testing.T) {
	if KindNoUsableModel.String() != "no_usable_model" {
		t.Fatalf("got %q", KindNoUsableModel.String())
	}
	if Kind(99).String() != "unknown" {
		t.Fatalf("got %q", Kind(99).String())
	}
	if StateDiscoveryFailed.String() != "discovery_failed" || State(-1).String() != "unknown" {
		t.Fatal("unexpected state names")
	}
}
