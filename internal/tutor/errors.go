package tutor

import (
	"errors"
	"fmt"

	"github.com/abhisek/tutor/internal/credential"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/submission"
)

// ErrMissingCredential is returned when no API key was supplied.
var ErrMissingCredential = errors.New("an API key is required")

// Kind classifies a submission failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredential
	KindEmptySubmission
	KindBackendUnreachable
	KindNoUsableModel
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindEmptySubmission:
		return "empty_submission"
	case KindBackendUnreachable:
		return "backend_unreachable"
	case KindNoUsableModel:
		return "no_usable_model"
	case KindGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// DiscoveryError wraps a failure to list models.
type DiscoveryError struct {
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("model discovery failed: %v", e.Err)
}

func (e *DiscoveryError) Unwrap() error { return e.Err }

// GenerationError wraps a failure of the generation call.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation with %s failed: %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Classify maps an error returned by Service to its Kind.
func Classify(err error) Kind {
	var (
		discErr *DiscoveryError
		genErr  *GenerationError
		srcErr  *credential.SourceError
	)
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrMissingCredential), errors.As(err, &srcErr):
		return KindMissingCredential
	case errors.Is(err, submission.ErrEmpty):
		return KindEmptySubmission
	case errors.As(err, &discErr):
		return KindBackendUnreachable
	case errors.Is(err, modelselect.ErrNoUsableModel):
		return KindNoUsableModel
	case errors.As(err, &genErr):
		return KindGeneration
	default:
		return KindUnknown
	}
}

// UserMessage converts err into the inline message shown to the student.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	switch Classify(err) {
	case KindMissingCredential:
		var srcErr *credential.SourceError
		if errors.As(err, &srcErr) {
			return fmt.Sprintf("The stored API keys could not be read (%s). Please enter your API key.", srcErr.Source)
		}
		return "Please enter your API key first."
	case KindEmptySubmission:
		return "Please type a question or attach a photo of the problem."
	case KindBackendUnreachable:
		var unauth *llm.ErrUnauthorized
		if errors.As(err, &unauth) {
			return "The API key was rejected. Check that it is correct and has access to the service."
		}
		return "Cannot reach the AI service. Check your API key and network connection."
	case KindNoUsableModel:
		return "Your API key has no access to a model that can answer questions."
	case KindGeneration:
		var (
			genErr   *GenerationError
			notFound *llm.ErrModelNotFound
			limited  *llm.ErrRateLimit
		)
		errors.As(err, &genErr)
		switch {
		case errors.As(err, &notFound):
			return fmt.Sprintf("The model %s is not available for this API key: %v", genErr.Model, genErr.Err)
		case errors.As(err, &limited):
			return fmt.Sprintf("The AI service is busy or your quota is used up: %v", genErr.Err)
		}
		return fmt.Sprintf("Something went wrong while answering: %v", genErr.Err)
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}
