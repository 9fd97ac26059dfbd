package llm

import (
	"context"
)

// Provider is the core abstraction for a generative backend.
// A Provider is bound to a single credential; callers build a new one per
// submission through a Factory.
type Provider interface {
	// ListModels returns every model visible to the credential, in the
	// order the backend returned them.
	ListModels(ctx context.Context) ([]ModelDescriptor, error)

	// Generate sends one user turn made of ordered parts to the named model
	// and returns the text result.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the backend name, e.g. "gemini".
	Name() string
}

// Factory builds a Provider for a credential.
type Factory func(ctx context.Context, credential string) (Provider, error)

// ModelDescriptor is a backend-advertised model.
type ModelDescriptor struct {
	// ID is the identifier to pass back in Request.Model,
	// e.g. "models/gemini-1.5-flash".
	ID string

	// DisplayName is a human-readable name when the backend provides one.
	DisplayName string

	// CanGenerate reports whether the model supports content generation.
	CanGenerate bool
}

// Request describes what to send to the backend.
type Request struct {
	// Model is the identifier chosen during discovery.
	Model string

	// Parts is the ordered content of a single user turn. Order is
	// preserved on the wire; some backends treat the first text part as
	// framing context.
	Parts []Part
}

// Part is either text or an inline image. Exactly one of Text or Image is set.
type Part struct {
	Text  string
	Image *Image
}

// Image is inline image data.
type Image struct {
	MIMEType string
	Data     []byte
}

// TextPart returns a text part.
func TextPart(s string) Part {
	return Part{Text: s}
}

// ImagePart returns an inline image part.
func ImagePart(mimeType string, data []byte) Part {
	return Part{Image: &Image{MIMEType: mimeType, Data: data}}
}

// IsImage reports whether the part carries image data.
func (p Part) IsImage() bool {
	return p.Image != nil
}

// Response holds the backend's output.
type Response struct {
	// Text is the generated output, unmodified.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
