// Package tutor turns a credential and a submission into an explained
// answer: it discovers the models the credential can use, picks one, and
// issues a single generation request.
package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/modelselect"
	"github.com/abhisek/tutor/internal/submission"
)

// Answer is the rendered result of one submission.
type Answer struct {
	// Text is the backend's reply, unmodified.
	Text      string
	Model     string
	Usage     llm.Usage
	RequestID string
	Elapsed   time.Duration
}

// Service answers submissions. It holds no per-request state; a backend
// client is built from the credential on every call.
type Service struct {
	factory     llm.Factory
	cfg         Config
	instruction string
	observer    Observer
	newID       func() string
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithObserver registers a callback for state transitions.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithRequestIDs replaces the request ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a Service.
func NewService(factory llm.Factory, cfg Config, opts ...Option) *Service {
	s := &Service{
		factory:     factory,
		cfg:         cfg,
		instruction: BuildInstruction(cfg.Persona),
		newID:       uuid.NewString,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Instruction returns the system instruction sent with every request.
func (s *Service) Instruction() string {
	return s.instruction
}

// Ask runs one full validate, discover, select and generate cycle.
func (s *Service) Ask(ctx context.Context, credential string, sub submission.Submission) (*Answer, error) {
	start := time.Now()
	id := s.newID()
	ctx = llm.WithRequestID(ctx, id)
	log := s.logger.With("request_id", id)

	enter := func(st State) {
		log.Debug("submission state", "state", st.String())
		if s.observer != nil {
			s.observer(id, st)
		}
	}
	defer enter(StateIdle)

	enter(StateValidating)
	credential = strings.TrimSpace(credential)
	if credential == "" {
		enter(StateRejected)
		return nil, ErrMissingCredential
	}
	if err := sub.Validate(); err != nil {
		enter(StateRejected)
		return nil, err
	}

	enter(StateDiscovering)
	provider, models, err := s.discover(ctx, credential)
	if err != nil {
		enter(StateDiscoveryFailed)
		log.Debug("discovery failed", "error", err)
		return nil, err
	}

	enter(StateSelecting)
	model, err := modelselect.Select(models, s.cfg.Tiers)
	if err != nil {
		enter(StateNoModel)
		log.Debug("no usable model", "listed", len(models))
		return nil, err
	}
	log = log.With("provider", provider.Name(), "model", model)

	enter(StateGenerating)
	resp, err := provider.Generate(llm.WithPurpose(ctx, llm.PurposeAnswer), llm.Request{
		Model: model,
		Parts: BuildParts(s.instruction, sub),
	})
	if err != nil {
		enter(StateGenerationFailed)
		log.Debug("generation failed", "error", err)
		return nil, &GenerationError{Model: model, Err: err}
	}

	enter(StateRendered)
	answer := &Answer{
		Text:      resp.Text,
		Model:     model,
		Usage:     resp.Usage,
		RequestID: id,
		Elapsed:   time.Since(start),
	}
	log.Debug("answered",
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"elapsed", answer.Elapsed,
	)
	return answer, nil
}

// Discover lists the models visible to credential and reports which one Ask
// would select. The selection is empty when no model is usable.
func (s *Service) Discover(ctx context.Context, credential string) ([]llm.ModelDescriptor, string, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, "", ErrMissingCredential
	}

	ctx = llm.WithRequestID(ctx, s.newID())
	_, models, err := s.discover(ctx, credential)
	if err != nil {
		return nil, "", err
	}

	selected, err := modelselect.Select(models, s.cfg.Tiers)
	if err != nil {
		return models, "", err
	}
	return models, selected, nil
}

func (s *Service) discover(ctx context.Context, credential string) (llm.Provider, []llm.ModelDescriptor, error) {
	provider, err := s.factory(ctx, credential)
	if err != nil {
		return nil, nil, &DiscoveryError{Err: fmt.Errorf("create backend client: %w", err)}
	}

	models, err := provider.ListModels(llm.WithPurpose(ctx, llm.PurposeDiscovery))
	if err != nil {
		return nil, nil, &DiscoveryError{Err: err}
	}
	return provider, models, nil
}

// BuildParts orders the parts of the single user turn: instruction, then
// question text if present, then the image if present.
func BuildParts(instruction string, sub submission.Submission) []llm.Part {
	parts := []llm.Part{llm.TextPart(instruction)}
	if sub.HasText() {
		parts = append(parts, llm.TextPart(sub.Text))
	}
	if sub.HasImage() {
		parts = append(parts, llm.ImagePart(sub.Image.MIMEType, sub.Image.Data))
	}
	return parts
}
