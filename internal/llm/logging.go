package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/abhisek/tutor/internal/store"
)

// LoggingProvider is a decorator that records every backend call as a usage
// event. Only metadata is recorded; question text, images and answers are
// never written.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, eventRepo: repo}
}

func (l *LoggingProvider) Name() string {
	return l.inner.Name()
}

func (l *LoggingProvider) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	start := time.Now()

	models, err := l.inner.ListModels(ctx)

	data := l.eventData(ctx, start, err)
	data.Purpose = PurposeDiscovery
	l.record(ctx, data)

	return models, err
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := l.eventData(ctx, start, err)
	data.Model = req.Model
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}
	l.record(ctx, data)

	return resp, err
}

func (l *LoggingProvider) eventData(ctx context.Context, start time.Time, err error) store.LLMRequestEventData {
	data := store.LLMRequestEventData{
		RequestID: RequestIDFrom(ctx),
		Provider:  l.inner.Name(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	return data
}

// record logs the event but never fails the request if logging fails.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	slog.Debug("llm call",
		"request_id", data.RequestID,
		"provider", data.Provider,
		"purpose", data.Purpose,
		"model", data.Model,
		"latency_ms", data.LatencyMs,
		"success", data.Success,
	)

	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
}
