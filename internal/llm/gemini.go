package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"google.golang.org/genai"
)

const (
	// geminiGenerateAction is the supported action advertised by models that
	// can serve GenerateContent.
	geminiGenerateAction = "generateContent"

	geminiListPageSize = 100
)

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Name() string {
	return "gemini"
}

func (p *GeminiProvider) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	page, err := p.client.Models.List(ctx, &genai.ListModelsConfig{PageSize: geminiListPageSize})
	if err != nil {
		return nil, mapGeminiError(err, "")
	}

	var out []ModelDescriptor
	for {
		for _, m := range page.Items {
			out = append(out, geminiDescriptor(m))
		}
		if page.NextPageToken == "" {
			break
		}
		page, err = page.Next(ctx)
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, mapGeminiError(err, "")
		}
	}
	return out, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(buildGeminiParts(req.Parts), genai.RoleUser),
	}

	result, err := p.client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return nil, mapGeminiError(err, req.Model)
	}

	if len(result.Candidates) == 0 {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no candidates in Gemini response"),
		}
	}

	resp := &Response{
		Text:       result.Text(),
		Model:      req.Model,
		StopReason: mapGeminiStopReason(result),
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func geminiDescriptor(m *genai.Model) ModelDescriptor {
	return ModelDescriptor{
		ID:          m.Name,
		DisplayName: m.DisplayName,
		CanGenerate: slices.Contains(m.SupportedActions, geminiGenerateAction),
	}
}

func buildGeminiParts(parts []Part) []*genai.Part {
	out := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.IsImage() {
			out = append(out, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: part.Image.MIMEType,
					Data:     part.Image.Data,
				},
			})
			continue
		}
		out = append(out, &genai.Part{Text: part.Text})
	}
	return out
}

func mapGeminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 {
		switch result.Candidates[0].FinishReason {
		case genai.FinishReasonStop:
			return "end"
		case genai.FinishReasonMaxTokens:
			return "max_tokens"
		}
	}
	return "end"
}

func mapGeminiError(err error, model string) error {
	apiErr, ok := asGeminiAPIError(err)
	if !ok {
		return &ErrProviderUnavailable{Err: err}
	}
	// An invalid key is reported as 400 with an ErrorInfo detail.
	if apiErr.Code == http.StatusBadRequest && geminiKeyInvalid(apiErr.Details) {
		return &ErrUnauthorized{Err: err}
	}
	return classifyStatus(apiErr.Code, model, err)
}

// asGeminiAPIError unwraps the SDK error, which is returned by value.
func asGeminiAPIError(err error) (genai.APIError, bool) {
	var val genai.APIError
	if errors.As(err, &val) {
		return val, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

func geminiKeyInvalid(details []map[string]any) bool {
	for _, d := range details {
		if reason, ok := d["reason"].(string); ok && reason == "API_KEY_INVALID" {
			return true
		}
	}
	return false
}
