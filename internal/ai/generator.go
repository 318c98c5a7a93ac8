package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Generator performs exactly one outbound generateContent call and returns
// the raw response as generic JSON values.
type Generator interface {
	Generate(ctx context.Context, req *GenerationRequest) (map[string]any, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req *GenerationRequest) (map[string]any, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req *GenerationRequest) (map[string]any, error) {
	return f(ctx, req)
}

// GenAIGenerator calls the Gemini API through the google.golang.org/genai SDK.
// A client is created per call because the credential travels with the
// request.
type GenAIGenerator struct {
	// HTTPClient overrides the SDK's HTTP client when set.
	HTTPClient *http.Client
	// BaseURL overrides the API endpoint when set.
	BaseURL string
}

// Generate sends req and returns the decoded response.
func (g *GenAIGenerator) Generate(ctx context.Context, req *GenerationRequest) (map[string]any, error) {
	contents, err := req.Contents()
	if err != nil {
		return nil, err
	}

	cfg := &genai.ClientConfig{
		APIKey:     req.Credential,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.HTTPClient,
	}
	if g.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, contents, nil)
	if err != nil {
		return nil, err
	}
	return responseMap(resp)
}

// responseMap converts an SDK response into generic JSON values.
func responseMap(resp *genai.GenerateContentResponse) (map[string]any, error) {
	if resp == nil {
		return nil, nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return m, nil
}
