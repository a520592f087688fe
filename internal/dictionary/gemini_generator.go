package dictionary

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiGenerator implements Generator using the Gemini API. It serves as
// the fallback text provider behind the OpenAI generator.
type GeminiGenerator struct {
	apiKey string
	model  string
}

// NewGeminiGenerator creates a new Gemini-backed entry generator.
func NewGeminiGenerator(apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}, nil
}

// Generate produces a structured dictionary entry for the term.
func (g *GeminiGenerator) Generate(ctx context.Context, term, languageCode string) (*Entry, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.4),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(buildPrompt(term, languageCode)), cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("no response for %q", term)
	}

	return parseEntry(term, text)
}

// Name returns the generator name
func (g *GeminiGenerator) Name() string {
	return "gemini"
}
