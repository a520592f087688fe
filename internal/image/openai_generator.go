package image

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig configures the OpenAI image generation backend.
type OpenAIConfig struct {
	APIKey string
	Model  string // "dall-e-3" or "gpt-image-1"
	Size   string // provider-side size; post-processing normalizes anyway
}

// OpenAIGenerator implements Generator using the OpenAI image API.
type OpenAIGenerator struct {
	client     *openai.Client
	config     *OpenAIConfig
	lastPrompt string
}

// NewOpenAIGenerator creates a new OpenAI image generator.
func NewOpenAIGenerator(config *OpenAIConfig) *OpenAIGenerator {
	if config.Model == "" {
		config.Model = openai.CreateImageModelDallE3
	}
	if config.Size == "" {
		// Widest offering; the post-processor crops to the 16:9 canvas.
		config.Size = openai.CreateImageSize1792x1024
	}
	return &OpenAIGenerator{
		client: openai.NewClient(config.APIKey),
		config: config,
	}
}

// Generate produces raw image bytes for the request.
func (g *OpenAIGenerator) Generate(ctx context.Context, req *Request) ([]byte, error) {
	if g.config.APIKey == "" {
		return nil, &GenerationError{Provider: g.Name(), Code: CodeNoAPIKey, Message: "OpenAI API key is required"}
	}

	prompt := buildPrompt(req)
	g.lastPrompt = prompt

	imgReq := openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.config.Model,
		Size:           g.config.Size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}

	resp, err := g.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, classifyError(g.Name(), err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, &GenerationError{Provider: g.Name(), Code: CodeBadOutput, Message: "empty image response"}
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	return data, nil
}

// Name returns the provider name
func (g *OpenAIGenerator) Name() string {
	return "openai"
}

// LastPrompt returns the prompt used for the most recent generation,
// useful for logging and audits.
func (g *OpenAIGenerator) LastPrompt() string {
	return g.lastPrompt
}
