package audio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// fallbackGeminiModel is tried once when the configured model returns 404.
const fallbackGeminiModel = "gemini-2.5-flash-preview-tts"

// GeminiProvider implements Provider interface for Gemini TTS. Gemini
// returns raw PCM (24 kHz, mono, 16-bit) which is framed as WAV before
// the clip leaves this package.
type GeminiProvider struct {
	config     *Config
	maxRetries int
	backoff    time.Duration
}

// NewGeminiProvider creates a new Gemini TTS provider
func NewGeminiProvider(config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if config.GeminiModel == "" {
		config.GeminiModel = fallbackGeminiModel
	}

	return &GeminiProvider{
		config:     config,
		maxRetries: 3,
		backoff:    time.Second,
	}, nil
}

// GenerateSpeech synthesizes German speech using the Gemini TTS models.
// Transient server errors are retried with backoff; quota errors are not,
// so the caller can fall back to the other provider immediately.
func (p *GeminiProvider) GenerateSpeech(ctx context.Context, text string, role VoiceRole) (*Clip, error) {
	text = preprocessText(text)
	if text == "" {
		return nil, fmt.Errorf("no text to speak")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini client: %w", err)
	}

	model := p.config.GeminiModel
	triedFallback := model == fallbackGeminiModel

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.backoff * time.Duration(attempt)):
			}
		}

		pcm, err := p.synthesize(ctx, client, model, text, role)
		if err == nil {
			return &Clip{Data: EncodeWAV(pcm, 24000, 1, 16), MIMEType: "audio/wav"}, nil
		}
		lastErr = err

		msg := strings.ToLower(err.Error())
		switch {
		case ctx.Err() != nil:
			return nil, err
		case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
			return nil, fmt.Errorf("Gemini TTS quota exceeded: %w", err)
		case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
			if triedFallback {
				return nil, fmt.Errorf("Gemini TTS model %s not found: %w", model, err)
			}
			model = fallbackGeminiModel
			triedFallback = true
		case strings.Contains(msg, "500") || strings.Contains(msg, "503") || strings.Contains(msg, "internal") || strings.Contains(msg, "unavailable"):
			// Retry with backoff.
		default:
			return nil, fmt.Errorf("Gemini TTS API error: %w", err)
		}
	}

	return nil, fmt.Errorf("Gemini TTS failed after %d attempts: %w", p.maxRetries, lastErr)
}

func (p *GeminiProvider) synthesize(ctx context.Context, client *genai.Client, model, text string, role VoiceRole) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.voiceFor(role),
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(text), cfg)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("no audio data received from Gemini")
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks if the Gemini API is accessible
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

func (p *GeminiProvider) voiceFor(role VoiceRole) string {
	if v, ok := p.config.GeminiVoices[role]; ok && v != "" {
		return v
	}
	return "Kore"
}
