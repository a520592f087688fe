package audio

import (
	"context"
	"fmt"
)

// VoiceRole selects which configured voice speaks a clip. Words and the two
// example sentences each get a distinct voice so learners hear variety.
type VoiceRole string

const (
	RoleWord     VoiceRole = "word"
	RoleExample1 VoiceRole = "example-1"
	RoleExample2 VoiceRole = "example-2"
)

// Clip is one synthesized pronunciation, held in memory until the asset
// store uploads it.
type Clip struct {
	Data     []byte
	MIMEType string // "audio/mpeg" or "audio/wav"
}

// FileExt returns the filename extension matching the clip encoding.
func (c *Clip) FileExt() string {
	if c.MIMEType == "audio/wav" {
		return ".wav"
	}
	return ".mp3"
}

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// GenerateSpeech synthesizes the text with the voice assigned to role
	GenerateSpeech(ctx context.Context, text string, role VoiceRole) (*Clip, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider string // Provider name: "openai" or "gemini"

	// OpenAI-specific settings
	OpenAIKey         string
	OpenAIModel       string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAISpeed       float64 // 0.25 to 4.0
	OpenAIInstruction string  // Voice instructions for gpt-4o-mini-tts model
	OpenAIVoices      map[VoiceRole]string

	// Gemini-specific settings
	GeminiKey    string
	GeminiModel  string
	GeminiVoices map[VoiceRole]string
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini-tts",
		OpenAISpeed: 1.0,
		OpenAIInstruction: "You are speaking German (Deutsch). Pronounce the text with authentic German phonetics. " +
			"Speak slowly and clearly for language learners.",
		OpenAIVoices: map[VoiceRole]string{
			RoleWord:     "alloy",
			RoleExample1: "nova",
			RoleExample2: "onyx",
		},
		GeminiModel: "gemini-2.5-flash-preview-tts",
		GeminiVoices: map[VoiceRole]string{
			RoleWord:     "Kore",
			RoleExample1: "Puck",
			RoleExample2: "Charon",
		},
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "openai":
		return NewOpenAIProvider(config)
	case "gemini":
		return NewGeminiProvider(config)
	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logf     func(format string, args ...any)
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logf func(format string, args ...any)) Provider {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logf:     logf,
	}
}

// GenerateSpeech tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) GenerateSpeech(ctx context.Context, text string, role VoiceRole) (*Clip, error) {
	clip, err := p.primary.GenerateSpeech(ctx, text, role)
	if err == nil {
		return clip, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	p.logf("Primary provider (%s) failed: %v. Falling back to %s",
		p.primary.Name(), err, p.fallback.Name())

	clip, fallbackErr := p.fallback.GenerateSpeech(ctx, text, role)
	if fallbackErr != nil {
		return nil, fmt.Errorf("both providers failed: primary=%v, fallback=%w", err, fallbackErr)
	}
	return clip, nil
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
