package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// GenerateSpeech synthesizes German speech using OpenAI TTS. The result is
// MP3 regardless of role; only the voice differs.
func (p *OpenAIProvider) GenerateSpeech(ctx context.Context, text string, role VoiceRole) (*Clip, error) {
	text = preprocessText(text)
	if text == "" {
		return nil, fmt.Errorf("no text to speak")
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          text,
		Voice:          openai.SpeechVoice(p.voiceFor(role)),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}

	// Voice instructions are only honored by the gpt-4o-mini-tts family.
	if p.config.OpenAIInstruction != "" && strings.HasPrefix(p.config.OpenAIModel, "gpt-4o-mini") {
		req.Instructions = p.config.OpenAIInstruction
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: the %s model requires access. Try --openai-tts-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return &Clip{Data: data, MIMEType: "audio/mpeg"}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}

func (p *OpenAIProvider) voiceFor(role VoiceRole) string {
	if v, ok := p.config.OpenAIVoices[role]; ok && v != "" {
		return v
	}
	return "alloy"
}

// preprocessText strips punctuation that TTS engines tend to verbalize on
// short inputs. Sentence-internal punctuation is kept so example sentences
// retain their natural prosody.
func preprocessText(text string) string {
	text = strings.TrimSpace(text)
	if !strings.ContainsRune(text, ' ') {
		for _, punct := range []string{"!", "?", ".", ",", ";", ":", "\"", "'", "(", ")"} {
			text = strings.ReplaceAll(text, punct, "")
		}
	}
	return strings.TrimSpace(text)
}
