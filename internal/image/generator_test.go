package image

import (
	"errors"
	"strings"
	"testing"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"quota", errors.New("status 429: quota exceeded"), CodeQuota},
		{"rate limit", errors.New("rate limit reached"), CodeQuota},
		{"region", errors.New("not available in your country"), CodeRegion},
		{"bad key", errors.New("401 invalid api key"), CodeAuth},
		{"forbidden", errors.New("403 permission denied"), CodeAuth},
		{"missing model", errors.New("404 model not found"), CodeNoModel},
		{"anything else", errors.New("connection reset"), CodeProviderUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := classifyError("openai", tt.err)
			if ge.Code != tt.code {
				t.Errorf("Code = %q, want %q", ge.Code, tt.code)
			}
			if ge.Provider != "openai" {
				t.Errorf("Provider = %q, want openai", ge.Provider)
			}
		})
	}
}

func TestStyleDescriptor(t *testing.T) {
	for _, style := range Styles() {
		if StyleDescriptor(style) == "" {
			t.Errorf("Style %q has no descriptor", style)
		}
	}

	// Unknown styles degrade to cartoon instead of an empty prompt.
	if got := StyleDescriptor("vaporwave"); got != styleDescriptors["cartoon"] {
		t.Errorf("Unknown style should fall back to cartoon, got %q", got)
	}
	if got := StyleDescriptor(" Pixel "); got != styleDescriptors["pixel"] {
		t.Errorf("Style lookup should trim and lowercase, got %q", got)
	}
}

func TestPickerDeterministicWithSeed(t *testing.T) {
	a := NewPicker(42)
	b := NewPicker(42)

	for i := 0; i < 20; i++ {
		if got, want := a.Pick(), b.Pick(); got != want {
			t.Fatalf("Pick %d: %q != %q with same seed", i, got, want)
		}
	}
}

func TestPickerReturnsKnownBackdrops(t *testing.T) {
	p := NewPicker(1)
	known := make(map[string]bool, len(backdrops))
	for _, b := range backdrops {
		known[b] = true
	}

	for i := 0; i < 50; i++ {
		if b := p.Pick(); !known[b] {
			t.Fatalf("Pick() returned unknown backdrop %q", b)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	req := &Request{
		Term:            "Katze",
		ContextSentence: "Die Katze schläft auf dem Sofa.",
		Style:           "watercolor",
		Backdrop:        "a cozy Bavarian village street",
	}

	prompt := buildPrompt(req)

	for _, want := range []string{
		"Katze",
		"watercolor",
		"Die Katze schläft auf dem Sofa.",
		"a cozy Bavarian village street",
		"no text, letters, numbers",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptWithoutContext(t *testing.T) {
	prompt := buildPrompt(&Request{Term: "laufen", Style: "flat"})

	if !strings.Contains(prompt, "laufen") {
		t.Error("Prompt missing term")
	}
	if strings.Contains(prompt, "Setting:") {
		t.Error("Prompt should omit empty backdrop")
	}
}
