package image

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Request describes one image generation call.
type Request struct {
	Term            string // the German headword
	ContextSentence string // example sentence giving the meaning in use
	Style           string // style keyword, see styleDescriptors
	Backdrop        string // cultural backdrop phrase, usually from a Picker
}

// Generator defines the interface for image generation providers
type Generator interface {
	// Generate produces raw image bytes for the request
	Generate(ctx context.Context, req *Request) ([]byte, error)

	// Name returns the provider name
	Name() string
}

// GenerationError is a provider failure mapped to a short stable category
// that can be shown to users instead of a raw provider message.
type GenerationError struct {
	Provider string
	Code     string
	Message  string
}

func (e *GenerationError) Error() string {
	return e.Provider + ": " + e.Message
}

// Error categories for GenerationError.Code.
const (
	CodeQuota      = "QUOTA_EXCEEDED"
	CodeRegion     = "REGION_RESTRICTED"
	CodeAuth       = "AUTH_FAILED"
	CodeNoModel    = "MODEL_NOT_FOUND"
	CodeNoAPIKey   = "NO_API_KEY"
	CodeBadOutput  = "BAD_OUTPUT"
	CodeProviderUp = "PROVIDER_ERROR"
)

// classifyError maps raw provider errors onto the stable categories above.
func classifyError(provider string, err error) *GenerationError {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit"):
		return &GenerationError{Provider: provider, Code: CodeQuota, Message: "quota exceeded"}
	case strings.Contains(msg, "not available in your") || strings.Contains(msg, "unsupported country") || strings.Contains(msg, "region"):
		return &GenerationError{Provider: provider, Code: CodeRegion, Message: "not available in this region"}
	case strings.Contains(msg, "401") || strings.Contains(msg, "invalid api key") || strings.Contains(msg, "incorrect api key"):
		return &GenerationError{Provider: provider, Code: CodeAuth, Message: "invalid API key"}
	case strings.Contains(msg, "403") || strings.Contains(msg, "permission"):
		return &GenerationError{Provider: provider, Code: CodeAuth, Message: "permission denied"}
	case strings.Contains(msg, "404") || strings.Contains(msg, "model not found") || strings.Contains(msg, "does not exist"):
		return &GenerationError{Provider: provider, Code: CodeNoModel, Message: "model not found"}
	}
	return &GenerationError{Provider: provider, Code: CodeProviderUp, Message: "image generation failed"}
}

// styleDescriptors maps the style keywords exposed on the CLI to the
// art-style phrases used in prompts.
var styleDescriptors = map[string]string{
	"flat":          "flat vector illustration with simple geometric shapes and a limited palette",
	"cartoon":       "friendly cartoon illustration with bold outlines and cheerful colors",
	"anime-healing": "soft healing-style anime illustration with warm pastel light",
	"watercolor":    "delicate watercolor painting with soft washes and visible paper texture",
	"pixel":         "retro 16-bit pixel art scene",
	"realistic":     "photorealistic image with natural lighting and shallow depth of field",
}

// Styles returns the supported style keywords.
func Styles() []string {
	return []string{"flat", "cartoon", "anime-healing", "watercolor", "pixel", "realistic"}
}

// StyleDescriptor resolves a style keyword, falling back to cartoon for
// unknown keywords.
func StyleDescriptor(style string) string {
	if d, ok := styleDescriptors[strings.ToLower(strings.TrimSpace(style))]; ok {
		return d
	}
	return styleDescriptors["cartoon"]
}

// backdrops is the curated list of cultural/location settings sampled per
// image so that a batch of fifty words does not produce fifty near-identical
// scenes. Illustrations are language-pair agnostic; the backdrops anchor
// them in the German-speaking world.
var backdrops = []string{
	"a cozy Bavarian village street",
	"a Berlin U-Bahn platform",
	"a North Sea beach with striped beach chairs",
	"an old town square with half-timbered houses",
	"a Black Forest hiking trail in the morning mist",
	"an Alpine meadow with distant peaks",
	"a Hamburg harbour promenade",
	"a quiet Rhine riverbank with vineyards",
	"a Christmas market at dusk",
	"a sunlit Viennese coffee house",
	"a small-town weekly farmers market",
	"a tidy allotment garden with a little shed",
}

// Picker selects a random backdrop. The randomness source is injected so
// tests and re-runs can be made reproducible with a fixed seed.
type Picker struct {
	rng *rand.Rand
}

// NewPicker creates a backdrop picker. seed 0 means time-based seeding.
func NewPicker(seed int64) *Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Picker{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a random backdrop phrase.
func (p *Picker) Pick() string {
	return backdrops[p.rng.Intn(len(backdrops))]
}

// buildPrompt assembles the image generation prompt. The no-text constraint
// is load-bearing: the image is reused across learner languages and must not
// bake in words from any of them.
func buildPrompt(req *Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A %s illustrating the meaning of the German word %q", StyleDescriptor(req.Style), req.Term)
	if s := strings.TrimSpace(req.ContextSentence); s != "" {
		fmt.Fprintf(&b, ", as used in the sentence: %q", s)
	}
	if bd := strings.TrimSpace(req.Backdrop); bd != "" {
		fmt.Fprintf(&b, ". Setting: %s", bd)
	}
	b.WriteString(". The scene must make the meaning obvious at a glance.")
	b.WriteString(" Strictly no text, letters, numbers, captions or labels anywhere in the image.")

	return b.String()
}
