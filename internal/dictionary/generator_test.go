package dictionary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// mockGenerator implements Generator for fallback chain tests
type mockGenerator struct {
	name  string
	entry *Entry
	err   error
	calls int
}

func (m *mockGenerator) Generate(ctx context.Context, term, languageCode string) (*Entry, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.entry, nil
}

func (m *mockGenerator) Name() string {
	return m.name
}

func validEntry(term string) *Entry {
	return &Entry{
		Term:         term,
		Definition:   "a small domesticated animal",
		PartOfSpeech: "Substantiv",
		Grammar:      GrammarData{Article: "die", Plural: "Katzen"},
		Examples: []Example{
			{Sentence: "Die Katze schläft.", Translation: "The cat is sleeping."},
			{Sentence: "Meine Katze ist schwarz.", Translation: "My cat is black."},
		},
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"definition": "x"}`,
			want:  `{"definition": "x"}`,
		},
		{
			name:  "markdown fences",
			input: "```json\n{\"definition\": \"x\"}\n```",
			want:  `{"definition": "x"}`,
		},
		{
			name:  "leading prose",
			input: `Here is the entry: {"definition": "x"} Hope this helps!`,
			want:  `{"definition": "x"}`,
		},
		{
			name:    "no JSON at all",
			input:   "Sorry, I cannot do that.",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseEntryValid(t *testing.T) {
	response := `{
		"definition": "a small domesticated animal",
		"partOfSpeech": "Substantiv",
		"grammar": {"article": "die", "plural": "Katzen"},
		"usageNote": "Everyday word.",
		"examples": [
			{"sentence": "Die Katze schläft.", "translation": "The cat is sleeping."},
			{"sentence": "Meine Katze ist schwarz.", "translation": "My cat is black."}
		]
	}`

	entry, err := parseEntry("Katze", response)
	if err != nil {
		t.Fatalf("parseEntry() error = %v", err)
	}
	if entry.Term != "Katze" {
		t.Errorf("Term = %q, want %q", entry.Term, "Katze")
	}
	if entry.Grammar.Article != "die" {
		t.Errorf("Article = %q, want %q", entry.Grammar.Article, "die")
	}
	if len(entry.Examples) != 2 {
		t.Errorf("Examples = %d, want 2", len(entry.Examples))
	}
}

func TestParseEntrySentinel(t *testing.T) {
	_, err := parseEntry("xyzzy", `{"error": "NOT_A_GERMAN_WORD"}`)
	if !errors.Is(err, ErrNotAWord) {
		t.Errorf("Expected ErrNotAWord, got %v", err)
	}
}

func TestParseEntryInvalid(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing definition", `{"examples": [{"sentence": "a", "translation": "b"}, {"sentence": "c", "translation": "d"}]}`},
		{"one example only", `{"definition": "x", "examples": [{"sentence": "a", "translation": "b"}]}`},
		{"incomplete example", `{"definition": "x", "examples": [{"sentence": "a", "translation": ""}, {"sentence": "c", "translation": "d"}]}`},
		{"broken JSON", `{"definition": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseEntry("Katze", tt.response); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt("Katze", "zh")

	for _, want := range []string{"Katze", "Chinese (Simplified)", NotAWordSentinel} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}

func TestBuildPromptUnknownLanguageFallsBack(t *testing.T) {
	prompt := buildPrompt("Katze", "xx")
	if !strings.Contains(prompt, "English") {
		t.Error("Unknown language code should fall back to English")
	}
}

func TestLanguageName(t *testing.T) {
	if got := LanguageName("NL"); got != "Dutch" {
		t.Errorf("LanguageName(NL) = %q, want Dutch", got)
	}
	if got := LanguageName("unknown"); got != "English" {
		t.Errorf("LanguageName(unknown) = %q, want English", got)
	}
}

func TestFallbackOnProviderFailure(t *testing.T) {
	primary := &mockGenerator{name: "primary", err: errors.New("rate limited")}
	fallback := &mockGenerator{name: "fallback", entry: validEntry("Katze")}

	g := NewGeneratorWithFallback(primary, fallback, nil)
	entry, err := g.Generate(context.Background(), "Katze", "en")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if entry.Term != "Katze" {
		t.Errorf("Term = %q, want Katze", entry.Term)
	}
	if fallback.calls != 1 {
		t.Errorf("Fallback calls = %d, want 1", fallback.calls)
	}
}

func TestSentinelIsNeverRetried(t *testing.T) {
	primary := &mockGenerator{name: "primary", err: ErrNotAWord}
	fallback := &mockGenerator{name: "fallback", entry: validEntry("qwerty")}

	g := NewGeneratorWithFallback(primary, fallback, nil)
	_, err := g.Generate(context.Background(), "qwerty", "en")
	if !errors.Is(err, ErrNotAWord) {
		t.Fatalf("Expected ErrNotAWord, got %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback calls = %d, want 0: a rejected term must not be retried", fallback.calls)
	}
}

func TestWrappedSentinelIsNeverRetried(t *testing.T) {
	primary := &mockGenerator{name: "primary", err: fmt.Errorf("entry for %q: %w", "qwerty", ErrNotAWord)}
	fallback := &mockGenerator{name: "fallback", entry: validEntry("qwerty")}

	g := NewGeneratorWithFallback(primary, fallback, nil)
	_, err := g.Generate(context.Background(), "qwerty", "en")
	if !errors.Is(err, ErrNotAWord) {
		t.Fatalf("Expected ErrNotAWord, got %v", err)
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback calls = %d, want 0 for a wrapped rejection", fallback.calls)
	}
}

func TestBothGeneratorsFail(t *testing.T) {
	primary := &mockGenerator{name: "primary", err: errors.New("down")}
	fallback := &mockGenerator{name: "fallback", err: errors.New("also down")}

	g := NewGeneratorWithFallback(primary, fallback, nil)
	_, err := g.Generate(context.Background(), "Katze", "en")
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "both generators failed") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestFallbackSkippedOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := &mockGenerator{name: "primary", err: context.Canceled}
	fallback := &mockGenerator{name: "fallback", entry: validEntry("Katze")}

	g := NewGeneratorWithFallback(primary, fallback, nil)
	if _, err := g.Generate(ctx, "Katze", "en"); err == nil {
		t.Fatal("Expected error")
	}
	if fallback.calls != 0 {
		t.Errorf("Fallback calls = %d, want 0 after cancellation", fallback.calls)
	}
}
