package dictionary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Generator defines the interface for dictionary entry generators
type Generator interface {
	// Generate produces a structured entry for a German term, with
	// definitions and translations in the given learner language.
	Generate(ctx context.Context, term, languageCode string) (*Entry, error)

	// Name returns the generator name
	Name() string
}

// GeneratorWithFallback tries a primary generator first and falls back to a
// secondary one on provider failure. A sentinel rejection is final and is
// never retried on the fallback: the term itself is bad, not the provider.
type GeneratorWithFallback struct {
	primary  Generator
	fallback Generator
	logf     func(format string, args ...any)
}

// NewGeneratorWithFallback creates a generator that falls back to secondary
// if primary fails. logf may be nil.
func NewGeneratorWithFallback(primary, fallback Generator, logf func(format string, args ...any)) *GeneratorWithFallback {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &GeneratorWithFallback{primary: primary, fallback: fallback, logf: logf}
}

// Generate tries the primary generator, then the fallback.
func (g *GeneratorWithFallback) Generate(ctx context.Context, term, languageCode string) (*Entry, error) {
	entry, err := g.primary.Generate(ctx, term, languageCode)
	if err == nil {
		return entry, nil
	}
	if errors.Is(err, ErrNotAWord) || ctx.Err() != nil {
		return nil, err
	}

	g.logf("Primary generator (%s) failed: %v. Falling back to %s",
		g.primary.Name(), err, g.fallback.Name())

	entry, ferr := g.fallback.Generate(ctx, term, languageCode)
	if ferr != nil {
		return nil, fmt.Errorf("both generators failed: primary=%v, fallback=%w", err, ferr)
	}
	return entry, nil
}

// Name returns the generator name
func (g *GeneratorWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", g.primary.Name(), g.fallback.Name())
}

// buildPrompt creates the schema-constrained LLM prompt for a single term.
// The learner language is injected as data; the schema itself is fixed.
func buildPrompt(term, languageCode string) string {
	language := LanguageName(languageCode)

	return fmt.Sprintf(`You are a professional editor for a German dictionary aimed at %s-speaking learners.

For the German term "%s", produce a dictionary entry as a single JSON object with this exact shape:
{
  "definition": "<short definition in %s, at most 15 words>",
  "partOfSpeech": "<German part of speech, e.g. Substantiv, Verb, Adjektiv>",
  "grammar": {
    "article": "<der/die/das for nouns, else empty>",
    "plural": "<plural form for nouns, else empty>",
    "verbForms": ["<3rd person singular>", "<Präteritum>", "<Partizip II>"],
    "adjectiveForms": ["<Komparativ>", "<Superlativ>"],
    "synonyms": ["<German synonyms>"],
    "antonyms": ["<German antonyms>"]
  },
  "usageNote": "<one or two sentences in %s about register, pitfalls or typical use>",
  "examples": [
    {"sentence": "<natural German sentence using the term>", "translation": "<%s translation>"},
    {"sentence": "<a second, different German sentence>", "translation": "<%s translation>"}
  ]
}

Rules:
- partOfSpeech and every grammar value stay in German, never translated
- exactly two examples, everyday situations, A2-B1 difficulty
- omit grammar arrays that do not apply to this part of speech
- output ONLY the JSON object, no markdown fences, no commentary
- if "%s" is not a valid German word (foreign word or misspelling), output exactly: {"error": "%s"}`,
		language, term, language, language, language, language, term, NotAWordSentinel)
}

// rawEntry is the wire shape of a model response, including the sentinel slot.
type rawEntry struct {
	Error        string      `json:"error"`
	Definition   string      `json:"definition"`
	PartOfSpeech string      `json:"partOfSpeech"`
	Grammar      GrammarData `json:"grammar"`
	UsageNote    string      `json:"usageNote"`
	Examples     []Example   `json:"examples"`
}

// parseEntry turns raw model output into a validated Entry. Markdown fences
// and surrounding prose are stripped before JSON decoding; the sentinel is
// mapped to ErrNotAWord.
func parseEntry(term, response string) (*Entry, error) {
	jsonStr, err := extractJSON(response)
	if err != nil {
		return nil, fmt.Errorf("entry for %q: %w", term, err)
	}

	var raw rawEntry
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("entry for %q: invalid JSON: %w", term, err)
	}

	if strings.TrimSpace(raw.Error) == NotAWordSentinel {
		return nil, ErrNotAWord
	}

	entry := &Entry{
		Term:         term,
		Definition:   strings.TrimSpace(raw.Definition),
		PartOfSpeech: strings.TrimSpace(raw.PartOfSpeech),
		Grammar:      raw.Grammar,
		UsageNote:    strings.TrimSpace(raw.UsageNote),
		Examples:     raw.Examples,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// extractJSON finds the first complete JSON object in a string. Models
// occasionally wrap output in ```json fences or lead with prose despite the
// prompt; taking the outermost braces copes with both.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
