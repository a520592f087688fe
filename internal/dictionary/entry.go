package dictionary

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel value the model is instructed to return when the input is not a
// valid German word (wrong language or a misspelling).
const NotAWordSentinel = "NOT_A_GERMAN_WORD"

// ErrNotAWord is returned when the model rejects the term via the sentinel.
// It is a rejection of the input, not a retryable provider failure.
var ErrNotAWord = errors.New("term is not a valid German word")

// GrammarData carries the semi-structured grammar bag for a word. All values
// are in German (the language being learned) and are never translated.
type GrammarData struct {
	Article        string   `json:"article,omitempty"`
	Plural         string   `json:"plural,omitempty"`
	VerbForms      []string `json:"verbForms,omitempty"`
	AdjectiveForms []string `json:"adjectiveForms,omitempty"`
	Synonyms       []string `json:"synonyms,omitempty"`
	Antonyms       []string `json:"antonyms,omitempty"`
}

// Example is one usage example: a German sentence plus its translation into
// the learner's language.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// Entry is a structured dictionary entry as produced by a text generator.
// Definition and UsageNote are written in the learner's language; everything
// grammatical stays German.
type Entry struct {
	Term         string      `json:"term"`
	Definition   string      `json:"definition"`
	PartOfSpeech string      `json:"partOfSpeech"`
	Grammar      GrammarData `json:"grammar"`
	UsageNote    string      `json:"usageNote"`
	Examples     []Example   `json:"examples"`
}

// Validate checks the structural invariants of a generated entry.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Definition) == "" {
		return fmt.Errorf("entry for %q has no definition", e.Term)
	}
	if len(e.Examples) != 2 {
		return fmt.Errorf("entry for %q has %d examples, want 2", e.Term, len(e.Examples))
	}
	for i, ex := range e.Examples {
		if strings.TrimSpace(ex.Sentence) == "" || strings.TrimSpace(ex.Translation) == "" {
			return fmt.Errorf("entry for %q: example %d is incomplete", e.Term, i+1)
		}
	}
	return nil
}

// languageNames maps learner language codes to the display names used in
// prompt construction.
var languageNames = map[string]string{
	"en": "English",
	"zh": "Chinese (Simplified)",
	"nl": "Dutch",
	"ru": "Russian",
	"fr": "French",
	"es": "Spanish",
	"pl": "Polish",
	"tr": "Turkish",
}

// LanguageName resolves a learner language code to its display name.
// Unknown codes fall back to English so a typo degrades gracefully instead
// of producing a prompt with an empty language.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return languageNames["en"]
}

// SupportedLanguage reports whether the code has a configured display name.
func SupportedLanguage(code string) bool {
	_, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]
	return ok
}
