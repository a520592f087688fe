package testutil

import (
	"bytes"
	"context"
	stdimage "image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/wortwerk/internal/dictionary"
	"codeberg.org/snonux/wortwerk/internal/store"
)

// OpenTestStore opens a throwaway SQLite database in a temp directory.
func OpenTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "wortwerk.db"))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestEntry returns a complete dictionary entry for the term.
func TestEntry(term string) *dictionary.Entry {
	return &dictionary.Entry{
		Term:         term,
		Definition:   "a test definition of " + term,
		PartOfSpeech: "noun",
		Grammar: dictionary.GrammarData{
			Article: "die",
			Plural:  term + "n",
		},
		UsageNote: "used in tests only",
		Examples: []dictionary.Example{
			{Sentence: "Die " + term + " ist hier.", Translation: "The " + term + " is here."},
			{Sentence: "Ich sehe eine " + term + ".", Translation: "I see a " + term + "."},
		},
	}
}

// SeedWord writes a complete entry into the store and returns the word id.
func SeedWord(t *testing.T, s *store.Store, entry *dictionary.Entry, languageCode string) int64 {
	t.Helper()

	ctx := context.Background()
	wordID, err := s.UpsertWord(ctx, entry.Term, entry.PartOfSpeech, `{"article":"`+entry.Grammar.Article+`"}`)
	if err != nil {
		t.Fatalf("Failed to seed word: %v", err)
	}
	if err := s.UpsertLocalizedContent(ctx, wordID, languageCode, entry.Definition, entry.UsageNote); err != nil {
		t.Fatalf("Failed to seed localized content: %v", err)
	}
	for i, ex := range entry.Examples {
		if err := s.UpsertExample(ctx, wordID, languageCode, i, ex.Sentence, ex.Translation, nil); err != nil {
			t.Fatalf("Failed to seed example %d: %v", i, err)
		}
	}
	return wordID
}

// TestPNG encodes a solid-color PNG of the given dimensions.
func TestPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: 120, B: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}
