package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertWordIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertWord(ctx, "Katze", "Substantiv", `{"article":"die"}`)
	if err != nil {
		t.Fatalf("UpsertWord() error = %v", err)
	}

	second, err := s.UpsertWord(ctx, "Katze", "Substantiv", `{"article":"die","plural":"Katzen"}`)
	if err != nil {
		t.Fatalf("UpsertWord() second call error = %v", err)
	}
	if first != second {
		t.Errorf("Upsert created a new row: id %d != %d", first, second)
	}

	word, err := s.GetWordByTerm(ctx, "Katze")
	if err != nil {
		t.Fatalf("GetWordByTerm() error = %v", err)
	}
	if word.GrammarData != `{"article":"die","plural":"Katzen"}` {
		t.Errorf("Grammar data not refreshed: %s", word.GrammarData)
	}
}

func TestGetWordByTermCaseInsensitive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertWord(ctx, "Katze", "Substantiv", "{}"); err != nil {
		t.Fatalf("UpsertWord() error = %v", err)
	}

	word, err := s.GetWordByTerm(ctx, "kAtZe")
	if err != nil {
		t.Fatalf("GetWordByTerm() error = %v", err)
	}
	if word == nil {
		t.Fatal("Expected case-insensitive match")
	}
	if word.Term != "Katze" {
		t.Errorf("Term = %q, stored casing should be preserved", word.Term)
	}
}

func TestGetWordByTermMissing(t *testing.T) {
	s := openTestStore(t)

	word, err := s.GetWordByTerm(context.Background(), "Einhorn")
	if err != nil {
		t.Fatalf("GetWordByTerm() error = %v", err)
	}
	if word != nil {
		t.Errorf("Expected nil for unknown word, got %+v", word)
	}
}

func TestUpsertExampleNullsAudioURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, err := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	if err != nil {
		t.Fatalf("UpsertWord() error = %v", err)
	}
	if err := s.UpsertExample(ctx, wordID, "en", 0, "Die Katze schläft.", "The cat sleeps.", nil); err != nil {
		t.Fatalf("UpsertExample() error = %v", err)
	}
	if err := s.SetExampleAudioURL(ctx, wordID, "en", 0, "https://assets.test/old.mp3"); err != nil {
		t.Fatalf("SetExampleAudioURL() error = %v", err)
	}

	// Regenerated sentence comes with an explicit NULL audio URL.
	if err := s.UpsertExample(ctx, wordID, "en", 0, "Die Katze springt.", "The cat jumps.", nil); err != nil {
		t.Fatalf("UpsertExample() regen error = %v", err)
	}

	examples, err := s.GetExamples(ctx, wordID, "en")
	if err != nil {
		t.Fatalf("GetExamples() error = %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("Examples = %d, want 1", len(examples))
	}
	if examples[0].TargetSentence != "Die Katze springt." {
		t.Errorf("Sentence not replaced: %q", examples[0].TargetSentence)
	}
	if examples[0].AudioURL.Valid {
		t.Errorf("Audio URL survived text regeneration: %q", examples[0].AudioURL.String)
	}
}

func TestUpsertExampleKeepsProvidedAudioURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	url := "https://assets.test/kept.mp3"
	if err := s.UpsertExample(ctx, wordID, "en", 0, "Satz.", "Sentence.", &url); err != nil {
		t.Fatalf("UpsertExample() error = %v", err)
	}

	examples, _ := s.GetExamples(ctx, wordID, "en")
	if !examples[0].AudioURL.Valid || examples[0].AudioURL.String != url {
		t.Errorf("Audio URL = %+v, want %q", examples[0].AudioURL, url)
	}
}

func TestLocalizedContentUpsertInvalidatesNoteAudio(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	if err := s.UpsertLocalizedContent(ctx, wordID, "en", "a cat", "informal"); err != nil {
		t.Fatalf("UpsertLocalizedContent() error = %v", err)
	}
	if err := s.SetUsageNoteAudioURL(ctx, wordID, "en", "https://assets.test/note.mp3"); err != nil {
		t.Fatalf("SetUsageNoteAudioURL() error = %v", err)
	}

	if err := s.UpsertLocalizedContent(ctx, wordID, "en", "a small feline", "informal"); err != nil {
		t.Fatalf("UpsertLocalizedContent() regen error = %v", err)
	}

	content, err := s.GetLocalizedContent(ctx, wordID, "en")
	if err != nil {
		t.Fatalf("GetLocalizedContent() error = %v", err)
	}
	if content.Definition != "a small feline" {
		t.Errorf("Definition not replaced: %q", content.Definition)
	}
	if content.UsageNoteAudioURL.Valid {
		t.Error("Usage note audio URL survived text regeneration")
	}
}

func TestLocalizedContentPerLanguage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	s.UpsertLocalizedContent(ctx, wordID, "en", "a cat", "")
	s.UpsertLocalizedContent(ctx, wordID, "zh", "猫", "")

	en, _ := s.GetLocalizedContent(ctx, wordID, "en")
	zh, _ := s.GetLocalizedContent(ctx, wordID, "zh")
	if en == nil || zh == nil {
		t.Fatal("Expected content for both languages")
	}
	if en.Definition == zh.Definition {
		t.Error("Languages must not overwrite each other")
	}
}

func TestGetImageByStyleStrictMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	if err := s.UpsertWordImage(ctx, wordID, "cartoon", "https://assets.test/cartoon.jpg"); err != nil {
		t.Fatalf("UpsertWordImage() error = %v", err)
	}

	img, err := s.GetImageByStyle(ctx, wordID, "cartoon")
	if err != nil {
		t.Fatalf("GetImageByStyle() error = %v", err)
	}
	if img == nil || img.ImageURL != "https://assets.test/cartoon.jpg" {
		t.Errorf("Image = %+v", img)
	}

	// A different style never substitutes.
	other, err := s.GetImageByStyle(ctx, wordID, "watercolor")
	if err != nil {
		t.Fatalf("GetImageByStyle() error = %v", err)
	}
	if other != nil {
		t.Errorf("Expected nil for ungenerated style, got %+v", other)
	}
}

func TestUpsertWordImageReplacesURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	s.UpsertWordImage(ctx, wordID, "cartoon", "https://assets.test/old.jpg")
	s.UpsertWordImage(ctx, wordID, "cartoon", "https://assets.test/new.jpg")

	img, _ := s.GetImageByStyle(ctx, wordID, "cartoon")
	if img.ImageURL != "https://assets.test/new.jpg" {
		t.Errorf("ImageURL = %q, want the newer upload", img.ImageURL)
	}
}

func TestClearExampleAudio(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	url := "https://assets.test/a.mp3"
	s.UpsertExample(ctx, wordID, "en", 0, "Satz eins.", "One.", &url)
	s.UpsertExample(ctx, wordID, "en", 1, "Satz zwei.", "Two.", &url)

	if err := s.ClearExampleAudio(ctx, wordID, "en"); err != nil {
		t.Fatalf("ClearExampleAudio() error = %v", err)
	}

	examples, _ := s.GetExamples(ctx, wordID, "en")
	for _, ex := range examples {
		if ex.AudioURL.Valid {
			t.Errorf("Example %d still has audio URL", ex.SentenceIndex)
		}
	}
}

func TestSetWordAudioURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	wordID, _ := s.UpsertWord(ctx, "Katze", "Substantiv", "{}")
	if err := s.SetWordAudioURL(ctx, wordID, "https://assets.test/katze.mp3"); err != nil {
		t.Fatalf("SetWordAudioURL() error = %v", err)
	}

	word, _ := s.GetWordByTerm(ctx, "Katze")
	if !word.PronunciationAudioURL.Valid || word.PronunciationAudioURL.String != "https://assets.test/katze.mp3" {
		t.Errorf("PronunciationAudioURL = %+v", word.PronunciationAudioURL)
	}
}
