package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertWord inserts or refreshes the headword row and returns its id.
// The natural key is the case-insensitive term.
func (s *Store) UpsertWord(ctx context.Context, term, partOfSpeech, grammarJSON string) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO words (term, part_of_speech, grammar_data)
		VALUES (?, ?, ?)
		ON CONFLICT(term) DO UPDATE SET
			part_of_speech = excluded.part_of_speech,
			grammar_data = excluded.grammar_data,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`, term, partOfSpeech, grammarJSON)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert word %q: %w", term, err)
	}
	return id, nil
}

// UpsertLocalizedContent inserts or refreshes the learner-language content
// for a word. Regenerated text invalidates any previous usage note audio.
func (s *Store) UpsertLocalizedContent(ctx context.Context, wordID int64, languageCode, definition, usageNote string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO localized_content (word_id, language_code, definition, usage_note, usage_note_audio_url)
		VALUES (?, ?, ?, ?, NULL)
		ON CONFLICT(word_id, language_code) DO UPDATE SET
			definition = excluded.definition,
			usage_note = excluded.usage_note,
			usage_note_audio_url = NULL,
			updated_at = CURRENT_TIMESTAMP
	`, wordID, languageCode, definition, usageNote)
	if err != nil {
		return fmt.Errorf("failed to upsert localized content: %w", err)
	}
	return nil
}

// UpsertExample inserts or refreshes one example sentence. audioURL may be
// nil to write an explicit NULL, which is what text regeneration does so
// stale pronunciations never survive a sentence change.
func (s *Store) UpsertExample(ctx context.Context, wordID int64, languageCode string, sentenceIndex int, targetSentence, translation string, audioURL *string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO examples (word_id, language_code, sentence_index, target_sentence, translation, audio_url)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(word_id, language_code, sentence_index) DO UPDATE SET
			target_sentence = excluded.target_sentence,
			translation = excluded.translation,
			audio_url = excluded.audio_url,
			updated_at = CURRENT_TIMESTAMP
	`, wordID, languageCode, sentenceIndex, targetSentence, translation, audioURL)
	if err != nil {
		return fmt.Errorf("failed to upsert example %d: %w", sentenceIndex, err)
	}
	return nil
}

// UpsertWordImage records the illustration URL for a (word, style) pair.
// Superseded storage objects are kept; only the pointer moves.
func (s *Store) UpsertWordImage(ctx context.Context, wordID int64, style, imageURL string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO word_images (word_id, style, image_url)
		VALUES (?, ?, ?)
		ON CONFLICT(word_id, style) DO UPDATE SET
			image_url = excluded.image_url,
			updated_at = CURRENT_TIMESTAMP
	`, wordID, style, imageURL)
	if err != nil {
		return fmt.Errorf("failed to upsert image for style %q: %w", style, err)
	}
	return nil
}

// SetWordAudioURL stores the pronunciation URL for the headword.
func (s *Store) SetWordAudioURL(ctx context.Context, wordID int64, url string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE words SET pronunciation_audio_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, url, wordID)
	if err != nil {
		return fmt.Errorf("failed to set word audio URL: %w", err)
	}
	return nil
}

// SetExampleAudioURL stores the pronunciation URL for one example sentence.
func (s *Store) SetExampleAudioURL(ctx context.Context, wordID int64, languageCode string, sentenceIndex int, url string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE examples SET audio_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE word_id = ? AND language_code = ? AND sentence_index = ?
	`, url, wordID, languageCode, sentenceIndex)
	if err != nil {
		return fmt.Errorf("failed to set example audio URL: %w", err)
	}
	return nil
}

// SetUsageNoteAudioURL stores the narration URL for a usage note.
func (s *Store) SetUsageNoteAudioURL(ctx context.Context, wordID int64, languageCode, url string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE localized_content SET usage_note_audio_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE word_id = ? AND language_code = ?
	`, url, wordID, languageCode)
	if err != nil {
		return fmt.Errorf("failed to set usage note audio URL: %w", err)
	}
	return nil
}

// ClearExampleAudio nulls the audio URLs of all examples for a
// (word, language) pair.
func (s *Store) ClearExampleAudio(ctx context.Context, wordID int64, languageCode string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE examples SET audio_url = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE word_id = ? AND language_code = ?
	`, wordID, languageCode)
	if err != nil {
		return fmt.Errorf("failed to clear example audio: %w", err)
	}
	return nil
}

// GetWordByTerm looks up a headword case-insensitively. Returns nil
// without error when the word is not stored.
func (s *Store) GetWordByTerm(ctx context.Context, term string) (*Word, error) {
	var word Word
	err := s.db.GetContext(ctx, &word, `SELECT * FROM words WHERE term = ? COLLATE NOCASE`, term)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word %q: %w", term, err)
	}
	return &word, nil
}

// GetLocalizedContent returns the learner-language content for a word, or
// nil when none is stored for that language.
func (s *Store) GetLocalizedContent(ctx context.Context, wordID int64, languageCode string) (*LocalizedContent, error) {
	var content LocalizedContent
	err := s.db.GetContext(ctx, &content, `
		SELECT * FROM localized_content WHERE word_id = ? AND language_code = ?
	`, wordID, languageCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get localized content: %w", err)
	}
	return &content, nil
}

// GetExamples returns the examples for a (word, language) pair in sentence
// order.
func (s *Store) GetExamples(ctx context.Context, wordID int64, languageCode string) ([]Example, error) {
	var examples []Example
	err := s.db.SelectContext(ctx, &examples, `
		SELECT * FROM examples WHERE word_id = ? AND language_code = ? ORDER BY sentence_index
	`, wordID, languageCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get examples: %w", err)
	}
	return examples, nil
}

// GetImageByStyle returns the stored illustration for exactly the requested
// style, or nil when that style has not been generated. An image in another
// style never substitutes.
func (s *Store) GetImageByStyle(ctx context.Context, wordID int64, style string) (*WordImage, error) {
	var img WordImage
	err := s.db.GetContext(ctx, &img, `
		SELECT * FROM word_images WHERE word_id = ? AND style = ?
	`, wordID, style)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &img, nil
}
