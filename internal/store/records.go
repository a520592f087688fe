package store

import (
	"database/sql"
	"time"
)

// Word is one row of the words table. The term is the German headword and
// is unique case-insensitively.
type Word struct {
	ID                    int64          `db:"id"`
	Term                  string         `db:"term"`
	PartOfSpeech          string         `db:"part_of_speech"`
	GrammarData           string         `db:"grammar_data"` // JSON blob
	PronunciationAudioURL sql.NullString `db:"pronunciation_audio_url"`
	CreatedAt             time.Time      `db:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at"`
}

// LocalizedContent holds the learner-language half of an entry.
type LocalizedContent struct {
	ID                int64          `db:"id"`
	WordID            int64          `db:"word_id"`
	LanguageCode      string         `db:"language_code"`
	Definition        string         `db:"definition"`
	UsageNote         string         `db:"usage_note"`
	UsageNoteAudioURL sql.NullString `db:"usage_note_audio_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// Example is one of the two example sentences per (word, language).
type Example struct {
	ID             int64          `db:"id"`
	WordID         int64          `db:"word_id"`
	LanguageCode   string         `db:"language_code"`
	SentenceIndex  int            `db:"sentence_index"`
	TargetSentence string         `db:"target_sentence"`
	Translation    string         `db:"translation"`
	AudioURL       sql.NullString `db:"audio_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// WordImage is the stored illustration URL for a (word, style) pair.
type WordImage struct {
	ID        int64     `db:"id"`
	WordID    int64     `db:"word_id"`
	Style     string    `db:"style"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
