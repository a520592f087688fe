package assets

import (
	"fmt"
	"time"

	"codeberg.org/snonux/wortwerk/internal"
)

// Object name builders. Every name carries a millisecond timestamp suffix
// so regenerated assets never overwrite their predecessors.

// ImagePath returns the object path for a word illustration.
func ImagePath(term, style string, now time.Time) string {
	return fmt.Sprintf("images/%s_%s_%s.jpg",
		internal.SanitizeAssetName(term), internal.SanitizeAssetName(style), internal.TimestampSuffix(now))
}

// WordAudioPath returns the object path for a headword pronunciation.
func WordAudioPath(term, ext string, now time.Time) string {
	return fmt.Sprintf("audio/words/%s_%s%s",
		internal.SanitizeAssetName(term), internal.TimestampSuffix(now), ext)
}

// ExampleAudioPath returns the object path for an example sentence clip.
func ExampleAudioPath(term string, sentenceIndex int, ext string, now time.Time) string {
	return fmt.Sprintf("audio/examples/%s_%d_%s%s",
		internal.SanitizeAssetName(term), sentenceIndex, internal.TimestampSuffix(now), ext)
}

// NoteAudioPath returns the object path for a usage note narration in the
// given learner language.
func NoteAudioPath(term, languageCode, ext string, now time.Time) string {
	return fmt.Sprintf("audio/notes_%s/%s_%s%s",
		languageCode, internal.SanitizeAssetName(term), internal.TimestampSuffix(now), ext)
}
