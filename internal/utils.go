package internal

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SanitizeAssetName creates a safe object-storage name component from a term.
// German umlauts and ß are transliterated so that URLs stay ASCII.
func SanitizeAssetName(s string) string {
	replacer := strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	)
	s = replacer.Replace(strings.TrimSpace(s))

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if len(out) > 60 {
		out = out[:60]
	}
	return out
}

// TimestampSuffix returns the suffix appended to object names so that
// re-uploads never collide with earlier artifacts.
func TimestampSuffix(now time.Time) string {
	return fmt.Sprintf("%d", now.UnixMilli())
}
