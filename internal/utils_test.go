package internal

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeAssetName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Katze", "katze"},
		{"Straße", "strasse"},
		{"Übung", "uebung"},
		{"schön", "schoen"},
		{"Bäckerei", "baeckerei"},
		{"zum Beispiel", "zum_beispiel"},
		{"  Haus  ", "haus"},
		{"sich freuen!", "sich_freuen_"},
	}

	for _, tt := range tests {
		if got := SanitizeAssetName(tt.input); got != tt.want {
			t.Errorf("SanitizeAssetName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeAssetNameCapsLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	if got := SanitizeAssetName(long); len(got) != 60 {
		t.Errorf("Length = %d, want 60", len(got))
	}
}

func TestTimestampSuffix(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := TimestampSuffix(now); got != "1700000000123" {
		t.Errorf("TimestampSuffix() = %q, want 1700000000123", got)
	}
}
