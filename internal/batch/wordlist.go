package batch

import (
	"fmt"
	"os"
	"strings"
)

// ReadWordList reads terms from a plain-text file, one per line.
// Blank lines and lines starting with '#' are skipped, everything else is
// trimmed and returned in file order. Duplicates are removed while keeping
// the first occurrence so a re-run over a merged list stays cheap.
func ReadWordList(filename string) ([]string, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}

	return parseLines(string(content)), nil
}

func parseLines(content string) []string {
	var terms []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		terms = append(terms, line)
	}

	return terms
}
