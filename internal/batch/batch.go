// Package batch reads word lists for bulk dictionary lookups.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/quickdict/internal"
)

// ReadWordList reads lookup terms from a file, one per line. Blank
// lines and lines starting with '#' are skipped; each term is cleaned
// the same way selected text is before a lookup.
func ReadWordList(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if word := internal.CleanText(line); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}
