package internal

import (
	"regexp"
	"strings"
	"unicode"
)

// Version is the add-on version, set at build time.
var Version = "dev"

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText strips a selection down to the text worth looking up:
// letters and whitespace only, runs of whitespace collapsed.
func CleanText(text string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(b.String(), " "))
}
