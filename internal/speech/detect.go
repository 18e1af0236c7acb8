package speech

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Detector guesses the language of a dictionary entry when the caller
// has no language tag for it. Building the lingua models is expensive,
// so it happens once on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewDetector creates a lazy language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the ISO 639-1 code of the most likely language of
// text, or an empty string when detection is inconclusive.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	d.once.Do(func() {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			WithLowAccuracyMode().
			Build()
	})
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
