// Package speech delivers lookup results to the host's speech and
// braille output, swapping the voice synthesizer for the result
// language when configured and guaranteeing the swap is rolled back
// once speech finishes or is canceled.
package speech

import (
	"github.com/rs/zerolog"

	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/synthesizers"
)

// Options exposes the configuration the dispatcher consults per
// utterance.
type Options interface {
	// SwitchSynth reports whether the active service wants the
	// synthesizer switched to match the result language.
	SwitchSynth() bool
	// AutoLanguageSwitching reports whether the host's per-utterance
	// voice accent switching is enabled.
	AutoLanguageSwitching() bool
}

// Dispatcher owns cross-thread delivery of results to the speech queue.
// Lookup tasks never touch the host directly; they hand their result
// here and the host's own queue primitive does the marshaling.
type Dispatcher struct {
	profiles *synthesizers.Profiles
	speech   host.Speech
	braille  host.Braille
	opts     Options
	detector *Detector
	log      zerolog.Logger
}

// NewDispatcher wires the dispatcher. detector may be nil to disable
// result-language detection.
func NewDispatcher(
	profiles *synthesizers.Profiles,
	sp host.Speech,
	braille host.Braille,
	opts Options,
	detector *Detector,
	logger zerolog.Logger,
) *Dispatcher {
	return &Dispatcher{
		profiles: profiles,
		speech:   sp,
		braille:  braille,
		opts:     opts,
		detector: detector,
		log:      logger,
	}
}

// Speak announces text in the given language. When synthesizer
// switching is enabled and a profile is associated with the language,
// the engine is swapped before speaking and a watcher goroutine
// restores the previous engine once the host signals the speech
// finished or was canceled. An empty lang falls back to language
// detection when a detector is configured.
func (d *Dispatcher) Speak(text, lang string) {
	if lang == "" && d.detector != nil {
		lang = d.detector.Detect(text)
	}

	var prof synthesizers.Profile
	swapped := false
	if d.opts.SwitchSynth() {
		if p, ok := d.profiles.ForLang(lang); ok {
			d.profiles.RememberCurrent(nil)
			if !d.profiles.ApplyProfile(p) {
				d.log.Warn().Str("engine", p.Name).Msg("synthesizer switch failed, keeping current engine")
			} else {
				prof = p
				swapped = true
			}
		}
	}

	seq := make([]host.SpeechElement, 0, 2)
	if d.opts.AutoLanguageSwitching() && lang != "" {
		seq = append(seq, host.LangChange(lang))
	}
	seq = append(seq, host.Text(text))

	done := d.speech.Speak(seq)
	d.braille.BrailleMessage(text)

	if swapped {
		go d.rollback(done, prof)
	}
}

// rollback is the single long-lived background goroutine in the
// system. It terminates as soon as the host signals completion, so the
// user's ordinary synthesizer always comes back even when speech is
// interrupted mid-utterance.
func (d *Dispatcher) rollback(done <-chan struct{}, applied synthesizers.Profile) {
	<-done
	d.profiles.RestorePrevious()
	d.profiles.RememberCurrent(&applied)
}
