// Package host declares the surface the lookup engine expects from its
// embedding environment: clipboard and message output, tone feedback,
// the speech queue and the live voice synthesizer. A screen reader
// implements these against its own APIs; the CLI ships a console
// implementation.
package host

// SpeechElement is one item of a speech sequence.
type SpeechElement interface {
	speechElement()
}

// Text is a plain utterance in a speech sequence.
type Text string

// LangChange is a marker instructing the speech layer to switch the
// voice accent for the rest of the sequence. It carries a language code.
type LangChange string

func (Text) speechElement()       {}
func (LangChange) speechElement() {}

// Speech is the host's thread-safe speech queue. Speak must be safe to
// call from any goroutine; the returned channel is closed once the
// sequence has finished speaking or was canceled.
type Speech interface {
	Speak(seq []SpeechElement) <-chan struct{}
	Cancel()
}

// Braille mirrors a message on the braille display.
type Braille interface {
	BrailleMessage(text string)
}

// Messenger delivers short announcements and browseable documents to the user.
type Messenger interface {
	Message(text string)
	BrowseableMessage(html, title string)
}

// Beeper emits a short tone. Used for liveness feedback during lookups.
type Beeper interface {
	Beep(freqHz, durationMs int)
}

// Clipboard reads and writes the host clipboard as text.
type Clipboard interface {
	ClipText() string
	SetClipText(text string)
}

// Engine is the live voice synthesizer. Settings are opaque to the
// engine consumer; Switch pushes a full settings set and activates the
// named synthesizer, reporting whether the switch took effect.
type Engine interface {
	Current() (name string, settings map[string]any)
	Switch(name string, settings map[string]any) bool
}
