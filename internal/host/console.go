package host

import (
	"fmt"
	"io"
	"sync"
)

// Console implements the host surface for terminal use. Speech is
// rendered as text, beeps are dropped and the clipboard is an in-process
// string. It exists so the engine can run standalone; a screen reader
// embedding the module provides its own implementation instead.
type Console struct {
	Out io.Writer

	mu   sync.Mutex
	clip string

	engineName string
	engineConf map[string]any
	// Engines the console host pretends to have installed. Switch to an
	// unknown name fails, mirroring a missing synthesizer driver.
	Installed map[string]bool
}

// NewConsole creates a console host writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		Out:        out,
		engineName: "espeak",
		engineConf: map[string]any{"voice": "en", "rate": 50},
		Installed:  map[string]bool{"espeak": true},
	}
}

// Speak prints the sequence and reports immediate completion.
func (c *Console) Speak(seq []SpeechElement) <-chan struct{} {
	for _, el := range seq {
		switch v := el.(type) {
		case LangChange:
			fmt.Fprintf(c.Out, "[lang: %s]\n", string(v))
		case Text:
			fmt.Fprintln(c.Out, string(v))
		}
	}
	done := make(chan struct{})
	close(done)
	return done
}

// Cancel is a no-op: console speech finishes instantly.
func (c *Console) Cancel() {}

// BrailleMessage is a no-op on the console.
func (c *Console) BrailleMessage(text string) {}

// Message prints a short announcement.
func (c *Console) Message(text string) {
	fmt.Fprintln(c.Out, text)
}

// BrowseableMessage prints the document as-is with its title.
func (c *Console) BrowseableMessage(html, title string) {
	fmt.Fprintf(c.Out, "== %s ==\n%s\n", title, html)
}

// Beep is a no-op on the console.
func (c *Console) Beep(freqHz, durationMs int) {}

// ClipText returns the in-process clipboard content.
func (c *Console) ClipText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clip
}

// SetClipText replaces the in-process clipboard content.
func (c *Console) SetClipText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clip = text
}

// Current returns the active engine name and a copy of its settings.
func (c *Console) Current() (string, map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conf := make(map[string]any, len(c.engineConf))
	for k, v := range c.engineConf {
		conf[k] = v
	}
	return c.engineName, conf
}

// Switch activates the named engine with the given settings. Unknown
// engine names fail.
func (c *Console) Switch(name string, settings map[string]any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.Installed[name] {
		return false
	}
	c.engineName = name
	c.engineConf = make(map[string]any, len(settings))
	for k, v := range settings {
		c.engineConf[k] = v
	}
	return true
}
