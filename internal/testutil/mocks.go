// Package testutil provides shared test doubles for the host surface
// and the dictionary service interfaces.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/service"
)

// MockEngine mocks the live voice synthesizer. Switching to a name not
// in Installed fails, like a missing synthesizer driver would.
type MockEngine struct {
	mu        sync.Mutex
	Name      string
	Conf      map[string]any
	Installed map[string]bool
	Switches  []string
	FailAll   bool
}

// NewMockEngine creates an engine running "espeak" with an English voice.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		Name:      "espeak",
		Conf:      map[string]any{"voice": "en", "rate": 50},
		Installed: map[string]bool{"espeak": true},
	}
}

// Current returns the active engine name and a copy of its settings.
func (m *MockEngine) Current() (string, map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conf := make(map[string]any, len(m.Conf))
	for k, v := range m.Conf {
		conf[k] = v
	}
	return m.Name, conf
}

// Switch activates the named engine, recording the attempt.
func (m *MockEngine) Switch(name string, settings map[string]any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Switches = append(m.Switches, name)
	if m.FailAll || !m.Installed[name] {
		return false
	}
	m.Name = name
	m.Conf = make(map[string]any, len(settings))
	for k, v := range settings {
		m.Conf[k] = v
	}
	return true
}

// CurrentName returns the active engine name.
func (m *MockEngine) CurrentName() string {
	name, _ := m.Current()
	return name
}

// MockSpeech mocks the host speech queue. By default Speak reports
// immediate completion; with Manual set the caller closes the recorded
// done channels itself to simulate long or interrupted speech.
type MockSpeech struct {
	mu       sync.Mutex
	Manual   bool
	Seqs     [][]host.SpeechElement
	Dones    []chan struct{}
	Canceled int
}

// Speak records the sequence and returns its done channel.
func (m *MockSpeech) Speak(seq []host.SpeechElement) <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Seqs = append(m.Seqs, seq)
	done := make(chan struct{})
	if !m.Manual {
		close(done)
	}
	m.Dones = append(m.Dones, done)
	return done
}

// Cancel counts cancellation requests.
func (m *MockSpeech) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Canceled++
}

// Finish closes the done channel of the i-th Speak call.
func (m *MockSpeech) Finish(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	close(m.Dones[i])
}

// Texts flattens the recorded sequences to their plain utterances.
func (m *MockSpeech) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, seq := range m.Seqs {
		for _, el := range seq {
			if text, ok := el.(host.Text); ok {
				out = append(out, string(text))
			}
		}
	}
	return out
}

// MockBraille records braille output.
type MockBraille struct {
	mu    sync.Mutex
	Lines []string
}

// BrailleMessage records the mirrored text.
func (m *MockBraille) BrailleMessage(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, text)
}

// MockMessenger records announcements and browseable documents.
type MockMessenger struct {
	mu          sync.Mutex
	Messages    []string
	Browseables []BrowseableDoc
}

// BrowseableDoc is one recorded browseable document.
type BrowseableDoc struct {
	HTML  string
	Title string
}

// Message records a short announcement.
func (m *MockMessenger) Message(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, text)
}

// BrowseableMessage records a browseable document.
func (m *MockMessenger) BrowseableMessage(html, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Browseables = append(m.Browseables, BrowseableDoc{HTML: html, Title: title})
}

// LastMessage returns the most recent announcement, or "".
func (m *MockMessenger) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

// MockBeeper counts emitted tones.
type MockBeeper struct {
	mu    sync.Mutex
	Beeps []string
}

// Beep records the tone.
func (m *MockBeeper) Beep(freqHz, durationMs int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Beeps = append(m.Beeps, fmt.Sprintf("%dHz/%dms", freqHz, durationMs))
}

// Count returns the number of recorded tones.
func (m *MockBeeper) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Beeps)
}

// MockClipboard is an in-process text clipboard.
type MockClipboard struct {
	mu   sync.Mutex
	Text string
}

// ClipText returns the clipboard content.
func (m *MockClipboard) ClipText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Text
}

// SetClipText replaces the clipboard content.
func (m *MockClipboard) SetClipText(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Text = text
}

// MockSpeechOptions provides fixed speech dispatch options.
type MockSpeechOptions struct {
	Switch   bool
	AutoLang bool
}

func (o MockSpeechOptions) SwitchSynth() bool           { return o.Switch }
func (o MockSpeechOptions) AutoLanguageSwitching() bool { return o.AutoLang }

// MockCatalog is a language catalog backed by a fixed "en-ru" style
// pair list.
type MockCatalog struct {
	Pairs    []string
	UpdateOK bool
	Updates  int
}

// Update counts refresh attempts and reports UpdateOK.
func (c *MockCatalog) Update() bool {
	c.Updates++
	return c.UpdateOK
}

// FromList returns the distinct source languages.
func (c *MockCatalog) FromList() []service.Language {
	seen := make(map[string]bool)
	var out []service.Language
	for _, pair := range c.Pairs {
		from, _ := splitPair(pair)
		if from != "" && !seen[from] {
			seen[from] = true
			out = append(out, service.Lang(from))
		}
	}
	return out
}

// IntoList returns the targets available for a source.
func (c *MockCatalog) IntoList(lang string) []service.Language {
	var out []service.Language
	for _, pair := range c.Pairs {
		from, into := splitPair(pair)
		if from == lang && into != "" {
			out = append(out, service.Lang(into))
		}
	}
	return out
}

// IsAvailable reports whether the pair is listed.
func (c *MockCatalog) IsAvailable(source, target string) bool {
	for _, pair := range c.Pairs {
		from, into := splitPair(pair)
		if from == source && into == target {
			return true
		}
	}
	return false
}

// DefaultFrom returns the first source, or English.
func (c *MockCatalog) DefaultFrom() service.Language {
	if from := c.FromList(); len(from) > 0 {
		return from[0]
	}
	return service.Lang("en")
}

// DefaultInto returns the first target of the default source, or Russian.
func (c *MockCatalog) DefaultInto() service.Language {
	if into := c.IntoList(c.DefaultFrom().Code()); len(into) > 0 {
		return into[0]
	}
	return service.Lang("ru")
}

// All lists every language, sources first.
func (c *MockCatalog) All() []service.Language {
	seen := make(map[string]bool)
	var out []service.Language
	add := func(code string) {
		if code != "" && !seen[code] {
			seen[code] = true
			out = append(out, service.Lang(code))
		}
	}
	for _, pair := range c.Pairs {
		from, _ := splitPair(pair)
		add(from)
	}
	for _, pair := range c.Pairs {
		_, into := splitPair(pair)
		add(into)
	}
	return out
}

func splitPair(pair string) (from, into string) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '-' {
			return pair[:i], pair[i+1:]
		}
	}
	return pair, ""
}

// MockService is a dictionary service descriptor answering from a
// canned result table keyed "from-to:text". Runs records every task
// that actually executed, so tests can tell a cache hit from a lookup.
type MockService struct {
	*service.Base
	ServiceName string
	Results     map[string]service.Result
	Catalog     *MockCatalog
	Delay       time.Duration
	Spec        map[string]any

	mu   sync.Mutex
	Runs []string
}

// NewMockService creates the descriptor with an empty result table.
func NewMockService(name string, order int, catalog *MockCatalog) *MockService {
	return &MockService{
		Base:        service.NewBase(order),
		ServiceName: name,
		Results:     make(map[string]service.Result),
		Catalog:     catalog,
	}
}

func (m *MockService) Name() string    { return m.ServiceName }
func (m *MockService) Summary() string { return "Mock dictionary " + m.ServiceName }

func (m *MockService) ConfSpec() map[string]any {
	if m.Spec != nil {
		return m.Spec
	}
	return map[string]any{"password": "", "switchsynth": false}
}

func (m *MockService) Languages() service.Catalog { return m.Catalog }

// SetResult installs the canned result for one lookup.
func (m *MockService) SetResult(from, into, text string, result service.Result) {
	m.Results[resultKey(from, into, text)] = result
}

// RunCount returns the number of executed tasks.
func (m *MockService) RunCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Runs)
}

func (m *MockService) NewTask(langFrom, langTo, text string) *service.Task {
	return service.NewTask(langFrom, langTo, text, func(from, to, text string) service.Result {
		if m.Delay > 0 {
			time.Sleep(m.Delay)
		}
		m.mu.Lock()
		m.Runs = append(m.Runs, resultKey(from, to, text))
		m.mu.Unlock()
		return m.Results[resultKey(from, to, text)]
	})
}

func resultKey(from, into, text string) string {
	return fmt.Sprintf("%s-%s:%s", from, into, text)
}

// MockOptions resolves service options from a flat "service.key" map.
type MockOptions struct {
	Values map[string]any
}

func (o MockOptions) ServiceOption(svc, key string) any {
	return o.Values[svc+"."+key]
}

func (o MockOptions) ServiceString(svc, key string) string {
	s, _ := o.ServiceOption(svc, key).(string)
	return s
}

func (o MockOptions) ServiceBool(svc, key string) bool {
	b, _ := o.ServiceOption(svc, key).(bool)
	return b
}
