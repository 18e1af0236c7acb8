// Package translate runs the lookup pipeline: candidate language pair
// selection with optional auto-swap, the cached multi-server lookup and
// delivery of the outcome to speech, braille and clipboard.
package translate

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/quickdict/internal/cache"
	"codeberg.org/snonux/quickdict/internal/config"
	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/service"
	"codeberg.org/snonux/quickdict/internal/speech"
)

// Orchestrator coordinates one user-visible lookup. It is safe for use
// from concurrent per-action goroutines.
type Orchestrator struct {
	cfg      *config.Config
	registry *service.Registry
	cache    *cache.Cache
	dispatch *speech.Dispatcher
	clip     host.Clipboard
	msg      host.Messenger
	log      zerolog.Logger

	mu   sync.Mutex
	last *service.Result
}

// New wires the orchestrator.
func New(
	cfg *config.Config,
	registry *service.Registry,
	c *cache.Cache,
	dispatch *speech.Dispatcher,
	clip host.Clipboard,
	msg host.Messenger,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		cache:    c,
		dispatch: dispatch,
		clip:     clip,
		msg:      msg,
		log:      logger,
	}
}

// Lookup retrieves the dictionary entry for text and announces it, or
// shows it as a browseable document when browseable is set. The second
// return value is false for the "no results" outcome, which is a valid
// empty answer and not an error.
func (o *Orchestrator) Lookup(text string, browseable bool) (service.Result, bool) {
	active := o.registry.Lookup(o.cfg.Active())
	if active == nil {
		o.log.Error().Str("service", o.cfg.Active()).Msg("active dictionary service is not registered")
		return service.Result{}, false
	}

	pairs := [][2]string{{o.cfg.From(), o.cfg.Into()}}
	if o.cfg.AutoSwap() && active.Languages().IsAvailable(o.cfg.Into(), o.cfg.From()) {
		pairs = append(pairs, [2]string{o.cfg.Into(), o.cfg.From()})
	}

	fingerprint := o.cfg.Fingerprint(active)
	var result service.Result
	for _, pair := range pairs {
		from, into := pair[0], pair[1]
		key := cache.Key{LangFrom: from, LangTo: into, Text: text, Fingerprint: fingerprint}
		result = o.cache.GetOrCompute(key, func() *service.Task {
			return active.NewTask(from, into, text)
		})
		if result.Plaintext != "" {
			break
		}
	}
	if result.Plaintext == "" {
		o.msg.Message("No results")
		return service.Result{}, false
	}
	if result.Err {
		o.log.Warn().
			Str("service", active.Name()).
			Str("text", text).
			Msg("lookup completed with an error response")
	}

	o.mu.Lock()
	o.last = &result
	o.mu.Unlock()

	o.deliver(result, browseable)
	if o.cfg.CopyToClip() {
		o.clip.SetClipText(result.Plaintext)
	}
	return result, true
}

func (o *Orchestrator) deliver(result service.Result, browseable bool) {
	if browseable {
		title := fmt.Sprintf("%s-%s",
			service.Lang(result.LangFrom).Name(), service.Lang(result.LangTo).Name())
		o.msg.BrowseableMessage(result.HTML, title)
		return
	}
	o.msg.Message(fmt.Sprintf("%s - %s",
		service.Lang(result.LangFrom).Name(), service.Lang(result.LangTo).Name()))
	o.dispatch.Speak(result.Plaintext, result.LangTo)
}

// Last returns the most recent successful result, if any.
func (o *Orchestrator) Last() (service.Result, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return service.Result{}, false
	}
	return *o.last, true
}

// RepeatLast re-announces the most recent result and copies its
// plaintext to the clipboard.
func (o *Orchestrator) RepeatLast() bool {
	last, ok := o.Last()
	if !ok {
		o.msg.Message("There is no dictionary entry to repeat")
		return false
	}
	o.deliver(last, false)
	o.clip.SetClipText(last.Plaintext)
	return true
}

// Swap reverses the configured language pair when the active service
// offers the reversed pair, announcing the new pair.
func (o *Orchestrator) Swap() bool {
	active := o.registry.Lookup(o.cfg.Active())
	if active == nil {
		return false
	}
	from, into := o.cfg.From(), o.cfg.Into()
	if !active.Languages().IsAvailable(into, from) {
		o.msg.Message(fmt.Sprintf("Swap languages is not available for this pair: %s - %s",
			service.Lang(from).Name(), service.Lang(into).Name()))
		return false
	}
	o.cfg.SetPair(into, from)
	o.msg.Message(fmt.Sprintf("Translate: from %s to %s",
		service.Lang(into).Name(), service.Lang(from).Name()))
	return true
}

// AnnouncePair announces the current source and target languages.
func (o *Orchestrator) AnnouncePair() {
	o.msg.Message(fmt.Sprintf("Translate: from %s to %s",
		service.Lang(o.cfg.From()).Name(), service.Lang(o.cfg.Into()).Name()))
}
