package synthesizers

import (
	"bytes"
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// containerVersion is the on-disk format version of the profile store.
const containerVersion = 1

// containerSchema validates the persisted profile container. Anything
// that fails validation (including the original unversioned format)
// loads as "no profiles yet".
const containerSchema = `{
	"type": "object",
	"required": ["version", "slots"],
	"properties": {
		"version": {"type": "integer", "minimum": 1},
		"slots": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"},
					"conf": {"type": "object"},
					"lang": {"type": "string"}
				}
			}
		}
	}
}`

var schema = jsonschema.MustCompileString("profiles.json", containerSchema)

type container struct {
	Version int                `json:"version"`
	Slots   map[string]Profile `json:"slots"`
}

// Slot pairs a keyboard slot number with the profile stored in it.
type Slot struct {
	Number  int
	Profile Profile
}

// Profiles is the slot-indexed profile collection plus the anonymous
// default and previous snapshots. It is process-wide shared state and
// locks internally.
type Profiles struct {
	mu     sync.Mutex
	engine EngineRef
	path   string
	slots  map[int]Profile
	def    Profile
	prev   Profile
	log    zerolog.Logger
}

// EngineRef is the slice of the host surface the manager needs.
type EngineRef interface {
	Current() (name string, settings map[string]any)
	Switch(name string, settings map[string]any) bool
}

// NewProfiles creates the manager, captures the default profile from
// the live engine and loads the persisted slot collection from path.
func NewProfiles(engine EngineRef, path string, logger zerolog.Logger) *Profiles {
	p := &Profiles{
		engine: engine,
		path:   path,
		slots:  make(map[int]Profile),
		log:    logger,
	}
	p.def = capture(engine, "")
	p.prev = p.def
	p.load()
	return p
}

func (p *Profiles) load() {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return // no profiles yet
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		p.log.Warn().Err(err).Str("path", p.path).Msg("profile store is not valid JSON, starting empty")
		return
	}
	if err := schema.Validate(doc); err != nil {
		p.log.Warn().Err(err).Str("path", p.path).Msg("profile store failed validation, starting empty")
		return
	}
	var c container
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&c); err != nil {
		return
	}
	for key, prof := range c.Slots {
		slot, err := strconv.Atoi(key)
		if err != nil || slot < 1 || slot > 9 {
			continue
		}
		p.slots[slot] = prof
	}
}

// Save persists the slot collection as a versioned container.
func (p *Profiles) Save() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := container{Version: containerVersion, Slots: make(map[string]Profile)}
	for slot, prof := range p.slots {
		if prof.IsSet() {
			c.Slots[strconv.Itoa(slot)] = prof
		}
	}
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0644)
}

// Capture snapshots the live engine into the given slot, tagging it
// with the language code. It returns the stored profile.
func (p *Profiles) Capture(slot int, lang string) Profile {
	p.mu.Lock()
	defer p.mu.Unlock()

	prof := capture(p.engine, lang)
	p.slots[slot] = prof
	return prof
}

// Get returns the profile stored in a slot, or an unset profile.
func (p *Profiles) Get(slot int) Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[slot]
}

// SetLang re-tags the profile in a slot with a language code.
func (p *Profiles) SetLang(slot int, lang string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.slots[slot]
	if !ok {
		return
	}
	prof.Lang = lang
	p.slots[slot] = prof
}

// Apply switches the live engine to the profile in the given slot.
// Applying never alters the stored snapshot; capture and apply are
// inverse operations.
func (p *Profiles) Apply(slot int) bool {
	p.mu.Lock()
	prof := p.slots[slot]
	p.mu.Unlock()
	return prof.Apply(p.engine)
}

// ApplyProfile switches the live engine to an arbitrary profile.
func (p *Profiles) ApplyProfile(prof Profile) bool {
	return prof.Apply(p.engine)
}

// Remove deletes the profile in a slot, reporting whether one was set.
func (p *Profiles) Remove(slot int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	prof, ok := p.slots[slot]
	delete(p.slots, slot)
	return ok && prof.IsSet()
}

// Iterate returns the named profiles in slot order. Unset slots are
// excluded.
func (p *Profiles) Iterate() []Slot {
	p.mu.Lock()
	defer p.mu.Unlock()

	numbers := make([]int, 0, len(p.slots))
	for slot, prof := range p.slots {
		if prof.IsSet() {
			numbers = append(numbers, slot)
		}
	}
	sort.Ints(numbers)
	out := make([]Slot, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, Slot{Number: n, Profile: p.slots[n]})
	}
	return out
}

// ForLang returns the first named profile associated with the language.
func (p *Profiles) ForLang(lang string) (Profile, bool) {
	if lang == "" {
		return Profile{}, false
	}
	for _, s := range p.Iterate() {
		if s.Profile.Lang == lang {
			return s.Profile, true
		}
	}
	return Profile{}, false
}

// Current snapshots the live engine without storing it anywhere.
func (p *Profiles) Current() Profile {
	return capture(p.engine, "")
}

// RememberCurrent stores prof as the anonymous previous profile; when
// prof is nil the live engine is snapshotted instead.
func (p *Profiles) RememberCurrent(prof *Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if prof != nil {
		p.prev = *prof
		return
	}
	p.prev = capture(p.engine, "")
}

// RestorePrevious re-applies the previous snapshot.
func (p *Profiles) RestorePrevious() bool {
	p.mu.Lock()
	prev := p.prev
	p.mu.Unlock()
	return prev.Apply(p.engine)
}

// CurrentAsDefault re-captures the live engine as the default profile.
func (p *Profiles) CurrentAsDefault() Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.def = capture(p.engine, "")
	return p.def
}

// RestoreDefault re-applies the default snapshot captured at startup.
func (p *Profiles) RestoreDefault() bool {
	p.mu.Lock()
	def := p.def
	p.mu.Unlock()
	return def.Apply(p.engine)
}

// Len reports the number of occupied slots.
func (p *Profiles) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.slots)
}
