// Package synthesizers manages named snapshots of the speech engine's
// configuration: nine keyboard slots plus the anonymous default and
// previous profiles used for automatic voice switching and rollback.
package synthesizers

import (
	"fmt"

	"codeberg.org/snonux/quickdict/internal/host"
)

// Profile is a snapshot of a voice synthesizer: engine name, the full
// opaque settings set and an optional associated language code. A
// profile with no engine name is unset and excluded from listings.
type Profile struct {
	Name string         `json:"name"`
	Conf map[string]any `json:"conf"`
	Lang string         `json:"lang"`
}

// IsSet reports whether the profile holds a captured snapshot.
func (p Profile) IsSet() bool { return p.Name != "" }

// Title names the profile by its engine and voice.
func (p Profile) Title() string {
	voice, _ := p.Conf["voice"].(string)
	return fmt.Sprintf("%s-%s", p.Name, voice)
}

// Apply pushes the snapshot into the live engine and switches to it.
// Failure (for example the engine is no longer installed) leaves the
// stored snapshot untouched and is reported as false; whatever partial
// change occurred in the live engine stays as-is.
func (p Profile) Apply(engine host.Engine) bool {
	if !p.IsSet() {
		return false
	}
	return engine.Switch(p.Name, p.Conf)
}

// capture snapshots the live engine, keeping any language association.
func capture(engine host.Engine, lang string) Profile {
	name, conf := engine.Current()
	return Profile{Name: name, Conf: conf, Lang: lang}
}
