package service

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Names for codes the platform locale database may not know.
var langNames = map[string]string{
	"ceb": "Cebuano",
	"eo":  "Esperanto",
	"hmn": "Hmong",
	"ht":  "Creole Haiti",
	"jv":  "Javanese",
	"la":  "Latin",
	"mg":  "Malagasy",
	"mhr": "Meadow Mari",
	"mrj": "Hill Mari",
	"my":  "Myanmar (Burmese)",
	"ny":  "Chichewa",
	"so":  "Somali",
	"st":  "Sesotho",
	"su":  "Sundanese",
	"tl":  "Tagalog",
	"yi":  "Yiddish",
}

// Language is a short language code with display-name resolution.
type Language struct {
	code string
}

// Lang wraps a language code.
func Lang(code string) Language {
	return Language{code: code}
}

// Code returns the short language code.
func (l Language) Code() string { return l.code }

// Name resolves the human-readable language name. Codes unknown to the
// locale database fall back to the static name table, then to the code
// itself.
func (l Language) Name() string {
	if tag, err := language.Parse(l.code); err == nil {
		if name := display.English.Tags().Name(tag); name != "" {
			return name
		}
	}
	if name, ok := langNames[l.code]; ok {
		return name
	}
	return l.code
}

// Catalog is the per-service language list. Implementations back it
// with a cached JSON file refreshable from the service's own
// list-languages endpoint.
type Catalog interface {
	// Update fetches the language list from the remote service and
	// saves it to the catalog file, reporting success.
	Update() bool
	// FromList returns the available source languages.
	FromList() []Language
	// IntoList returns the target languages available for a source.
	IntoList(lang string) []Language
	// IsAvailable reports whether the pair is served.
	IsAvailable(source, target string) bool
	// DefaultFrom is the default source language.
	DefaultFrom() Language
	// DefaultInto is the default target language.
	DefaultInto() Language
	// All lists every supported language, sources first.
	All() []Language
}

// CatalogFile persists a service's language list as a JSON document of
// the form {"data": ...}. The payload shape is service specific.
type CatalogFile struct {
	Path string
}

type catalogEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Load decodes the catalog payload into v. A missing file is an error
// the caller treats as an empty catalog.
func (c CatalogFile) Load(v any) error {
	raw, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	var env catalogEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode language catalog %s: %w", c.Path, err)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("failed to decode language catalog %s: %w", c.Path, err)
	}
	return nil
}

// Save writes the catalog payload, replacing any previous content.
func (c CatalogFile) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode language catalog: %w", err)
	}
	env, err := json.MarshalIndent(catalogEnvelope{Data: data}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode language catalog: %w", err)
	}
	if err := os.WriteFile(c.Path, env, 0644); err != nil {
		return fmt.Errorf("failed to write language catalog: %w", err)
	}
	return nil
}
