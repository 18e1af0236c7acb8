package yandex

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codeberg.org/snonux/quickdict/internal/service"
)

// Catalog is the Yandex language catalog. The service reports language
// pairs as "en-ru" style codes; the list is cached in a JSON file and
// refreshable from the getLangs endpoint.
type Catalog struct {
	api  *API
	file service.CatalogFile

	mu    sync.Mutex
	pairs []string
}

// NewCatalog loads the cached language list from dataDir.
func NewCatalog(api *API, dataDir string) *Catalog {
	c := &Catalog{
		api:  api,
		file: service.CatalogFile{Path: filepath.Join(dataDir, ServiceName+".languages.json")},
	}
	var pairs []string
	if err := c.file.Load(&pairs); err == nil {
		c.pairs = pairs
	}
	return c
}

// Update refreshes the pair list from the service. Responses with
// implausibly few pairs are discarded, mirroring the sanity check the
// endpoint needs because it answers an empty list on quota exhaustion.
func (c *Catalog) Update() bool {
	pairs, err := c.api.ListLanguages()
	if err != nil || len(pairs) <= 10 {
		return false
	}
	if err := c.file.Save(pairs); err != nil {
		return false
	}
	c.mu.Lock()
	c.pairs = pairs
	c.mu.Unlock()
	return true
}

func (c *Catalog) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pairs
}

// FromList returns the distinct source languages.
func (c *Catalog) FromList() []service.Language {
	seen := make(map[string]bool)
	var out []service.Language
	for _, pair := range c.snapshot() {
		code := strings.SplitN(pair, "-", 2)[0]
		if !seen[code] {
			seen[code] = true
			out = append(out, service.Lang(code))
		}
	}
	return out
}

// IntoList returns the target languages available for a source.
func (c *Catalog) IntoList(lang string) []service.Language {
	if lang == "" {
		return nil
	}
	var out []service.Language
	for _, pair := range c.snapshot() {
		parts := strings.SplitN(pair, "-", 2)
		if len(parts) == 2 && parts[0] == lang {
			out = append(out, service.Lang(parts[1]))
		}
	}
	return out
}

// IsAvailable reports whether the service lists the pair.
func (c *Catalog) IsAvailable(source, target string) bool {
	want := source + "-" + target
	for _, pair := range c.snapshot() {
		if pair == want {
			return true
		}
	}
	return false
}

// DefaultFrom returns English when available, else the first source.
func (c *Catalog) DefaultFrom() service.Language {
	from := c.FromList()
	for _, lang := range from {
		if lang.Code() == "en" {
			return lang
		}
	}
	if len(from) > 0 {
		return from[0]
	}
	return service.Lang("en")
}

// DefaultInto returns the first target available for the default
// source.
func (c *Catalog) DefaultInto() service.Language {
	into := c.IntoList(c.DefaultFrom().Code())
	if len(into) > 0 {
		return into[0]
	}
	return service.Lang("ru")
}

// All lists every supported language, sources first.
func (c *Catalog) All() []service.Language {
	seen := make(map[string]bool)
	var out []service.Language
	add := func(code string) {
		if code != "" && !seen[code] {
			seen[code] = true
			out = append(out, service.Lang(code))
		}
	}
	for _, lang := range c.FromList() {
		add(lang.Code())
	}
	targets := make([]string, 0)
	for _, pair := range c.snapshot() {
		parts := strings.SplitN(pair, "-", 2)
		if len(parts) == 2 {
			targets = append(targets, parts[1])
		}
	}
	sort.Strings(targets)
	for _, code := range targets {
		add(code)
	}
	return out
}

// SetPairs replaces the in-memory pair list. Used when seeding a fresh
// data directory with the bundled list.
func (c *Catalog) SetPairs(pairs []string) {
	c.mu.Lock()
	c.pairs = pairs
	c.mu.Unlock()
}
