package lexicala

import (
	"path/filepath"
	"sync"

	"codeberg.org/snonux/quickdict/internal/service"
)

// Catalog is the Lexicala language catalog: per source dictionary, a
// list of source languages and a list of target languages. Any source
// language combines with any target language.
type Catalog struct {
	api    *API
	file   service.CatalogFile
	source func() string

	mu        sync.Mutex
	resources map[string]Resource
}

// NewCatalog loads the cached resources document from dataDir. source
// resolves the configured source dictionary per call.
func NewCatalog(api *API, dataDir string, source func() string) *Catalog {
	c := &Catalog{
		api:    api,
		file:   service.CatalogFile{Path: filepath.Join(dataDir, ServiceName+".languages.json")},
		source: source,
	}
	var resources map[string]Resource
	if err := c.file.Load(&resources); err == nil {
		c.resources = resources
	}
	return c
}

// Update refreshes the resources document from the service. Documents
// with fewer than three source dictionaries are discarded as truncated.
func (c *Catalog) Update() bool {
	resources, err := c.api.Languages()
	if err != nil || len(resources) < 3 {
		return false
	}
	if err := c.file.Save(resources); err != nil {
		return false
	}
	c.mu.Lock()
	c.resources = resources
	c.mu.Unlock()
	return true
}

func (c *Catalog) resource() Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resources[c.source()]
}

// Sources lists the available source dictionary names.
func (c *Catalog) Sources() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.resources))
	for name := range c.resources {
		names = append(names, name)
	}
	return names
}

// FromList returns the source languages of the selected dictionary.
func (c *Catalog) FromList() []service.Language {
	res := c.resource()
	out := make([]service.Language, 0, len(res.SourceLanguages))
	for _, code := range res.SourceLanguages {
		out = append(out, service.Lang(code))
	}
	return out
}

// IntoList returns the target languages; Lexicala pairs any source
// with any target, so the list does not depend on the source language.
func (c *Catalog) IntoList(lang string) []service.Language {
	if lang == "" {
		return nil
	}
	res := c.resource()
	out := make([]service.Language, 0, len(res.TargetLanguages))
	for _, code := range res.TargetLanguages {
		out = append(out, service.Lang(code))
	}
	return out
}

// IsAvailable reports whether the pair is served by the selected
// source dictionary.
func (c *Catalog) IsAvailable(source, target string) bool {
	res := c.resource()
	return contains(res.SourceLanguages, source) && contains(res.TargetLanguages, target)
}

func contains(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// DefaultFrom returns English when available, else the first source.
func (c *Catalog) DefaultFrom() service.Language {
	res := c.resource()
	if contains(res.SourceLanguages, "en") {
		return service.Lang("en")
	}
	if len(res.SourceLanguages) > 0 {
		return service.Lang(res.SourceLanguages[0])
	}
	return service.Lang("en")
}

// DefaultInto returns the first target for the default source.
func (c *Catalog) DefaultInto() service.Language {
	into := c.IntoList(c.DefaultFrom().Code())
	if len(into) > 0 {
		return into[0]
	}
	return service.Lang("en")
}

// All lists every supported language, sources first.
func (c *Catalog) All() []service.Language {
	seen := make(map[string]bool)
	var out []service.Language
	res := c.resource()
	for _, code := range append(append([]string{}, res.SourceLanguages...), res.TargetLanguages...) {
		if code != "" && !seen[code] {
			seen[code] = true
			out = append(out, service.Lang(code))
		}
	}
	return out
}
