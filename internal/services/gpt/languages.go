package gpt

import "codeberg.org/snonux/quickdict/internal/service"

// supported is the fixed language list offered by the model-backed
// service; any distinct pair of these is available.
var supported = []string{
	"en", "de", "fr", "es", "it", "pt", "nl", "pl", "cs", "sk",
	"uk", "ru", "bg", "sr", "hr", "el", "tr", "ar", "he", "hi",
	"zh", "ja", "ko", "sv", "no", "da", "fi", "hu", "ro", "la",
}

// Catalog is the fixed catalog of the gpt service. Update is a no-op
// success: there is no remote list to refresh.
type Catalog struct{}

// NewCatalog returns the fixed catalog.
func NewCatalog() *Catalog { return &Catalog{} }

func (c *Catalog) Update() bool { return true }

func (c *Catalog) FromList() []service.Language {
	out := make([]service.Language, 0, len(supported))
	for _, code := range supported {
		out = append(out, service.Lang(code))
	}
	return out
}

func (c *Catalog) IntoList(lang string) []service.Language {
	if !c.has(lang) {
		return nil
	}
	out := make([]service.Language, 0, len(supported)-1)
	for _, code := range supported {
		if code != lang {
			out = append(out, service.Lang(code))
		}
	}
	return out
}

func (c *Catalog) has(code string) bool {
	for _, s := range supported {
		if s == code {
			return true
		}
	}
	return false
}

func (c *Catalog) IsAvailable(source, target string) bool {
	return source != target && c.has(source) && c.has(target)
}

func (c *Catalog) DefaultFrom() service.Language { return service.Lang("en") }

func (c *Catalog) DefaultInto() service.Language { return service.Lang("de") }

func (c *Catalog) All() []service.Language { return c.FromList() }
