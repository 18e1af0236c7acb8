package yandex

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/quickdict/internal/service"
	"codeberg.org/snonux/quickdict/internal/testutil"
)

func seededCatalog(t *testing.T, pairs []string) *Catalog {
	t.Helper()
	dataDir := t.TempDir()
	file := service.CatalogFile{Path: filepath.Join(dataDir, ServiceName+".languages.json")}
	if err := file.Save(pairs); err != nil {
		t.Fatal(err)
	}
	return NewCatalog(nil, dataDir)
}

func TestCatalogLoadsFromFile(t *testing.T) {
	c := seededCatalog(t, []string{"en-ru", "en-fr", "ru-en"})

	from := c.FromList()
	if len(from) != 2 || from[0].Code() != "en" || from[1].Code() != "ru" {
		t.Errorf("FromList() = %v", from)
	}

	into := c.IntoList("en")
	if len(into) != 2 || into[0].Code() != "ru" || into[1].Code() != "fr" {
		t.Errorf("IntoList(en) = %v", into)
	}
	if c.IntoList("") != nil {
		t.Error("IntoList(\"\") must be empty")
	}
}

func TestCatalogMissingFileIsEmpty(t *testing.T) {
	c := NewCatalog(nil, t.TempDir())
	if len(c.FromList()) != 0 {
		t.Errorf("FromList() = %v, want empty", c.FromList())
	}
}

func TestCatalogIsAvailable(t *testing.T) {
	c := seededCatalog(t, []string{"en-ru", "ru-en", "en-de"})

	tests := []struct {
		source, target string
		want           bool
	}{
		{"en", "ru", true},
		{"ru", "en", true},
		{"en", "de", true},
		{"de", "en", false},
		{"fr", "en", false},
	}
	for _, tt := range tests {
		if got := c.IsAvailable(tt.source, tt.target); got != tt.want {
			t.Errorf("IsAvailable(%s, %s) = %v, want %v", tt.source, tt.target, got, tt.want)
		}
	}
}

func TestCatalogDefaults(t *testing.T) {
	c := seededCatalog(t, []string{"ru-en", "en-fr", "en-ru"})
	if got := c.DefaultFrom().Code(); got != "en" {
		t.Errorf("DefaultFrom() = %q, want en (preferred when available)", got)
	}
	if got := c.DefaultInto().Code(); got != "fr" {
		t.Errorf("DefaultInto() = %q, want the first target of en", got)
	}

	empty := NewCatalog(nil, t.TempDir())
	if got := empty.DefaultFrom().Code(); got != "en" {
		t.Errorf("empty DefaultFrom() = %q, want en", got)
	}
	if got := empty.DefaultInto().Code(); got != "ru" {
		t.Errorf("empty DefaultInto() = %q, want ru", got)
	}
}

func TestCatalogAll(t *testing.T) {
	c := seededCatalog(t, []string{"en-ru", "ru-en"})
	all := c.All()
	if len(all) != 2 {
		t.Errorf("All() = %v, want en and ru once each", all)
	}
}

func pairServer(pairs string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, pairs)
	}))
}

func TestCatalogUpdate(t *testing.T) {
	server := pairServer(`["en-ru","ru-en","en-fr","fr-en","en-de","de-en","en-it","it-en","en-es","es-en","en-pt"]`)
	defer server.Close()

	dataDir := t.TempDir()
	api := newAPI(server.URL, server.URL, fixedToken, func() bool { return false }, testutil.Logger())
	c := NewCatalog(api, dataDir)

	if !c.Update() {
		t.Fatal("Update() failed")
	}
	if !c.IsAvailable("en", "pt") {
		t.Error("updated catalog missing a fetched pair")
	}

	// The refreshed list must survive a reload from disk.
	reloaded := NewCatalog(nil, dataDir)
	if !reloaded.IsAvailable("en", "pt") {
		t.Error("updated catalog was not persisted")
	}
}

func TestCatalogUpdateRejectsTruncatedList(t *testing.T) {
	// The endpoint answers an implausibly short list on quota
	// exhaustion; that must never replace a good catalog.
	server := pairServer(`["en-ru"]`)
	defer server.Close()

	dataDir := t.TempDir()
	file := service.CatalogFile{Path: filepath.Join(dataDir, ServiceName+".languages.json")}
	good := []string{"en-ru", "ru-en", "en-fr", "fr-en", "en-de", "de-en", "en-it", "it-en", "en-es", "es-en", "en-pt"}
	if err := file.Save(good); err != nil {
		t.Fatal(err)
	}

	api := newAPI(server.URL, server.URL, fixedToken, func() bool { return false }, testutil.Logger())
	c := NewCatalog(api, dataDir)
	if c.Update() {
		t.Error("Update() accepted a truncated list")
	}
	if !c.IsAvailable("en", "pt") {
		t.Error("truncated update clobbered the good catalog")
	}
}

func TestCatalogSetPairs(t *testing.T) {
	c := NewCatalog(nil, t.TempDir())
	c.SetPairs([]string{"en-ru"})
	if !c.IsAvailable("en", "ru") {
		t.Error("SetPairs did not take effect")
	}
}
