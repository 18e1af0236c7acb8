// Package lexicala implements the Lexicala dictionary backend (via the
// RapidAPI gateway).
package lexicala

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// ServiceName is the stable registry name of this backend.
const ServiceName = "lexicala"

const (
	baseURL        = "https://lexicala1.p.rapidapi.com"
	rapidAPIHost   = "lexicala1.p.rapidapi.com"
	requestTimeout = 8 * time.Second
)

// API is the HTTP client for the Lexicala endpoints. Lexicala has no
// mirror; the circuit breaker still shields repeated lookups from a
// hard outage.
type API struct {
	client  *http.Client
	base    string
	breaker *gobreaker.CircuitBreaker
	key     func() string
	log     zerolog.Logger
}

// NewAPI creates the client. The RapidAPI key is read per request.
func NewAPI(key func() string, logger zerolog.Logger) *API {
	return newAPI(baseURL, key, logger)
}

func newAPI(base string, key func() string, logger zerolog.Logger) *API {
	return &API{
		client: &http.Client{Timeout: requestTimeout},
		base:   base,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    ServiceName,
			Timeout: 30 * time.Second,
		}),
		key: key,
		log: logger,
	}
}

func (a *API) get(query string, out any) error {
	_, err := a.breaker.Execute(func() (any, error) {
		req, err := http.NewRequest(http.MethodGet, a.base+query, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla 5.0")
		req.Header.Set("X-RapidAPI-Host", rapidAPIHost)
		req.Header.Set("X-RapidAPI-Key", a.key())
		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP error: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("incorrect response code %d from the server", resp.StatusCode)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("JSON error: %v", err)
		}
		return nil, nil
	})
	return err
}

// Search looks text up in the given source dictionary and language.
func (a *API) Search(source, language, text string) (map[string]any, error) {
	query := fmt.Sprintf("/search?source=%s&language=%s&text=%s",
		url.QueryEscape(source), url.QueryEscape(language), url.QueryEscape(text))
	var payload map[string]any
	if err := a.get(query, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Languages fetches the service's resources document: source
// dictionaries with their source and target language lists.
func (a *API) Languages() (map[string]Resource, error) {
	var payload struct {
		Resources map[string]Resource `json:"resources"`
	}
	if err := a.get("/languages", &payload); err != nil {
		return nil, err
	}
	return payload.Resources, nil
}

// Resource describes one source dictionary of the service.
type Resource struct {
	SourceLanguages []string `json:"source_languages"`
	TargetLanguages []string `json:"target_languages"`
}
