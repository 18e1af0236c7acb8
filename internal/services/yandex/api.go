// Package yandex implements the Yandex Dictionaries backend.
package yandex

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
const ServiceName = "yandex"

const (
	directURL = "https://dictionary.yandex.net"
	mirrorURL = "https://info.alwaysdata.net"

	requestTimeout = 8 * time.Second
)

// API is the HTTP client for the Yandex dictionary endpoints. Every
// request walks the server list (primary then mirror, or reversed by
// the mirror option) and returns the first well-formed response; a
// per-server circuit breaker keeps a flapping endpoint from eating the
// timeout on every lookup.
type API struct {
	client      *http.Client
	primary     string
	mirror      string
	breakers    map[string]*gobreaker.CircuitBreaker
	token       func() string
	mirrorFirst func() bool
	log         zerolog.Logger
}

// NewAPI creates the client. token and mirrorFirst are read per request
// so configuration changes apply without rebuilding the service.
func NewAPI(token func() string, mirrorFirst func() bool, logger zerolog.Logger) *API {
	return newAPI(directURL, mirrorURL, token, mirrorFirst, logger)
}

func newAPI(primary, mirror string, token func() string, mirrorFirst func() bool, logger zerolog.Logger) *API {
	breakers := make(map[string]*gobreaker.CircuitBreaker, 2)
	for _, server := range []string{primary, mirror} {
		breakers[server] = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    server,
			Timeout: 30 * time.Second,
		})
	}
	return &API{
		client:      &http.Client{Timeout: requestTimeout},
		primary:     primary,
		mirror:      mirror,
		breakers:    breakers,
		token:       token,
		mirrorFirst: mirrorFirst,
		log:         logger,
	}
}

func (a *API) servers() []string {
	if a.mirrorFirst() {
		return []string{a.mirror, a.primary}
	}
	return []string{a.primary, a.mirror}
}

// get requests query from each candidate server in order and returns
// the first successfully parsed payload. A server that times out,
// answers with a non-success status or yields malformed JSON is skipped
// and the next one tried; when all fail, the last failure is returned.
func (a *API) get(query string) (map[string]any, error) {
	var lastErr error
	for _, server := range a.servers() {
		payload, err := a.fetch(server, query)
		if err != nil {
			a.log.Debug().Err(err).Str("server", server).Msg("dictionary server attempt failed")
			lastErr = err
			continue
		}
		return payload, nil
	}
	return nil, lastErr
}

func (a *API) fetch(server, query string) (map[string]any, error) {
	out, err := a.breakers[server].Execute(func() (any, error) {
		req, err := http.NewRequest(http.MethodGet, server+query, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "Mozilla 5.0")
		resp, err := a.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP error: %v [%s]", err, server)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			return nil, fmt.Errorf("incorrect response code %d from the server %s", resp.StatusCode, server)
		}
		var payload map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("JSON error: %v [%s]", err, server)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

// Lookup fetches the dictionary article for one language pair and text.
func (a *API) Lookup(langFrom, langTo, text string) (map[string]any, error) {
	query := fmt.Sprintf(
		"/api/v1/dicservice.json/lookup?key=%s&lang=%s-%s&text=%s&ui=%s",
		a.token(), langFrom, langTo, url.QueryEscape(text), langTo)
	return a.get(query)
}

// ListLanguages fetches the service's available language pair codes
// (as "en-ru" style strings).
func (a *API) ListLanguages() ([]string, error) {
	query := fmt.Sprintf("/api/v1/dicservice.json/getLangs?key=%s", a.token())
	// getLangs answers a bare JSON array, not an object.
	var lastErr error
	for _, server := range a.servers() {
		out, err := a.breakers[server].Execute(func() (any, error) {
			req, err := http.NewRequest(http.MethodGet, server+query, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("User-Agent", "Mozilla 5.0")
			resp, err := a.client.Do(req)
			if err != nil {
				return nil, fmt.Errorf("HTTP error: %v [%s]", err, server)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return nil, fmt.Errorf("incorrect response code %d from the server %s", resp.StatusCode, server)
			}
			var pairs []string
			if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
				return nil, fmt.Errorf("JSON error: %v [%s]", err, server)
			}
			return pairs, nil
		})
		if err != nil {
			lastErr = err
			continue
		}
		return out.([]string), nil
	}
	return nil, lastErr
}
