package lexicala

import (
	"fmt"
	"html"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/quickdict/internal/service"
)

// Service is the Lexicala dictionary descriptor.
type Service struct {
	*service.Base
	api   *API
	langs *Catalog
	opts  service.Options
}

// New builds the descriptor. The RapidAPI key comes from the obfuscated
// per-service password option, with the credential store as fallback.
func New(opts service.Options, secrets *service.Secrets, dataDir string, logger zerolog.Logger) *Service {
	key := func() string {
		if k := service.Decode(opts.ServiceString(ServiceName, "password")); k != "" {
			return k
		}
		return secrets.Get(ServiceName).DecodedPassword()
	}
	api := NewAPI(key, logger)
	s := &Service{
		Base: service.NewBase(1),
		api:  api,
		opts: opts,
	}
	s.langs = NewCatalog(api, dataDir, s.source)
	return s
}

// source returns the configured source dictionary name.
func (s *Service) source() string {
	if src := s.opts.ServiceString(ServiceName, "source"); src != "" {
		return src
	}
	return "global"
}

func (s *Service) Name() string { return ServiceName }

func (s *Service) Summary() string { return "Lexicala Dictionaries" }

func (s *Service) ConfSpec() map[string]any {
	return map[string]any{
		"source":      "global",
		"password":    "",
		"switchsynth": false,
	}
}

func (s *Service) Languages() service.Catalog { return s.langs }

func (s *Service) NewTask(langFrom, langTo, text string) *service.Task {
	return service.NewTask(langFrom, langTo, text, s.run)
}

// run performs the search round-trip. Lexicala searches by source
// language only; the target language selects which translations the
// parser keeps.
func (s *Service) run(langFrom, langTo, text string) service.Result {
	resp, err := s.api.Search(s.source(), langFrom, text)
	if err != nil {
		msg := err.Error()
		return service.Result{
			Err:       true,
			Plaintext: "- " + msg,
			HTML:      service.WrapHTML(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(msg))),
		}
	}
	parser := NewParser(resp, langTo)
	body := parser.ToHTML()
	result := service.Result{
		Plaintext: parser.ToText(),
		HTML:      service.WrapHTML(body),
	}
	if errMsg, ok := resp["error"].(string); ok && errMsg != "" {
		result.Err = true
	}
	return result
}
