package yandex

import (
	"fmt"
	"html"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/quickdict/internal/service"
)

// Service is the Yandex dictionary descriptor.
type Service struct {
	*service.Base
	api   *API
	langs *Catalog
}

// New builds the descriptor. Options are read lazily so the service
// always sees current configuration; the access token comes from the
// obfuscated per-service password option, with the credential store as
// fallback.
func New(opts service.Options, secrets *service.Secrets, dataDir string, logger zerolog.Logger) *Service {
	token := func() string {
		if t := service.Decode(opts.ServiceString(ServiceName, "password")); t != "" {
			return t
		}
		return secrets.Get(ServiceName).DecodedPassword()
	}
	mirrorFirst := func() bool {
		return opts.ServiceBool(ServiceName, "mirror")
	}
	api := NewAPI(token, mirrorFirst, logger)
	return &Service{
		Base:  service.NewBase(0),
		api:   api,
		langs: NewCatalog(api, dataDir),
	}
}

func (s *Service) Name() string { return ServiceName }

func (s *Service) Summary() string { return "Yandex Dictionaries" }

func (s *Service) ConfSpec() map[string]any {
	return map[string]any{
		"username":    "",
		"password":    "",
		"mirror":      false,
		"switchsynth": false,
	}
}

func (s *Service) Languages() service.Catalog { return s.langs }

func (s *Service) NewTask(langFrom, langTo, text string) *service.Task {
	return service.NewTask(langFrom, langTo, text, s.run)
}

// run performs the lookup round-trip. All failures become data: the
// error message stands in for the dictionary body and Err is set.
func (s *Service) run(langFrom, langTo, text string) service.Result {
	resp, err := s.api.Lookup(langFrom, langTo, text)
	if err != nil {
		msg := err.Error()
		return service.Result{
			Err:       true,
			Plaintext: "- " + msg,
			HTML:      service.WrapHTML(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(msg))),
		}
	}
	parser := NewParser(resp)
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
