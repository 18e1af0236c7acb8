// Package gpt implements a dictionary backend on top of the OpenAI
// chat completion API. It has no fixed article schema; the model is
// asked for a short dictionary-style entry for the word in the target
// language.
package gpt

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/quickdict/internal/service"
)

// ServiceName is the stable registry name of this backend.
const ServiceName = "gpt"

const requestTimeout = 30 * time.Second

// Service is the OpenAI-backed dictionary descriptor.
type Service struct {
	*service.Base
	opts    service.Options
	secrets *service.Secrets
	langs   *Catalog
	log     zerolog.Logger
}

// New builds the descriptor.
func New(opts service.Options, secrets *service.Secrets, logger zerolog.Logger) *Service {
	return &Service{
		Base:    service.NewBase(2),
		opts:    opts,
		secrets: secrets,
		langs:   NewCatalog(),
		log:     logger,
	}
}

func (s *Service) Name() string { return ServiceName }

func (s *Service) Summary() string { return "OpenAI Dictionary" }

func (s *Service) ConfSpec() map[string]any {
	return map[string]any{
		"model":       openai.GPT4oMini,
		"password":    "",
		"switchsynth": false,
	}
}

func (s *Service) Languages() service.Catalog { return s.langs }

func (s *Service) NewTask(langFrom, langTo, text string) *service.Task {
	return service.NewTask(langFrom, langTo, text, s.run)
}

func (s *Service) apiKey() string {
	if k := service.Decode(s.opts.ServiceString(ServiceName, "password")); k != "" {
		return k
	}
	return s.secrets.Get(ServiceName).DecodedPassword()
}

func (s *Service) run(langFrom, langTo, text string) service.Result {
	key := s.apiKey()
	if key == "" {
		return errorResult("OpenAI API key not configured")
	}

	model := s.opts.ServiceString(ServiceName, "model")
	if model == "" {
		model = openai.GPT4oMini
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	client := openai.NewClient(key)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You are a bilingual dictionary. Answer with a short " +
					"dictionary entry only: translations first, then common " +
					"meanings and one or two usage examples. If the word is " +
					"unknown, answer with an empty string.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"Dictionary entry for %q, from language %q into language %q.",
					text, service.Lang(langFrom).Name(), service.Lang(langTo).Name()),
			},
		},
		MaxTokens:   500,
		Temperature: 0.3,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("OpenAI API error: %v", err))
	}
	if len(resp.Choices) == 0 {
		return service.Result{}
	}

	entry := strings.TrimSpace(resp.Choices[0].Message.Content)
	if entry == "" {
		return service.Result{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(text))
	for _, line := range strings.Split(entry, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(line))
		}
	}
	return service.Result{
		Plaintext: fmt.Sprintf("- %s\r\n%s", text, entry),
		HTML:      service.WrapHTML(b.String()),
	}
}

func errorResult(msg string) service.Result {
	return service.Result{
		Err:       true,
		Plaintext: "- " + msg,
		HTML:      service.WrapHTML(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(msg))),
	}
}
