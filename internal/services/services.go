// Package services wires the fixed list of dictionary backends into a
// registry. Adding a backend means adding its package and one line
// here; the registration is validated at compile time by the Descriptor
// interface.
package services

import (
	"github.com/rs/zerolog"

	"codeberg.org/snonux/quickdict/internal/service"
	"codeberg.org/snonux/quickdict/internal/services/gpt"
	"codeberg.org/snonux/quickdict/internal/services/lexicala"
	"codeberg.org/snonux/quickdict/internal/services/yandex"
)

// RegisterAll registers every built-in dictionary service. It is
// idempotent: repeated calls leave the registry unchanged.
func RegisterAll(
	reg *service.Registry,
	opts service.Options,
	secrets *service.Secrets,
	dataDir string,
	logger zerolog.Logger,
) {
	reg.Register(yandex.New(opts, secrets, dataDir, logger))
	reg.Register(lexicala.New(opts, secrets, dataDir, logger))
	reg.Register(gpt.New(opts, secrets, logger))
}
