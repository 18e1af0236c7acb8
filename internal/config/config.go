// Package config wraps viper access to the add-on configuration: the
// global lookup options, the per-service option maps seeded from each
// descriptor's configuration schema, and the fingerprint that ties
// cached lookups to the option values they were produced under.
package config

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/quickdict/internal/service"
)

// Config is the explicitly constructed configuration object passed to
// the orchestrator and speech dispatch.
type Config struct {
	v   *viper.Viper
	log zerolog.Logger
}

// Init sets up viper configuration. When cfgFile is empty the config is
// searched as .quickdict.yaml in the home directory and the working
// directory; QUICKDICT_* environment variables override file values.
func Init(cfgFile string, logger zerolog.Logger) *Config {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".quickdict")
	}

	v.SetEnvPrefix("QUICKDICT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err == nil {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}
	return &Config{v: v, log: logger}
}

// SeedDefaults installs the global defaults and every registered
// service's option defaults.
func (c *Config) SeedDefaults(reg *service.Registry) {
	c.v.SetDefault("autoswap", false)
	c.v.SetDefault("copytoclip", false)
	c.v.SetDefault("cache_size", 64)
	c.v.SetDefault("speech.auto_language_switching", true)
	if first := reg.First(); first != nil {
		c.v.SetDefault("service", first.Name())
		langs := first.Languages()
		c.v.SetDefault("from", langs.DefaultFrom().Code())
		c.v.SetDefault("into", langs.DefaultInto().Code())
	}
	for _, d := range reg.All() {
		for key, def := range d.ConfSpec() {
			c.v.SetDefault("services."+d.Name()+"."+key, def)
		}
	}
}

// Active returns the name of the active dictionary service.
func (c *Config) Active() string { return c.v.GetString("service") }

// SetActive switches the active dictionary service.
func (c *Config) SetActive(name string) { c.v.Set("service", name) }

// From returns the source language code.
func (c *Config) From() string { return c.v.GetString("from") }

// Into returns the target language code.
func (c *Config) Into() string { return c.v.GetString("into") }

// SetPair sets the source and target language codes.
func (c *Config) SetPair(from, into string) {
	c.v.Set("from", from)
	c.v.Set("into", into)
}

// AutoSwap reports whether a lookup retries with the language pair
// reversed when the forward pair yields nothing.
func (c *Config) AutoSwap() bool { return c.v.GetBool("autoswap") }

// SetAutoSwap toggles the auto-swap policy.
func (c *Config) SetAutoSwap(on bool) { c.v.Set("autoswap", on) }

// CopyToClip reports whether results are copied to the clipboard.
func (c *Config) CopyToClip() bool { return c.v.GetBool("copytoclip") }

// SetCopyToClip toggles the copy-to-clipboard policy.
func (c *Config) SetCopyToClip(on bool) { c.v.Set("copytoclip", on) }

// CacheSize returns the lookup cache capacity.
func (c *Config) CacheSize() int { return c.v.GetInt("cache_size") }

// SwitchSynth reports whether the active service wants the synthesizer
// switched to the result language.
func (c *Config) SwitchSynth() bool {
	return c.ServiceBool(c.Active(), "switchsynth")
}

// AutoLanguageSwitching mirrors the host speech option for
// per-utterance voice accent switching.
func (c *Config) AutoLanguageSwitching() bool {
	return c.v.GetBool("speech.auto_language_switching")
}

// ServiceOption returns a service option value.
func (c *Config) ServiceOption(svc, key string) any {
	return c.v.Get("services." + svc + "." + key)
}

// ServiceString returns a service option as a string.
func (c *Config) ServiceString(svc, key string) string {
	return c.v.GetString("services." + svc + "." + key)
}

// ServiceBool returns a service option as a bool.
func (c *Config) ServiceBool(svc, key string) bool {
	return c.v.GetBool("services." + svc + "." + key)
}

// Fingerprint hashes every resolved option value of the service, so a
// change to any option, not just the language pair, misses the lookup
// cache.
func (c *Config) Fingerprint(d service.Descriptor) uint64 {
	h := fnv.New64a()
	h.Write([]byte(d.Name()))
	keys := make([]string, 0, len(d.ConfSpec()))
	for key := range d.ConfSpec() {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(h, "|%s=%v", key, c.ServiceOption(d.Name(), key))
	}
	return h.Sum64()
}

// Watch reloads the configuration when the file changes on disk.
func (c *Config) Watch(onChange func()) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		c.log.Info().Str("file", e.Name).Msg("config file changed, reloading")
		if onChange != nil {
			onChange()
		}
	})
	c.v.WatchConfig()
}

// Save writes the current settings back to the config file, creating
// .quickdict.yaml in the home directory when none was loaded.
func (c *Config) Save() error {
	if c.v.ConfigFileUsed() != "" {
		return c.v.WriteConfig()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return c.v.WriteConfigAs(filepath.Join(home, ".quickdict.yaml"))
}

// DataDir returns the directory for persisted engine state (profile
// container, language catalogs), creating it when missing.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".local", "state", "quickdict")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}
