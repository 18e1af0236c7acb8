package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/quickdict/internal"
	"codeberg.org/snonux/quickdict/internal/batch"
	"codeberg.org/snonux/quickdict/internal/cache"
	"codeberg.org/snonux/quickdict/internal/cli"
	"codeberg.org/snonux/quickdict/internal/config"
	"codeberg.org/snonux/quickdict/internal/host"
	"codeberg.org/snonux/quickdict/internal/logging"
	"codeberg.org/snonux/quickdict/internal/service"
	"codeberg.org/snonux/quickdict/internal/services"
	"codeberg.org/snonux/quickdict/internal/speech"
	"codeberg.org/snonux/quickdict/internal/synthesizers"
	"codeberg.org/snonux/quickdict/internal/translate"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runLookup(cmd, args, flags)
	}
	rootCmd.AddCommand(
		servicesCommand(flags),
		languagesCommand(flags),
		profilesCommand(flags),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the explicitly constructed engine objects; nothing in the
// engine is ambient global state.
type app struct {
	cfg          *config.Config
	registry     *service.Registry
	orchestrator *translate.Orchestrator
	profiles     *synthesizers.Profiles
	console      *host.Console
	log          zerolog.Logger
}

func newApp(flags *cli.Flags) (*app, error) {
	logger := logging.New(flags.LogLevel, flags.LogFile)
	cfg := config.Init(flags.CfgFile, logger)

	dataDir, err := config.DataDir()
	if err != nil {
		return nil, err
	}
	secrets := service.NewSecrets(filepath.Join(dataDir, "credentials.json"))

	registry := service.NewRegistry()
	services.RegisterAll(registry, cfg, secrets, dataDir, logger)
	cfg.SeedDefaults(registry)

	if flags.Service != "" {
		if registry.Lookup(flags.Service) == nil {
			return nil, fmt.Errorf("unknown dictionary service: %s", flags.Service)
		}
		cfg.SetActive(flags.Service)
	}
	from, into := cfg.From(), cfg.Into()
	if flags.From != "" {
		from = flags.From
	}
	if flags.Into != "" {
		into = flags.Into
	}
	cfg.SetPair(from, into)
	if flags.AutoSwap {
		cfg.SetAutoSwap(true)
	}

	console := host.NewConsole(os.Stdout)
	profiles := synthesizers.NewProfiles(console, filepath.Join(dataDir, "profiles.json"), logger)
	dispatcher := speech.NewDispatcher(profiles, console, console, cfg, speech.NewDetector(), logger)
	lookupCache := cache.New(cfg.CacheSize(), console)
	cfg.Watch(lookupCache.Clear)
	orchestrator := translate.New(cfg, registry, lookupCache, dispatcher, console, console, logger)

	return &app{
		cfg:          cfg,
		registry:     registry,
		orchestrator: orchestrator,
		profiles:     profiles,
		console:      console,
		log:          logger,
	}, nil
}

func runLookup(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	a, err := newApp(flags)
	if err != nil {
		return err
	}

	if flags.BatchFile != "" {
		words, err := batch.ReadWordList(flags.BatchFile)
		if err != nil {
			return err
		}
		for _, word := range words {
			a.orchestrator.Lookup(word, flags.HTML)
		}
		return nil
	}

	if len(args) == 0 {
		return cmd.Help()
	}
	text := internal.CleanText(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("nothing to look up")
	}
	a.orchestrator.Lookup(text, flags.HTML)
	return nil
}

func servicesCommand(flags *cli.Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List the registered dictionary services",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			for _, d := range a.registry.All() {
				marker := " "
				if d.Name() == a.cfg.Active() {
					marker = "*"
				}
				fmt.Printf("%s %d. %s - %s\n", marker, d.ID()+1, d.Name(), d.Summary())
			}
			return nil
		},
	}
}

func languagesCommand(flags *cli.Flags) *cobra.Command {
	var update bool
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "Show the active service's available languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			active := a.registry.Lookup(a.cfg.Active())
			if active == nil {
				return fmt.Errorf("active dictionary service is not registered")
			}
			langs := active.Languages()
			if update {
				if !langs.Update() {
					return fmt.Errorf("failed to update the language list for %s", active.Name())
				}
				fmt.Println("Language list updated")
			}
			for _, lang := range langs.FromList() {
				var into []string
				for _, target := range langs.IntoList(lang.Code()) {
					into = append(into, target.Code())
				}
				fmt.Printf("%s (%s) -> %s\n", lang.Code(), lang.Name(), strings.Join(into, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&update, "update", false, "Refresh the list from the service first")
	return cmd
}

func profilesCommand(flags *cli.Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage voice synthesizer profiles",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the saved synthesizer profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			slots := a.profiles.Iterate()
			if len(slots) == 0 {
				fmt.Println("No profiles saved")
				return nil
			}
			for _, s := range slots {
				line := fmt.Sprintf("%d. %s", s.Number, s.Profile.Title())
				if s.Profile.Lang != "" {
					line += fmt.Sprintf(" (%s)", service.Lang(s.Profile.Lang).Name())
				}
				fmt.Println(line)
			}
			return nil
		},
	})

	var lang string
	save := &cobra.Command{
		Use:   "save <slot>",
		Short: "Capture the current synthesizer into a slot (1-9)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			prof := a.profiles.Capture(slot, lang)
			if err := a.profiles.Save(); err != nil {
				return err
			}
			fmt.Printf("Saved %s to slot %d\n", prof.Title(), slot)
			return nil
		},
	}
	save.Flags().StringVar(&lang, "lang", "", "Associate the profile with a language code")
	cmd.AddCommand(save)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <slot>",
		Short: "Delete the profile in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			if !a.profiles.Remove(slot) {
				return fmt.Errorf("slot %d is empty", slot)
			}
			if err := a.profiles.Save(); err != nil {
				return err
			}
			fmt.Printf("Removed profile from slot %d\n", slot)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply <slot>",
		Short: "Switch the synthesizer to the profile in a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			if !a.profiles.Apply(slot) {
				return fmt.Errorf("failed to switch to the profile in slot %d", slot)
			}
			fmt.Printf("Switched to %s\n", a.profiles.Get(slot).Title())
			return nil
		},
	})

	return cmd
}

func parseSlot(arg string) (int, error) {
	slot, err := strconv.Atoi(arg)
	if err != nil || slot < 1 || slot > 9 {
		return 0, fmt.Errorf("slot must be a number from 1 to 9")
	}
	return slot, nil
}
