package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"codeberg.org/snonux/quickdict/internal"
)

// flagAliases maps alternative flag spellings to their canonical names.
var flagAliases = map[string]string{
	"auto-swap": "autoswap",
	"source":    "from",
	"target":    "into",
}

func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// CreateRootCommand creates and configures the root cobra command.
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quickdict [word or phrase]",
		Short: "Quick online dictionary lookups with speech-friendly output",
		Long: `quickdict looks a word or phrase up in a pluggable set of online
dictionary services and prints the entry the way a screen reader would
announce it.

Examples:
  quickdict apple                    # look "apple" up with the configured pair
  quickdict --from en --into fr pomme
  quickdict --batch words.txt        # look up every word from a file
  quickdict services                 # list the registered dictionary services
  quickdict languages --update       # refresh the active service's languages`,
		Args:    cobra.ArbitraryArgs,
		Version: internal.Version,
	}

	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
	setupFlags(rootCmd, flags)
	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.quickdict.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&flags.LogFile, "log-file", "", "Also write JSON logs to this rotated file")
	cmd.PersistentFlags().StringVarP(&flags.Service, "service", "s", "", "Dictionary service to use (overrides config)")

	cmd.Flags().StringVar(&flags.From, "from", "", "Source language code (overrides config)")
	cmd.Flags().StringVar(&flags.Into, "into", "", "Target language code (overrides config)")
	cmd.Flags().BoolVar(&flags.AutoSwap, "autoswap", false, "Retry with the pair reversed when there is no entry")
	cmd.Flags().BoolVar(&flags.HTML, "html", false, "Show the entry as an HTML document instead of announcing it")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Look up words from file (one per line)")
}
