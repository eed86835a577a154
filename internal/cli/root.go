// Package cli implements the palgen command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/config"
	"github.com/neonfuzz/palette-generator/internal/logging"
)

var (
	cfgFile      string
	jsonOutput   bool
	flagLogLevel string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "palgen",
	Short: "Derive a labeled color theme from an image",
	Long: "Palgen reduces an image to a weighted color histogram and derives a " +
		"cohesive 12-color theme from it: foreground, background, accent, " +
		"secondary, and eight hue-anchored colors.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, _, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = flagLogLevel
		}
		logging.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/palgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON on stdout")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration. Only valid after the root
// command's PersistentPreRunE has run.
func GetConfig() *config.Config {
	return cfg
}
