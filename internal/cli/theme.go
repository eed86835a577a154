package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/logging"
	"github.com/neonfuzz/palette-generator/internal/palette"
	"github.com/neonfuzz/palette-generator/internal/render"
	"github.com/neonfuzz/palette-generator/internal/theme"
)

var (
	themePMix      float64
	themeHistFile  string
	themeColorFile string
)

func init() {
	rootCmd.AddCommand(themeCmd)
	themeCmd.Flags().Float64VarP(&themePMix, "p-mix", "p", 0, "fraction of pure color mixed into image colors, 0.0-0.5 recommended (default from config)")
	themeCmd.Flags().StringVar(&themeHistFile, "hist-file", "", "histogram input path (default from config)")
	themeCmd.Flags().StringVar(&themeColorFile, "color-file", "", "theme output path; .json keeps names, other extensions get one hex per line (default from config)")
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Derive a 12-color theme from a histogram",
	Long: "Read a color histogram and derive a cohesive 12-color theme. " +
		"Higher --p-mix pulls hue colors toward their canonical values, which " +
		"suits visually homogeneous images; use 0 for colors true to the image.",
	RunE: func(cmd *cobra.Command, args []string) error {
		derived, err := deriveTheme(cmd)
		if err != nil {
			return err
		}

		colorFile := cfg.ColorFile
		if themeColorFile != "" {
			colorFile = themeColorFile
		}
		if err := derived.SaveFile(colorFile); err != nil {
			return err
		}
		logger := logging.Component("theme")
		logger.Info().
			Str("color_file", colorFile).
			Msg("theme written")

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, derived)
		}
		if hasTTY() {
			fmt.Print(render.Preview(derived))
		}
		return nil
	},
}

// deriveTheme runs histogram -> table -> deriver with the effective
// p-mix for the current invocation.
func deriveTheme(cmd *cobra.Command) (theme.Theme, error) {
	histFile := cfg.HistFile
	if themeHistFile != "" {
		histFile = themeHistFile
	}
	pMix := cfg.PMix
	if cmd.Flags().Changed("p-mix") {
		pMix = themePMix
	}

	rows, err := palette.ReadHistogramFile(histFile)
	if err != nil {
		return theme.Theme{}, err
	}
	table, err := palette.New(rows)
	if err != nil {
		return theme.Theme{}, err
	}
	deriver, err := theme.NewDeriver(table, pMix)
	if err != nil {
		return theme.Theme{}, err
	}
	derived, err := deriver.Derive()
	if err != nil {
		return theme.Theme{}, fmt.Errorf("derive theme: %w", err)
	}
	return derived, nil
}
