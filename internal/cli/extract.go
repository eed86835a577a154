package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/extract"
	"github.com/neonfuzz/palette-generator/internal/logging"
	"github.com/neonfuzz/palette-generator/internal/palette"
)

var (
	extractNColors  int
	extractHistFile string
)

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().IntVarP(&extractNColors, "n-colors", "n", 0, "number of colors to extract (default from config)")
	extractCmd.Flags().StringVar(&extractHistFile, "hist-file", "", "histogram output path (default from config)")
}

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Extract a color histogram from an image",
	Long:  "Quantize an image down to a fixed number of representative colors and save their pixel counts as a histogram.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Component("extract")

		nColors := cfg.NColors
		if cmd.Flags().Changed("n-colors") {
			nColors = extractNColors
		}
		histFile := cfg.HistFile
		if extractHistFile != "" {
			histFile = extractHistFile
		}

		opts := extract.DefaultOptions()
		opts.NColors = nColors

		rows, err := extract.FromFile(args[0], opts)
		if err != nil {
			return fmt.Errorf("extract colors: %w", err)
		}

		if err := palette.WriteHistogramFile(histFile, rows); err != nil {
			return err
		}
		logger.Info().
			Str("image", args[0]).
			Int("colors", len(rows)).
			Str("hist_file", histFile).
			Msg("histogram written")

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, rows)
		}
		return nil
	},
}
