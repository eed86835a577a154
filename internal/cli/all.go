package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/db"
	"github.com/neonfuzz/palette-generator/internal/extract"
	"github.com/neonfuzz/palette-generator/internal/logging"
	"github.com/neonfuzz/palette-generator/internal/palette"
	"github.com/neonfuzz/palette-generator/internal/render"
	"github.com/neonfuzz/palette-generator/internal/theme"
)

var allNoRecord bool

func init() {
	rootCmd.AddCommand(allCmd)
	allCmd.Flags().Float64VarP(&themePMix, "p-mix", "p", 0, "fraction of pure color mixed into image colors (default from config)")
	allCmd.Flags().IntVarP(&extractNColors, "n-colors", "n", 0, "number of colors to extract (default from config)")
	allCmd.Flags().StringVar(&themeHistFile, "hist-file", "", "histogram output path (default from config)")
	allCmd.Flags().StringVar(&themeColorFile, "color-file", "", "theme output path (default from config)")
	allCmd.Flags().StringVar(&renderPaletteFile, "palette-file", "", "swatch sheet output path (default from config)")
	allCmd.Flags().BoolVar(&allNoRecord, "no-record", false, "skip recording the run in the local database")
}

var allCmd = &cobra.Command{
	Use:   "all <image>",
	Short: "Extract, derive and render in one pass",
	Long:  "Run the full pipeline: quantize the image, derive the 12-color theme, write the histogram, theme and swatch sheet, and record the run.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.Component("all")
		imagePath := args[0]

		nColors := cfg.NColors
		if cmd.Flags().Changed("n-colors") {
			nColors = extractNColors
		}
		pMix := cfg.PMix
		if cmd.Flags().Changed("p-mix") {
			pMix = themePMix
		}
		histFile := cfg.HistFile
		if themeHistFile != "" {
			histFile = themeHistFile
		}
		colorFile := cfg.ColorFile
		if themeColorFile != "" {
			colorFile = themeColorFile
		}
		paletteFile := cfg.PaletteFile
		if renderPaletteFile != "" {
			paletteFile = renderPaletteFile
		}

		opts := extract.DefaultOptions()
		opts.NColors = nColors
		rows, err := extract.FromFile(imagePath, opts)
		if err != nil {
			return fmt.Errorf("extract colors: %w", err)
		}
		if err := palette.WriteHistogramFile(histFile, rows); err != nil {
			return err
		}

		table, err := palette.New(rows)
		if err != nil {
			return err
		}
		deriver, err := theme.NewDeriver(table, pMix)
		if err != nil {
			return err
		}
		derived, err := deriver.Derive()
		if err != nil {
			return fmt.Errorf("derive theme: %w", err)
		}
		if err := derived.SaveFile(colorFile); err != nil {
			return err
		}

		base, err := openImage(imagePath)
		if err != nil {
			return err
		}
		if err := render.WriteSheetFile(paletteFile, base, derived, render.DefaultSheetOptions()); err != nil {
			return fmt.Errorf("render swatch sheet: %w", err)
		}

		if !allNoRecord {
			if err := recordRun(cmd.Context(), imagePath, pMix, nColors, rows, derived); err != nil {
				return err
			}
		}

		logger.Info().
			Str("image", imagePath).
			Str("hist_file", histFile).
			Str("color_file", colorFile).
			Str("palette_file", paletteFile).
			Msg("pipeline complete")

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, derived)
		}
		if hasTTY() {
			fmt.Print(render.Preview(derived))
		}
		return nil
	},
}

func recordRun(ctx context.Context, source string, pMix float64, nColors int, rows []palette.HistogramRow, derived theme.Theme) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	colors := make(map[string]string, len(derived.Names()))
	for _, name := range derived.Names() {
		hex, _ := derived.Hex(name)
		colors[string(name)] = hex
	}

	run := &db.Run{
		SourcePath: source,
		PMix:       pMix,
		NColors:    nColors,
		Histogram:  rows,
		Theme:      colors,
	}
	if err := db.NewRunRepository(database).Create(ctx, run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	logger := logging.Component("all")
	logger.Debug().Str("run_id", run.ID).Msg("run recorded")
	return nil
}
