package cli

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/logging"
	"github.com/neonfuzz/palette-generator/internal/render"
	"github.com/neonfuzz/palette-generator/internal/theme"
)

var (
	renderColorFile   string
	renderPaletteFile string
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderColorFile, "color-file", "", "saved theme to render, .json form (default from config)")
	renderCmd.Flags().StringVar(&renderPaletteFile, "palette-file", "", "swatch sheet output path (default from config)")
}

var renderCmd = &cobra.Command{
	Use:   "render <image>",
	Short: "Render a theme as a swatch sheet over an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorFile := cfg.ColorFile
		if renderColorFile != "" {
			colorFile = renderColorFile
		}
		paletteFile := cfg.PaletteFile
		if renderPaletteFile != "" {
			paletteFile = renderPaletteFile
		}

		derived, err := theme.LoadFile(colorFile)
		if err != nil {
			return err
		}

		base, err := openImage(args[0])
		if err != nil {
			return err
		}

		if err := render.WriteSheetFile(paletteFile, base, derived, render.DefaultSheetOptions()); err != nil {
			return fmt.Errorf("render swatch sheet: %w", err)
		}
		logger := logging.Component("render")
		logger.Info().
			Str("palette_file", paletteFile).
			Msg("swatch sheet written")
		return nil
	},
}

func openImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
