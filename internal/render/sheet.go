// Package render turns a derived theme into visual output: a swatch
// sheet overlaid on the source image, and a truecolor terminal preview.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
	"github.com/neonfuzz/palette-generator/internal/theme"
)

// SheetOptions controls swatch-sheet layout.
type SheetOptions struct {
	// SwatchWidth is the swatch width in pixels.
	SwatchWidth int

	// Margin is the gap between swatches and from the image edge.
	Margin int

	// CornerRadius rounds the swatch corners. Zero draws sharp corners.
	CornerRadius int
}

// DefaultSheetOptions mirrors the original tool's proportions.
func DefaultSheetOptions() SheetOptions {
	return SheetOptions{SwatchWidth: 180, Margin: 10, CornerRadius: 8}
}

// Sheet draws the theme's twelve swatches down the left and right
// margins of the base image: six per side, in published-name order,
// left column first. Each swatch carries its hex code as a label, in
// black or white text for contrast. The base image is not modified.
func Sheet(base image.Image, derived theme.Theme, opts SheetOptions) (*image.RGBA, error) {
	if opts.SwatchWidth <= 0 || opts.Margin < 0 {
		return nil, fmt.Errorf("invalid sheet options: width %d, margin %d", opts.SwatchWidth, opts.Margin)
	}

	bounds := base.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), base, bounds.Min, draw.Src)

	names := derived.Names()
	perSide := (len(names) + 1) / 2
	swatchHeight := (bounds.Dy() - (perSide+1)*opts.Margin) / perSide
	if swatchHeight < 1 {
		return nil, fmt.Errorf("image too small for %d swatches: height %d", len(names), bounds.Dy())
	}
	if opts.SwatchWidth*2+opts.Margin*2 > bounds.Dx() {
		return nil, fmt.Errorf("image too narrow for swatch width %d", opts.SwatchWidth)
	}

	for i, name := range names {
		hex, _ := derived.Hex(name)
		rgb, err := colorspace.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("theme color %s: %w", name, err)
		}

		column := i / perSide
		row := i % perSide
		x := opts.Margin
		if column == 1 {
			x = bounds.Dx() - opts.Margin - opts.SwatchWidth
		}
		y := opts.Margin + row*(swatchHeight+opts.Margin)

		swatch := image.Rect(x, y, x+opts.SwatchWidth, y+swatchHeight)
		fillRoundedRect(out, swatch, opts.CornerRadius, color.RGBA{
			R: uint8(rgb.R),
			G: uint8(rgb.G),
			B: uint8(rgb.B),
			A: 0xFF,
		})
		drawLabel(out, swatch, hex)
	}
	return out, nil
}

// fillRoundedRect fills r with c, skipping pixels outside the corner
// circles of the given radius.
func fillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if insideRounded(x, y, r, radius) {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

func insideRounded(x, y int, r image.Rectangle, radius int) bool {
	if radius <= 0 {
		return true
	}

	var cx, cy int
	switch {
	case x < r.Min.X+radius && y < r.Min.Y+radius:
		cx, cy = r.Min.X+radius, r.Min.Y+radius
	case x >= r.Max.X-radius && y < r.Min.Y+radius:
		cx, cy = r.Max.X-radius-1, r.Min.Y+radius
	case x < r.Min.X+radius && y >= r.Max.Y-radius:
		cx, cy = r.Min.X+radius, r.Max.Y-radius-1
	case x >= r.Max.X-radius && y >= r.Max.Y-radius:
		cx, cy = r.Max.X-radius-1, r.Max.Y-radius-1
	default:
		return true
	}

	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= radius*radius
}

// drawLabel writes the hex code along the swatch's bottom edge.
func drawLabel(dst *image.RGBA, swatch image.Rectangle, hex string) {
	text, err := colorspace.ParseHex(labelColor(hex))
	if err != nil {
		return
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst: dst,
		Src: image.NewUniform(color.RGBA{
			R: uint8(text.R),
			G: uint8(text.G),
			B: uint8(text.B),
			A: 0xFF,
		}),
		Face: face,
		Dot:  fixed.P(swatch.Min.X+6, swatch.Max.Y-6),
	}
	if drawer.MeasureString(hex).Ceil() > swatch.Dx()-12 {
		return // swatch too narrow for a legible label
	}
	drawer.DrawString(hex)
}

// WriteSheetFile renders the sheet and writes it as PNG.
func WriteSheetFile(path string, base image.Image, derived theme.Theme, opts SheetOptions) error {
	sheet, err := Sheet(base, derived, opts)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create palette file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, sheet); err != nil {
		return fmt.Errorf("encode palette png: %w", err)
	}
	return nil
}
