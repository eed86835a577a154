// Package extract reduces an image to a weighted color histogram: N
// representative colors with pixel counts, ready for theme derivation.
package extract

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
	"github.com/neonfuzz/palette-generator/internal/palette"
)

// Options controls color extraction.
type Options struct {
	// NColors is the target palette size.
	NColors int

	// MaxDimension caps the longer image edge before sampling; larger
	// images are downsampled by nearest neighbor. Zero disables.
	MaxDimension int

	// AlphaThreshold drops pixels whose 8-bit alpha is at or below it.
	AlphaThreshold int
}

// DefaultOptions mirrors the original extractor's defaults.
func DefaultOptions() Options {
	return Options{
		NColors:        512,
		MaxDimension:   512,
		AlphaThreshold: 16,
	}
}

func (o Options) normalized() Options {
	if o.NColors <= 0 {
		o.NColors = DefaultOptions().NColors
	}
	if o.MaxDimension < 0 {
		o.MaxDimension = 0
	}
	return o
}

// FromFile decodes an image file and extracts its histogram.
func FromFile(path string, opts Options) ([]palette.HistogramRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return FromImage(img, opts)
}

// FromImage quantizes an image to at most NColors colors by median cut
// and returns the histogram sorted by count descending. Identical
// quantized colors are merged.
func FromImage(img image.Image, opts Options) ([]palette.HistogramRow, error) {
	opts = opts.normalized()

	pixels := samplePixels(img, opts)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("image has no opaque pixels to sample")
	}

	boxes := medianCut(pixels, opts.NColors)

	counts := make(map[string]int, len(boxes))
	order := make([]string, 0, len(boxes))
	for _, box := range boxes {
		hex := box.average().Hex()
		if _, seen := counts[hex]; !seen {
			order = append(order, hex)
		}
		counts[hex] += len(box.pixels)
	}

	rows := make([]palette.HistogramRow, 0, len(order))
	for _, hex := range order {
		rows = append(rows, palette.HistogramRow{Count: counts[hex], Hex: hex})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return rows, nil
}

// samplePixels walks the (possibly downsampled) image and collects
// opaque RGB triples.
func samplePixels(img image.Image, opts Options) []colorspace.RGB {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	step := 1
	if opts.MaxDimension > 0 {
		longer := width
		if height > longer {
			longer = height
		}
		for longer/step > opts.MaxDimension {
			step++
		}
	}

	pixels := make([]colorspace.RGB, 0, (width/step+1)*(height/step+1))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			if int(a>>8) <= opts.AlphaThreshold {
				continue
			}
			pixels = append(pixels, colorspace.RGB{
				R: int(r >> 8),
				G: int(g >> 8),
				B: int(b >> 8),
			})
		}
	}
	return pixels
}

type box struct {
	pixels []colorspace.RGB
}

// channelRange returns the widest channel (0=R, 1=G, 2=B) and its span.
func (b box) channelRange() (channel, span int) {
	minC := [3]int{255, 255, 255}
	maxC := [3]int{}
	for _, p := range b.pixels {
		for i, v := range [3]int{p.R, p.G, p.B} {
			if v < minC[i] {
				minC[i] = v
			}
			if v > maxC[i] {
				maxC[i] = v
			}
		}
	}
	for i := 0; i < 3; i++ {
		if s := maxC[i] - minC[i]; s > span {
			channel, span = i, s
		}
	}
	return channel, span
}

func (b box) average() colorspace.RGB {
	var r, g, bl int
	for _, p := range b.pixels {
		r += p.R
		g += p.G
		bl += p.B
	}
	n := len(b.pixels)
	return colorspace.RGB{R: r / n, G: g / n, B: bl / n}
}

// medianCut splits the pixel population into at most n boxes, always
// splitting the box with the widest channel span at its median.
func medianCut(pixels []colorspace.RGB, n int) []box {
	boxes := []box{{pixels: pixels}}

	for len(boxes) < n {
		// Widest box first.
		widest, widestSpan := -1, 0
		var widestChannel int
		for i, b := range boxes {
			if len(b.pixels) < 2 {
				continue
			}
			channel, span := b.channelRange()
			if span > widestSpan {
				widest, widestSpan, widestChannel = i, span, channel
			}
		}
		if widest < 0 {
			break // nothing left to split
		}

		target := boxes[widest]
		sort.SliceStable(target.pixels, func(i, j int) bool {
			a, b := target.pixels[i], target.pixels[j]
			switch widestChannel {
			case 0:
				return a.R < b.R
			case 1:
				return a.G < b.G
			default:
				return a.B < b.B
			}
		})

		mid := len(target.pixels) / 2
		boxes[widest] = box{pixels: target.pixels[:mid]}
		boxes = append(boxes, box{pixels: target.pixels[mid:]})
	}
	return boxes
}
