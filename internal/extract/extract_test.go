package extract

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testImage paints a 20x20 image: 3/4 gray, 3/16 red, 1/16 green.
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{0x80, 0x80, 0x80, 0xFF}
			switch {
			case y >= 15 && x >= 5:
				c = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
			case y >= 15:
				c = color.RGBA{0x00, 0xFF, 0x00, 0xFF}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageCountsDominantColors(t *testing.T) {
	rows, err := FromImage(testImage(), Options{NColors: 8})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "#808080", rows[0].Hex)
	require.Equal(t, 300, rows[0].Count)
	require.Equal(t, "#FF0000", rows[1].Hex)
	require.Equal(t, 75, rows[1].Count)
	require.Equal(t, "#00FF00", rows[2].Hex)
	require.Equal(t, 25, rows[2].Count)
}

func TestFromImageMergesWhenFewerColorsExist(t *testing.T) {
	// Asking for more colors than the image has must not pad: boxes
	// with zero span cannot split further.
	rows, err := FromImage(testImage(), Options{NColors: 64})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	total := 0
	for _, row := range rows {
		total += row.Count
	}
	require.Equal(t, 400, total)
}

func TestFromImageUniformColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{0x12, 0x34, 0x56, 0xFF})
		}
	}

	rows, err := FromImage(img, Options{NColors: 8})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "#123456", rows[0].Hex)
	require.Equal(t, 16, rows[0].Count)
}

func TestFromImageSkipsTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{0xFF, 0x00, 0x00, 0xFF})
	img.Set(1, 0, color.RGBA{0x00, 0xFF, 0x00, 0x00})
	img.Set(0, 1, color.RGBA{0x00, 0xFF, 0x00, 0x00})
	img.Set(1, 1, color.RGBA{0x00, 0xFF, 0x00, 0x00})

	rows, err := FromImage(img, Options{NColors: 4})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "#FF0000", rows[0].Hex)
}

func TestFromImageAllTransparentFails(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	_, err := FromImage(img, Options{NColors: 4})
	require.Error(t, err)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, testImage()))
	require.NoError(t, file.Close())

	rows, err := FromFile(path, DefaultOptions())
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, "#808080", rows[0].Hex)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"), DefaultOptions())
	require.Error(t, err)
}

func TestDownsamplingCapsWork(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{0x80, 0x80, 0x80, 0xFF})
		}
	}

	rows, err := FromImage(img, Options{NColors: 4, MaxDimension: 16})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Step 4 in both axes: 16x16 samples.
	require.Equal(t, 256, rows[0].Count)
}
