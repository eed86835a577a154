package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestAssets creates a small image and a config file pointing every
// output into the test's temp dir.
func writeTestAssets(t *testing.T) (configPath, imagePath, dir string) {
	t.Helper()
	dir = t.TempDir()

	imagePath = filepath.Join(dir, "source.png")
	img := image.NewRGBA(image.Rect(0, 0, 600, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 600; x++ {
			c := color.RGBA{0x40, 0x40, 0x40, 0xFF}
			if y > 300 {
				c = color.RGBA{0xD0, 0x30, 0x30, 0xFF}
			}
			img.Set(x, y, c)
		}
	}
	file, err := os.Create(imagePath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())

	configPath = filepath.Join(dir, "config.yaml")
	configBody := fmt.Sprintf(
		"p_mix: 0.25\nn_colors: 16\nhist_file: %s\ncolor_file: %s\npalette_file: %s\ndb_path: %s\nlog_level: error\n",
		filepath.Join(dir, "color_hist.txt"),
		filepath.Join(dir, "colors.json"),
		filepath.Join(dir, "palette.png"),
		filepath.Join(dir, "palgen.db"),
	)
	require.NoError(t, os.WriteFile(configPath, []byte(configBody), 0o644))
	return configPath, imagePath, dir
}

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestExtractThenThemePipeline(t *testing.T) {
	configPath, imagePath, dir := writeTestAssets(t)

	require.NoError(t, runCommand(t, "--config", configPath, "extract", imagePath))
	require.FileExists(t, filepath.Join(dir, "color_hist.txt"))

	require.NoError(t, runCommand(t, "--config", configPath, "theme"))

	data, err := os.ReadFile(filepath.Join(dir, "colors.json"))
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 12)
	for _, name := range themeNameOrder {
		require.Contains(t, decoded, name)
	}

	require.NoError(t, runCommand(t, "--config", configPath, "render", imagePath))
	require.FileExists(t, filepath.Join(dir, "palette.png"))
}

func TestAllPipelineRecordsRun(t *testing.T) {
	configPath, imagePath, dir := writeTestAssets(t)

	require.NoError(t, runCommand(t, "--config", configPath, "all", imagePath))
	require.FileExists(t, filepath.Join(dir, "color_hist.txt"))
	require.FileExists(t, filepath.Join(dir, "colors.json"))
	require.FileExists(t, filepath.Join(dir, "palette.png"))
	require.FileExists(t, filepath.Join(dir, "palgen.db"))

	require.NoError(t, runCommand(t, "--config", configPath, "runs", "list"))
}

func TestAllPipelineNoRecord(t *testing.T) {
	configPath, imagePath, dir := writeTestAssets(t)

	require.NoError(t, runCommand(t, "--config", configPath, "all", imagePath, "--no-record"))
	require.NoFileExists(t, filepath.Join(dir, "palgen.db"))
}

func TestThemeFailsOnMissingHistogram(t *testing.T) {
	configPath, _, _ := writeTestAssets(t)
	require.Error(t, runCommand(t, "--config", configPath, "theme"))
}

func TestExtractRequiresImageArgument(t *testing.T) {
	configPath, _, _ := writeTestAssets(t)
	require.Error(t, runCommand(t, "--config", configPath, "extract"))
}
