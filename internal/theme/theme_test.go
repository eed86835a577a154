package theme

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixedTheme(overrides map[Name]string) Theme {
	colors := make(map[Name]string, len(PublishedNames))
	for i, name := range PublishedNames {
		colors[name] = []string{
			"#E50000", "#FFFF14", "#15B01A", "#13EAC9", "#0343DF",
			"#FF028D", "#FFFFFF", "#000000", "#EEEEEE", "#111111",
			"#FF8800", "#0088FF",
		}[i]
	}
	for name, hex := range overrides {
		colors[name] = hex
	}
	return Theme{names: PublishedNames, colors: colors}
}

func TestWriteJSONKeepsOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixedTheme(nil).WriteJSON(&buf))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, `{"red":"#E50000","yellow":`))
	require.Less(t, strings.Index(out, `"fg"`), strings.Index(out, `"bg"`))

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 12)
	require.Equal(t, "#FF8800", decoded["accent"])
}

func TestWriteLinesDeduplicates(t *testing.T) {
	// fg resolves to the same hex as one of the hue colors: the line
	// export must contain that hex exactly once.
	themed := fixedTheme(map[Name]string{NameFg: "#FFFF14"})

	var buf bytes.Buffer
	require.NoError(t, themed.WriteLines(&buf))

	lines := strings.Fields(buf.String())
	require.Len(t, lines, 11)

	occurrences := 0
	for _, line := range lines {
		if line == "#FFFF14" {
			occurrences++
		}
	}
	require.Equal(t, 1, occurrences)
}

func TestWriteLinesStableOrder(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, fixedTheme(nil).WriteLines(&first))
	require.NoError(t, fixedTheme(nil).WriteLines(&second))
	require.Equal(t, first.String(), second.String())
}

func TestSaveFilePicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "colors.json")
	require.NoError(t, fixedTheme(nil).SaveFile(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 12)

	txtPath := filepath.Join(dir, "colors.txt")
	require.NoError(t, fixedTheme(nil).SaveFile(txtPath))
	data, err = os.ReadFile(txtPath)
	require.NoError(t, err)
	require.Len(t, strings.Fields(string(data)), 12)
	require.False(t, strings.Contains(string(data), "{"))
}
