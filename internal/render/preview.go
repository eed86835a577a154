package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
	"github.com/neonfuzz/palette-generator/internal/theme"
)

const previewBlockWidth = 10

// Preview renders the theme as labeled truecolor blocks for terminal
// display. Label text flips between black and white for contrast with
// each swatch.
func Preview(derived theme.Theme) string {
	var b strings.Builder
	for _, name := range derived.Names() {
		hex, _ := derived.Hex(name)

		label := fmt.Sprintf(" %-9s", name)
		block := lipgloss.NewStyle().
			Background(lipgloss.Color(hex)).
			Foreground(lipgloss.Color(labelColor(hex))).
			Width(previewBlockWidth).
			Render(" " + hex)

		b.WriteString(label)
		b.WriteString(block)
		b.WriteByte('\n')
	}
	return b.String()
}

// labelColor picks black or white text for readability on hex.
func labelColor(hex string) string {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil {
		return "#FFFFFF"
	}
	if rgb.XYZ().LUV().L > 50 {
		return "#000000"
	}
	return "#FFFFFF"
}
