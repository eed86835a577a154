package theme

import (
	"fmt"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
)

// Name identifies one theme color.
type Name string

// Published theme color names.
const (
	NameRed       Name = "red"
	NameYellow    Name = "yellow"
	NameGreen     Name = "green"
	NameCyan      Name = "cyan"
	NameBlue      Name = "blue"
	NameMagenta   Name = "magenta"
	NameWhite     Name = "white"
	NameBlack     Name = "black"
	NameFg        Name = "fg"
	NameBg        Name = "bg"
	NameAccent    Name = "accent"
	NameSecondary Name = "secondary"
)

// Internal scratch names, derived but never published.
const (
	nameCommon Name = "common"
	nameMean   Name = "mean"
)

// PublishedNames lists the 12 published color names in output order.
var PublishedNames = []Name{
	NameRed, NameYellow, NameGreen, NameCyan,
	NameBlue, NameMagenta, NameWhite, NameBlack,
	NameFg, NameBg, NameAccent, NameSecondary,
}

// reference is one pure hue used as a blending target.
type reference struct {
	Name  Name
	Color colorspace.Color
}

// references holds the eight pure hues, anchored to the xkcd color
// survey results. Initialized once at startup and never mutated.
var references = mustReferences([]struct {
	name Name
	hex  string
}{
	{NameRed, "#E50000"},
	{NameYellow, "#FFFF14"},
	{NameGreen, "#15B01A"},
	{NameCyan, "#13EAC9"}, // xkcd "aqua"
	{NameBlue, "#0343DF"},
	{NameMagenta, "#FF028D"}, // xkcd "hot pink"
	{NameWhite, "#FFFFFF"},
	{NameBlack, "#000000"},
})

func mustReferences(rows []struct {
	name Name
	hex  string
}) []reference {
	refs := make([]reference, 0, len(rows))
	for _, row := range rows {
		color, err := colorspace.FromHex(row.hex)
		if err != nil {
			panic(fmt.Sprintf("bad reference color %s: %v", row.name, err))
		}
		refs = append(refs, reference{Name: row.name, Color: color})
	}
	return refs
}
