package theme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
	"github.com/neonfuzz/palette-generator/internal/palette"
)

func deriverFor(t *testing.T, rows []palette.HistogramRow, pMix float64) *Deriver {
	t.Helper()
	table, err := palette.New(rows)
	require.NoError(t, err)
	deriver, err := NewDeriver(table, pMix)
	require.NoError(t, err)
	return deriver
}

var scenarioRows = []palette.HistogramRow{
	{Count: 100, Hex: "808080"},
	{Count: 50, Hex: "FF0000"},
	{Count: 10, Hex: "00FF00"},
}

func TestNewDeriverValidatesPMix(t *testing.T) {
	table, err := palette.New(scenarioRows)
	require.NoError(t, err)

	_, err = NewDeriver(table, -0.1)
	require.ErrorIs(t, err, ErrBadMix)

	_, err = NewDeriver(table, 1.1)
	require.ErrorIs(t, err, ErrBadMix)
}

func TestDeriveScenario(t *testing.T) {
	deriver := deriverFor(t, scenarioRows, 0)

	derived, err := deriver.Derive()
	require.NoError(t, err)

	bg, ok := derived.Hex(NameBg)
	require.True(t, ok)
	require.Equal(t, "#808080", bg)

	// With pMix=0 the mixed LUV equals the matched LUV exactly, so red
	// resolves to the palette's own red unmodified.
	red, ok := derived.Hex(NameRed)
	require.True(t, ok)
	require.Equal(t, "#FF0000", red)
}

func TestDerivePublishesExactlyTwelveNames(t *testing.T) {
	derived, err := deriverFor(t, scenarioRows, 0.25).Derive()
	require.NoError(t, err)

	require.Equal(t, PublishedNames, derived.Names())
	require.Len(t, derived.Names(), 12)

	for _, internal := range []Name{nameCommon, nameMean} {
		_, ok := derived.Hex(internal)
		require.False(t, ok, "%s must not be published", internal)
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	var outputs []string
	for i := 0; i < 2; i++ {
		derived, err := deriverFor(t, scenarioRows, 0.25).Derive()
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, derived.WriteJSON(&buf))
		outputs = append(outputs, buf.String())
	}
	require.Equal(t, outputs[0], outputs[1])
}

func TestDeriveIsCached(t *testing.T) {
	deriver := deriverFor(t, scenarioRows, 0.25)

	first, err := deriver.Derive()
	require.NoError(t, err)
	second, err := deriver.Derive()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestOrderingContract(t *testing.T) {
	// Asking for accent first must succeed (the deriver establishes
	// dependency order internally) and match the bg-first value.
	accentFirst, err := deriverFor(t, scenarioRows, 0.25).Hex(NameAccent)
	require.NoError(t, err)

	deriver := deriverFor(t, scenarioRows, 0.25)
	_, err = deriver.Hex(NameBg)
	require.NoError(t, err)
	accentSecond, err := deriver.Hex(NameAccent)
	require.NoError(t, err)

	require.Equal(t, accentFirst, accentSecond)
}

func TestSequencingGuards(t *testing.T) {
	deriver := deriverFor(t, scenarioRows, 0.25)
	empty := map[Name]colorspace.Color{}

	_, err := deriver.special(NameAccent, empty)
	require.ErrorIs(t, err, ErrSequence)

	_, err = deriver.special(NameSecondary, empty)
	require.ErrorIs(t, err, ErrSequence)

	_, err = deriver.special(Name("nonsense"), empty)
	require.ErrorIs(t, err, ErrUnknownRef)
}

func TestAccentExcludesBackgroundNeighborhood(t *testing.T) {
	// A cluster of near-duplicates around bg (LUV distance < 100) plus
	// one distinct bright outlier: accent must skip the cluster.
	rows := []palette.HistogramRow{
		{Count: 100, Hex: "D04040"},
		{Count: 50, Hex: "C84040"},
		{Count: 40, Hex: "D84848"},
		{Count: 10, Hex: "40D0D0"},
		{Count: 30, Hex: "202020"},
		{Count: 20, Hex: "303030"},
	}

	derived, err := deriverFor(t, rows, 0.25).Derive()
	require.NoError(t, err)

	bg, _ := derived.Hex(NameBg)
	require.Equal(t, "#D04040", bg)

	accent, _ := derived.Hex(NameAccent)
	require.Equal(t, "#40D0D0", accent)
	require.NotContains(t, []string{"#D04040", "#C84040", "#D84848"}, accent)

	fg, _ := derived.Hex(NameFg)
	require.Equal(t, "#202020", fg)
}

func TestMonochromePaletteStillDerives(t *testing.T) {
	// Zero saturation range: the bright subset is empty and every
	// search widens to the whole table.
	rows := []palette.HistogramRow{
		{Count: 9, Hex: "404040"},
		{Count: 4, Hex: "404040"},
	}

	derived, err := deriverFor(t, rows, 0.25).Derive()
	require.NoError(t, err)

	bg, ok := derived.Hex(NameBg)
	require.True(t, ok)
	require.Equal(t, "#404040", bg)

	for _, name := range PublishedNames {
		hex, ok := derived.Hex(name)
		require.True(t, ok)
		require.Regexp(t, `^#[0-9A-F]{6}$`, hex)
	}
}

func TestHexUnknownName(t *testing.T) {
	_, err := deriverFor(t, scenarioRows, 0.25).Hex(Name("bogus"))
	require.ErrorIs(t, err, ErrUnknownRef)
}

func TestPMixPullsTowardPureHue(t *testing.T) {
	rows := []palette.HistogramRow{
		{Count: 100, Hex: "808080"},
		{Count: 50, Hex: "AA2222"},
		{Count: 10, Hex: "22AA22"},
	}

	unmixed, err := deriverFor(t, rows, 0).Derive()
	require.NoError(t, err)
	fullMix, err := deriverFor(t, rows, 1).Derive()
	require.NoError(t, err)

	// pMix=1 lands on the pure reference regardless of the palette.
	red, _ := fullMix.Hex(NameRed)
	pure, err := colorspace.FromHex("#E50000")
	require.NoError(t, err)
	matched, err := colorspace.FromHex(red)
	require.NoError(t, err)
	require.InDelta(t, pure.RGB.R, matched.RGB.R, 1)
	require.InDelta(t, pure.RGB.G, matched.RGB.G, 1)
	require.InDelta(t, pure.RGB.B, matched.RGB.B, 1)

	unmixedRed, _ := unmixed.Hex(NameRed)
	require.NotEqual(t, red, unmixedRed)
}
