// Package theme derives a labeled 12-color theme from a palette table.
//
// The derivation runs in two phases. Eight hue-anchored colors each find
// the palette entry nearest a pure reference hue in CIE-LUV, then blend
// toward the pure hue by a configurable mix ratio. Four special colors
// (fg, bg, accent, secondary) are then computed in a fixed order because
// later ones exclude or target earlier results.
package theme

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
	"github.com/neonfuzz/palette-generator/internal/logging"
	"github.com/neonfuzz/palette-generator/internal/palette"
)

// Deriver errors.
var (
	ErrSequence   = errors.New("theme color requested out of sequence")
	ErrBadMix     = errors.New("mix ratio must be in [0, 1]")
	ErrUnknownRef = errors.New("unknown theme color name")
)

// DefaultPMix is the default pure-color mix ratio.
const DefaultPMix = 0.25

// Deriver computes a Theme from a palette table. The theme is built
// lazily on first access and cached for the deriver's lifetime;
// recomputation requires a fresh Deriver.
type Deriver struct {
	table  *palette.Table
	pMix   float64
	logger zerolog.Logger

	once  sync.Once
	theme Theme
	err   error
}

// NewDeriver creates a Deriver. pMix is the fraction of pure reference
// color blended into each palette match: 0 keeps the image's own colors
// at the match point, higher values pull toward the canonical hue.
func NewDeriver(table *palette.Table, pMix float64) (*Deriver, error) {
	if pMix < 0 || pMix > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrBadMix, pMix)
	}
	return &Deriver{
		table:  table,
		pMix:   pMix,
		logger: logging.Component("theme"),
	}, nil
}

// Derive returns the theme, computing it on first call. Repeated calls
// return the identical cached result, errors included.
func (d *Deriver) Derive() (Theme, error) {
	d.once.Do(func() {
		d.theme, d.err = d.build()
	})
	return d.theme, d.err
}

// Hex returns one published theme color, deriving the full theme first
// if needed. The internal build order guarantees dependencies like
// bg-before-accent regardless of which name is asked for first.
func (d *Deriver) Hex(name Name) (string, error) {
	derived, err := d.Derive()
	if err != nil {
		return "", err
	}
	hex, ok := derived.Hex(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRef, name)
	}
	return hex, nil
}

// build computes every theme color into a fresh Theme in one pass.
func (d *Deriver) build() (Theme, error) {
	scratch := make(map[Name]colorspace.Color, len(PublishedNames)+2)

	for _, ref := range references {
		mode := palette.SubsetBright
		if ref.Name == NameWhite || ref.Name == NameBlack {
			mode = palette.SubsetMuted
		}
		mixed, err := d.mixedHue(ref, mode)
		if err != nil {
			return Theme{}, fmt.Errorf("derive %s: %w", ref.Name, err)
		}
		scratch[ref.Name] = mixed
	}

	// Order matters: accent needs bg, secondary needs accent and bg.
	for _, name := range []Name{nameCommon, nameMean, NameFg, NameBg, NameAccent, NameSecondary} {
		color, err := d.special(name, scratch)
		if err != nil {
			return Theme{}, fmt.Errorf("derive %s: %w", name, err)
		}
		scratch[name] = color
	}

	colors := make(map[Name]string, len(PublishedNames))
	for _, name := range PublishedNames {
		colors[name] = scratch[name].Hex
	}
	return Theme{names: PublishedNames, colors: colors}, nil
}

// mixedHue finds the palette entry nearest the pure reference hue and
// blends it toward the pure color in LUV space.
func (d *Deriver) mixedHue(ref reference, mode palette.SubsetMode) (colorspace.Color, error) {
	subset, err := d.subset(mode)
	if err != nil {
		return colorspace.Color{}, err
	}

	matched, err := palette.Nearest(subset, ref.Color.LUV, palette.MetricEuclidean)
	if err != nil {
		return colorspace.Color{}, err
	}

	pure := ref.Color.LUV
	mixed := colorspace.LUV{
		L: (1-d.pMix)*matched.LUV.L + d.pMix*pure.L,
		U: (1-d.pMix)*matched.LUV.U + d.pMix*pure.U,
		V: (1-d.pMix)*matched.LUV.V + d.pMix*pure.V,
	}
	return colorspace.FromLUV(mixed), nil
}

// special computes one of the order-dependent colors. The sequencing
// guards stay even though build always runs in order: the dependencies
// are real, and a future caller must hit an error, not a zero value.
func (d *Deriver) special(name Name, scratch map[Name]colorspace.Color) (colorspace.Color, error) {
	switch name {
	case nameCommon, NameBg:
		return d.table.First().Color, nil

	case nameMean:
		entries := d.table.Entries()
		matched, err := palette.Nearest(entries, palette.MeanLUV(entries), palette.MetricEuclidean)
		if err != nil {
			return colorspace.Color{}, err
		}
		return matched.Color, nil

	case NameFg:
		subset, err := d.subset(palette.SubsetMuted)
		if err != nil {
			return colorspace.Color{}, err
		}
		matched, err := palette.Farthest(subset, d.table.First().LUV, palette.MetricEuclidean)
		if err != nil {
			return colorspace.Color{}, err
		}
		return matched.Color, nil

	case NameAccent:
		bg, ok := scratch[NameBg]
		if !ok {
			return colorspace.Color{}, fmt.Errorf("%w: bg must be derived before accent", ErrSequence)
		}
		candidates, err := d.excluded(palette.SubsetBright, bg.LUV)
		if err != nil {
			return colorspace.Color{}, err
		}
		matched, err := palette.MaxSaturation(candidates)
		if err != nil {
			return colorspace.Color{}, err
		}
		return matched.Color, nil

	case NameSecondary:
		accent, ok := scratch[NameAccent]
		if !ok {
			return colorspace.Color{}, fmt.Errorf("%w: accent must be derived before secondary", ErrSequence)
		}
		bg, ok := scratch[NameBg]
		if !ok {
			return colorspace.Color{}, fmt.Errorf("%w: bg must be derived before secondary", ErrSequence)
		}
		candidates, err := d.excluded(palette.SubsetBright, bg.LUV)
		if err != nil {
			return colorspace.Color{}, err
		}
		matched, err := palette.Farthest(candidates, accent.LUV, palette.MetricEuclidean)
		if err != nil {
			return colorspace.Color{}, err
		}
		return matched.Color, nil

	default:
		return colorspace.Color{}, fmt.Errorf("%w: %s", ErrUnknownRef, name)
	}
}

// subset returns the entries for a brightness mode, widening to the
// whole table when a low-diversity palette leaves the subset empty.
func (d *Deriver) subset(mode palette.SubsetMode) ([]palette.Entry, error) {
	entries, err := d.table.Subset(mode)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		d.logger.Warn().
			Stringer("subset", mode).
			Msg("brightness subset is empty, widening to all colors")
		return d.table.Entries(), nil
	}
	return entries, nil
}

// excluded returns a brightness subset with the neighborhood of center
// removed. If exclusion empties the candidate set, the unexcluded
// subset is used instead so degenerate palettes still yield a theme.
func (d *Deriver) excluded(mode palette.SubsetMode, center colorspace.LUV) ([]palette.Entry, error) {
	subset, err := d.subset(mode)
	if err != nil {
		return nil, err
	}
	candidates := palette.Exclude(subset, center, palette.DefaultExcludeDist)
	if len(candidates) == 0 {
		d.logger.Warn().
			Stringer("subset", mode).
			Msg("exclusion removed every candidate, searching unexcluded subset")
		return subset, nil
	}
	return candidates, nil
}
