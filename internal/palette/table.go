// Package palette holds the quantized color table a theme is derived
// from: per-color pixel counts plus every derived color-space coordinate,
// with brightness subsets and nearest/farthest searches in CIE-LUV.
package palette

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/neonfuzz/palette-generator/internal/colorspace"
)

// Palette errors.
var (
	ErrInvalidSubsetMode = errors.New("invalid subset mode")
	ErrEmptySubset       = errors.New("empty palette subset")
	ErrEmptyHistogram    = errors.New("histogram has no rows")
)

// DefaultExcludeDist is the default LUV-space exclusion radius.
const DefaultExcludeDist = 100.0

// SubsetMode selects which brightness slice of the table to search.
type SubsetMode int

const (
	// SubsetAll selects every row.
	SubsetAll SubsetMode = iota

	// SubsetBright selects rows whose saturation and value are both
	// above the whole table's medians.
	SubsetBright

	// SubsetMuted selects rows whose saturation or value is below the
	// whole table's medians.
	SubsetMuted
)

// String returns the mode name for logs and errors.
func (m SubsetMode) String() string {
	switch m {
	case SubsetAll:
		return "all"
	case SubsetBright:
		return "bright"
	case SubsetMuted:
		return "muted"
	default:
		return fmt.Sprintf("subset(%d)", int(m))
	}
}

// Metric names a distance function over LUV space. Only these two are
// ever used; arbitrary callables are deliberately not supported.
type Metric int

const (
	// MetricEuclidean is straight-line distance in LUV.
	MetricEuclidean Metric = iota

	// MetricCosine is 1 - cosine similarity of LUV vectors.
	MetricCosine
)

func (m Metric) distance(a, b colorspace.LUV) float64 {
	if m == MetricCosine {
		return a.Cosine(b)
	}
	return a.Euclidean(b)
}

// Entry is one palette row: a pixel count plus the color in every
// representation. Entries are immutable once the table is built.
type Entry struct {
	Count int
	colorspace.Color
}

// Table is an ordered palette, sorted by count descending at
// construction. The order is preserved and breaks ties in every search:
// "most common" always means the first row.
type Table struct {
	entries []Entry

	medianOnce sync.Once
	medianSat  float64
	medianVal  float64
}

// New builds a Table from histogram rows. Rows are stably sorted by
// count descending (ties keep their input order), then every derived
// coordinate is computed once. A row with an invalid hex code fails the
// whole construction.
func New(rows []HistogramRow) (*Table, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyHistogram
	}

	sorted := make([]HistogramRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	entries := make([]Entry, 0, len(sorted))
	for _, row := range sorted {
		if row.Count <= 0 {
			return nil, fmt.Errorf("histogram row %q: count must be positive, got %d", row.Hex, row.Count)
		}
		color, err := colorspace.FromHex(row.Hex)
		if err != nil {
			return nil, fmt.Errorf("histogram row: %w", err)
		}
		entries = append(entries, Entry{Count: row.Count, Color: color})
	}

	return &Table{entries: entries}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all rows in table order. Callers must not modify the
// returned slice.
func (t *Table) Entries() []Entry {
	return t.entries
}

// First returns the most frequent row.
func (t *Table) First() Entry {
	return t.entries[0]
}

// Subset returns the rows matching the given brightness mode. The
// bright/muted split always compares against the whole table's median
// saturation and value, never the subset's own. An empty result is legal
// on low-diversity palettes.
func (t *Table) Subset(mode SubsetMode) ([]Entry, error) {
	switch mode {
	case SubsetAll:
		return t.entries, nil
	case SubsetBright, SubsetMuted:
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidSubsetMode, mode)
	}

	sat, val := t.medians()
	var subset []Entry
	for _, entry := range t.entries {
		switch mode {
		case SubsetBright:
			if entry.HSV.S > sat && entry.HSV.V > val {
				subset = append(subset, entry)
			}
		case SubsetMuted:
			if entry.HSV.S < sat || entry.HSV.V < val {
				subset = append(subset, entry)
			}
		}
	}
	return subset, nil
}

// medians returns the table-wide median saturation and value, computed
// once per table.
func (t *Table) medians() (sat, val float64) {
	t.medianOnce.Do(func() {
		sats := make([]float64, len(t.entries))
		vals := make([]float64, len(t.entries))
		for i, entry := range t.entries {
			sats[i] = entry.HSV.S
			vals[i] = entry.HSV.V
		}
		t.medianSat = median(sats)
		t.medianVal = median(vals)
	})
	return t.medianSat, t.medianVal
}

// median returns the linearly-interpolated 0.5 quantile.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Exclude returns the entries farther than dist (Euclidean, LUV) from
// center. Exclusion always happens before a search, never after.
func Exclude(entries []Entry, center colorspace.LUV, dist float64) []Entry {
	var kept []Entry
	for _, entry := range entries {
		if entry.LUV.Euclidean(center) > dist {
			kept = append(kept, entry)
		}
	}
	return kept
}

// Nearest returns the entry minimizing the metric against target. Ties
// break by table order: the first minimum wins.
func Nearest(entries []Entry, target colorspace.LUV, metric Metric) (Entry, error) {
	return search(entries, target, metric, false)
}

// Farthest returns the entry maximizing the metric against target. Ties
// break by table order: the first maximum wins.
func Farthest(entries []Entry, target colorspace.LUV, metric Metric) (Entry, error) {
	return search(entries, target, metric, true)
}

func search(entries []Entry, target colorspace.LUV, metric Metric, farthest bool) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrEmptySubset
	}

	best := 0
	bestDist := metric.distance(entries[0].LUV, target)
	for i, entry := range entries[1:] {
		dist := metric.distance(entry.LUV, target)
		if (farthest && dist > bestDist) || (!farthest && dist < bestDist) {
			best = i + 1
			bestDist = dist
		}
	}
	return entries[best], nil
}

// MaxSaturation returns the most saturated entry. Ties break by table
// order.
func MaxSaturation(entries []Entry) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, ErrEmptySubset
	}

	best := 0
	for i, entry := range entries[1:] {
		if entry.HSV.S > entries[best].HSV.S {
			best = i + 1
		}
	}
	return entries[best], nil
}

// MeanLUV returns the unweighted mean LUV of the entries.
func MeanLUV(entries []Entry) colorspace.LUV {
	var mean colorspace.LUV
	if len(entries) == 0 {
		return mean
	}
	for _, entry := range entries {
		mean.L += entry.LUV.L
		mean.U += entry.LUV.U
		mean.V += entry.LUV.V
	}
	n := float64(len(entries))
	mean.L /= n
	mean.U /= n
	mean.V /= n
	return mean
}
