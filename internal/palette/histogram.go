package palette

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// HistogramRow is one raw histogram record: how many pixels quantized to
// a given hex color. Counts for identical hex values are expected to be
// merged upstream.
type HistogramRow struct {
	Count int    `json:"count"`
	Hex   string `json:"hex"`
}

// ReadHistogram parses a color histogram. Two formats are accepted: the
// CSV written by WriteHistogram (header "count,hex") and the legacy
// line format "{count}: {hex}". A malformed row fails immediately; rows
// are never silently skipped.
func ReadHistogram(r io.Reader) ([]HistogramRow, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read histogram: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyHistogram
	}

	if strings.Contains(lines[0], ",") {
		return parseCSVHistogram(lines)
	}
	return parseLineHistogram(lines)
}

func parseCSVHistogram(lines []string) ([]HistogramRow, error) {
	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse histogram csv: %w", err)
	}

	var rows []HistogramRow
	for i, record := range records {
		if i == 0 && strings.EqualFold(record[0], "count") {
			continue
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("histogram line %d: want 2 fields, got %d", i+1, len(record))
		}
		row, err := parseHistogramRow(record[0], record[1])
		if err != nil {
			return nil, fmt.Errorf("histogram line %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyHistogram
	}
	return rows, nil
}

func parseLineHistogram(lines []string) ([]HistogramRow, error) {
	rows := make([]HistogramRow, 0, len(lines))
	for i, line := range lines {
		count, hex, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("histogram line %d: want '{count}: {hex}', got %q", i+1, line)
		}
		row, err := parseHistogramRow(count, hex)
		if err != nil {
			return nil, fmt.Errorf("histogram line %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseHistogramRow(countField, hexField string) (HistogramRow, error) {
	count, err := strconv.Atoi(strings.TrimSpace(countField))
	if err != nil {
		return HistogramRow{}, fmt.Errorf("bad count: %w", err)
	}
	if count <= 0 {
		return HistogramRow{}, fmt.Errorf("count must be positive, got %d", count)
	}
	return HistogramRow{Count: count, Hex: strings.TrimSpace(hexField)}, nil
}

// WriteHistogram writes rows as CSV with a "count,hex" header.
func WriteHistogram(w io.Writer, rows []HistogramRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"count", "hex"}); err != nil {
		return fmt.Errorf("write histogram header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write([]string{strconv.Itoa(row.Count), row.Hex}); err != nil {
			return fmt.Errorf("write histogram row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadHistogramFile reads a histogram from disk.
func ReadHistogramFile(path string) ([]HistogramRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open histogram file: %w", err)
	}
	defer file.Close()
	return ReadHistogram(file)
}

// WriteHistogramFile writes a histogram to disk.
func WriteHistogramFile(path string, rows []HistogramRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create histogram file: %w", err)
	}
	defer file.Close()
	return WriteHistogram(file, rows)
}
