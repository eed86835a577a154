package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Theme is the published 12-entry name->hex mapping. It is immutable
// once built.
type Theme struct {
	names  []Name
	colors map[Name]string
}

// Hex returns the hex code for a theme color name.
func (t Theme) Hex(name Name) (string, bool) {
	hex, ok := t.colors[name]
	return hex, ok
}

// Names returns the color names in output order.
func (t Theme) Names() []Name {
	return t.names
}

// MarshalJSON encodes the theme as a single object with keys in output
// order.
func (t Theme) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(name))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(t.colors[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteJSON writes the single-object JSON form.
func (t Theme) WriteJSON(w io.Writer) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// WriteLines writes the line-oriented form: one hex code per line, in
// first-occurrence order of the published names, duplicates dropped.
// The order is stable across runs on identical input.
func (t Theme) WriteLines(w io.Writer) error {
	seen := make(map[string]struct{}, len(t.names))
	for _, name := range t.names {
		hex := t.colors[name]
		if _, dup := seen[hex]; dup {
			continue
		}
		seen[hex] = struct{}{}
		if _, err := fmt.Fprintln(w, hex); err != nil {
			return fmt.Errorf("write theme line: %w", err)
		}
	}
	return nil
}

// SaveFile writes the theme to path. A ".json" extension selects the
// JSON object form; any other extension gets the line form.
func (t Theme) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create theme file: %w", err)
	}
	defer file.Close()

	if strings.HasSuffix(path, ".json") {
		return t.WriteJSON(file)
	}
	return t.WriteLines(file)
}
