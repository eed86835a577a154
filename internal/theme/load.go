package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a saved theme back from its JSON object form. The line
// form carries no names and cannot be loaded.
func LoadFile(path string) (Theme, error) {
	if !strings.HasSuffix(path, ".json") {
		return Theme{}, fmt.Errorf("theme file %s: only the .json form can be reloaded", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme file: %w", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Theme{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}

	colors := make(map[Name]string, len(PublishedNames))
	for _, name := range PublishedNames {
		hex, ok := decoded[string(name)]
		if !ok {
			return Theme{}, fmt.Errorf("theme file %s: missing color %q", path, name)
		}
		colors[name] = hex
	}
	return Theme{names: PublishedNames, colors: colors}, nil
}
