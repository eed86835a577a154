package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// WriteOutput encodes v as JSON on w.
func WriteOutput(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	return encoder.Encode(v)
}

// hasTTY reports whether stdout is an interactive terminal.
func hasTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const tablePadding = 2

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', tabwriter.StripEscape)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}
