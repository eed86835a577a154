package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/neonfuzz/palette-generator/internal/db"
)

var runsLimit int

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsListCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded palette runs",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		runs, err := db.NewRunRepository(database).List(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, runs)
		}

		rows := make([][]string, 0, len(runs))
		for _, run := range runs {
			rows = append(rows, []string{
				shortID(run.ID),
				run.SourcePath,
				strconv.FormatFloat(run.PMix, 'g', -1, 64),
				strconv.Itoa(len(run.Histogram)),
				run.CreatedAt.Local().Format(time.DateTime),
			})
		}
		return writeTable(os.Stdout, []string{"ID", "SOURCE", "P_MIX", "COLORS", "CREATED"}, rows)
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()

		run, err := db.NewRunRepository(database).GetByPrefix(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if IsJSONOutput() {
			return WriteOutput(os.Stdout, run)
		}

		fmt.Printf("Run:     %s\n", run.ID)
		fmt.Printf("Source:  %s\n", run.SourcePath)
		fmt.Printf("P-mix:   %g\n", run.PMix)
		fmt.Printf("Created: %s\n", run.CreatedAt.Local().Format(time.DateTime))

		rows := make([][]string, 0, len(run.Theme))
		for _, name := range themeNameOrder {
			if hex, ok := run.Theme[name]; ok {
				rows = append(rows, []string{name, hex})
			}
		}
		return writeTable(os.Stdout, []string{"NAME", "HEX"}, rows)
	},
}

// themeNameOrder keeps `runs show` output in the published theme order.
var themeNameOrder = []string{
	"red", "yellow", "green", "cyan", "blue", "magenta",
	"white", "black", "fg", "bg", "accent", "secondary",
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
