// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ffxi-audio/internal/history"
	"github.com/pdiddy/ffxi-audio/internal/report"
	"github.com/pdiddy/ffxi-audio/pkg/types"
)

const shortIDLen = 8

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded conversion runs",
		Long: `History lists recent conversion runs from the history database. Given a
run ID (or a unique prefix of one), it lists the outcome of every file in that
run instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, v)
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of runs to list")
	cmd.Flags().String("format", "table", "output format: table, json, or yaml")
	return cmd
}

// runDetail is the structured form of a single run for json/yaml output.
type runDetail struct {
	history.Run `yaml:",inline"`
	Files       []types.FileResult `json:"files" yaml:"files"`
}

func runHistory(cmd *cobra.Command, args []string, v *viper.Viper) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(format)
	if format != "table" && format != string(report.FormatJSON) && format != string(report.FormatYAML) {
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	path, err := historyPath(cfg)
	if err != nil {
		return err
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		run, err := store.FindRun(ctx, args[0])
		if err != nil {
			return err
		}
		files, err := store.RunFiles(ctx, run.ID)
		if err != nil {
			return err
		}
		if format != "table" {
			return report.Encode(out, report.Format(format), runDetail{Run: run, Files: files})
		}
		printRunFiles(out, run, files)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if format != "table" {
		if runs == nil {
			runs = []history.Run{}
		}
		return report.Encode(out, report.Format(format), runs)
	}
	printRuns(out, runs)
	return nil
}

func printRuns(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		status := "complete"
		if r.Interrupted {
			status = "interrupted"
		}
		rows = append(rows, []string{
			shortID(r.ID),
			r.StartedAt.Local().Format(time.DateTime),
			r.Root,
			strconv.Itoa(r.Tally.Converted),
			strconv.Itoa(r.Tally.Skipped),
			strconv.Itoa(r.Tally.Failed),
			status,
		})
	}
	fmt.Fprintln(w, renderTable(runColumns, rows))
}

func printRunFiles(w io.Writer, run history.Run, files []types.FileResult) {
	fmt.Fprintf(w, "Run %s  %s  %s\n", run.ID, run.StartedAt.Local().Format(time.DateTime), run.Root)
	if len(files) == 0 {
		fmt.Fprintln(w, "No files processed.")
		return
	}
	rows := make([][]string, 0, len(files))
	for i, f := range files {
		input := f.Input
		if rel, err := filepath.Rel(run.Root, f.Input); err == nil {
			input = rel
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			input,
			string(f.Outcome),
			f.Duration.Round(time.Millisecond).String(),
			f.Detail,
		})
	}
	fmt.Fprintln(w, renderTable(fileColumns, rows))
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}
