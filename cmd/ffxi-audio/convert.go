// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ffxi-audio/internal/convert"
	"github.com/pdiddy/ffxi-audio/internal/deps"
	"github.com/pdiddy/ffxi-audio/internal/discover"
	"github.com/pdiddy/ffxi-audio/internal/history"
	"github.com/pdiddy/ffxi-audio/internal/logging"
	"github.com/pdiddy/ffxi-audio/internal/report"
	"github.com/pdiddy/ffxi-audio/internal/runner"
	"github.com/pdiddy/ffxi-audio/internal/state"
	"github.com/pdiddy/ffxi-audio/pkg/types"
)

func runConvert(cmd *cobra.Command, args []string, v *viper.Viper) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		cfg.Tools.Decoder = args[1]
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.History.Enabled = false
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	folder := args[0]
	if err := checkFolder(folder); err != nil {
		return err
	}
	// Progress paths and the folder lock use the resolved root, so every
	// symlink alias of one folder maps to the same lock.
	root, err := discover.Resolve(folder)
	if err != nil {
		return err
	}

	reportPath, _ := cmd.Flags().GetString("report")
	if reportPath != "" {
		if _, err := report.FormatFor(reportPath); err != nil {
			return err
		}
	}

	r := runner.New()

	fmt.Fprintln(out, "Checking dependencies...")
	statuses := deps.Check(ctx, r, deps.Requirements(cfg.Tools.Decoder, cfg.Tools.Encoder))
	if err := deps.Report(out, statuses); err != nil {
		return err
	}
	fmt.Fprintln(out)

	stateDir, err := state.Dir()
	if err != nil {
		return err
	}
	lock, err := state.LockFolder(stateDir, root)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release folder lock", "path", lock.Path(), "error", err)
		}
	}()

	fmt.Fprintf(out, "Scanning: %s\n", folder)
	files, err := discover.Discover(root)
	if err != nil {
		return err
	}
	music, sfx := discover.Count(files)
	fmt.Fprintf(out, "  Found %d .bgw files (music)\n", music)
	fmt.Fprintf(out, "  Found %d .spw files (sound effects)\n", sfx)
	fmt.Fprintf(out, "  Total: %d files\n", len(files))
	fmt.Fprintln(out)

	if len(files) == 0 {
		fmt.Fprintln(out, "No files to convert.")
		return nil
	}

	noColor, _ := cmd.Flags().GetBool("no-color")
	conv := convert.New(
		convert.NewVgmstreamDecoder(r, cfg.Tools.Decoder),
		convert.NewFFmpegEncoder(r, cfg.Tools.Encoder, cfg.Tools.Codec, cfg.Tools.Quality),
		convert.WithLogger(logger),
		convert.WithColor(!noColor && shouldColorize(out)),
	)

	convert.PrintHeader(out)
	result := conv.Batch(ctx, root, files, out)
	convert.PrintSummary(out, result)

	// Recording must survive the cancellation that may have ended the batch.
	saveCtx := context.WithoutCancel(ctx)
	if cfg.History.Enabled {
		recordRun(saveCtx, out, logger, cfg, result)
	}
	if reportPath != "" {
		if err := report.Write(reportPath, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Report:    %s\n", reportPath)
	}

	if result.Interrupted {
		return fmt.Errorf("conversion interrupted: %w", context.Canceled)
	}
	return nil
}

// checkFolder rejects a missing path or one that is not a directory.
func checkFolder(folder string) error {
	info, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("folder not found: %s", folder)
		}
		return fmt.Errorf("checking folder %s: %w", folder, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", folder)
	}
	return nil
}

// recordRun saves the run to the history database. Failures are logged and
// never change the exit status.
func recordRun(ctx context.Context, out io.Writer, logger *slog.Logger, cfg types.Config, result types.BatchResult) {
	path, err := historyPath(cfg)
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("run history unavailable", "path", path, "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(ctx, result)
	if err != nil {
		logger.Warn("failed to record run", "path", path, "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "path", path)
	fmt.Fprintf(out, "  Run ID:    %s\n", id)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
