// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/ffxi-audio/pkg/types"
)

const rule = "=================================================="

// Batch processes files in order, printing `[i/N] relative-path` before each
// one. Per-file failures are counted and the run continues; a cancelled
// context stops the run after the in-flight file has been cleaned up.
func (c *Converter) Batch(ctx context.Context, root string, files []types.InputFile, w io.Writer) types.BatchResult {
	result := types.BatchResult{
		Root:      root,
		StartedAt: time.Now(),
		Files:     make([]types.FileResult, 0, len(files)),
	}

	for i, f := range files {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		fmt.Fprintf(w, "[%d/%d] %s\n", i+1, len(files), relPath(root, f.Path))

		fr := c.ConvertFile(ctx, f, w)
		result.Files = append(result.Files, fr)
		result.Add(fr.Outcome)

		if fr.Outcome == types.OutcomeInterrupted {
			result.Interrupted = true
			break
		}
	}

	result.FinishedAt = time.Now()
	c.logger.Info("batch finished",
		"root", root,
		"converted", result.Converted,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"interrupted", result.Interrupted,
	)
	return result
}

// PrintSummary writes the closing totals block for a run.
func PrintSummary(w io.Writer, r types.BatchResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	if r.Interrupted {
		fmt.Fprintln(w, "Interrupted!")
	} else {
		fmt.Fprintln(w, "Complete!")
	}
	fmt.Fprintf(w, "  Converted: %d\n", r.Converted)
	fmt.Fprintf(w, "  Skipped:   %d\n", r.Skipped)
	fmt.Fprintf(w, "  Failed:    %d\n", r.Failed)
}

// PrintHeader writes the banner printed before the first file.
func PrintHeader(w io.Writer) {
	fmt.Fprintln(w, "Converting...")
	fmt.Fprintln(w, rule)
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
