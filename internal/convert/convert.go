// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the two-stage container-to-Ogg pipeline and the
// sequential batch driver around it.
//
// Each input is decoded to a sibling WAV, encoded to a sibling Ogg, and the
// WAV is removed. An existing Ogg marks the input as done, so re-running over
// a partly converted tree only processes what is missing.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/ffxi-audio/internal/runner"
	"github.com/pdiddy/ffxi-audio/pkg/types"
)

// Converter runs the decode and encode stages for one file at a time.
type Converter struct {
	decoder Decoder
	encoder Encoder
	logger  *slog.Logger
	color   bool
	stat    func(string) (fs.FileInfo, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithColor enables ANSI colors on outcome tags.
func WithColor(on bool) Option {
	return func(c *Converter) { c.color = on }
}

// New returns a Converter using the given stages.
func New(dec Decoder, enc Encoder, opts ...Option) *Converter {
	c := &Converter{
		decoder: dec,
		encoder: enc,
		logger:  slog.New(slog.DiscardHandler),
		stat:    os.Stat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile converts a single input, prints its outcome line to w, and
// returns the result. When the call returns, the intermediate WAV for the
// input does not exist unless removing it failed, which is reported as an
// error outcome.
func (c *Converter) ConvertFile(ctx context.Context, in types.InputFile, w io.Writer) types.FileResult {
	start := time.Now()
	outcome, detail := c.convert(ctx, in)
	res := types.FileResult{
		Input:    in.Path,
		Output:   in.OutputPath(),
		Outcome:  outcome,
		Detail:   detail,
		Duration: time.Since(start),
	}

	fmt.Fprintf(w, "  %s %s\n", c.tag(outcome), detail)
	c.logger.Debug("file processed",
		"input", res.Input,
		"outcome", string(res.Outcome),
		"duration", res.Duration,
	)
	return res
}

func (c *Converter) convert(ctx context.Context, in types.InputFile) (types.Outcome, string) {
	wav, out := in.IntermediatePath(), in.OutputPath()

	done, err := c.fileExists(out)
	if err != nil {
		return types.OutcomeError, err.Error()
	}
	if done {
		return types.OutcomeSkipped, filepath.Base(out) + " already exists"
	}

	c.logger.Debug("decoding", "tool", c.decoder.Name(), "input", in.Path, "wav", wav)
	if err := c.decoder.Decode(ctx, in.Path, wav); err != nil {
		c.remove(wav)
		return classify(types.OutcomeDecodeFailed, c.decoder.Name(), err)
	}
	decoded, err := c.fileExists(wav)
	if err != nil {
		c.remove(wav)
		return types.OutcomeError, err.Error()
	}
	if !decoded {
		return types.OutcomeDecodeFailed,
			fmt.Sprintf("%s failed: no output written to %s", c.decoder.Name(), filepath.Base(wav))
	}

	c.logger.Debug("encoding", "tool", c.encoder.Name(), "wav", wav, "output", out)
	if err := c.encoder.Encode(ctx, wav, out); err != nil {
		c.remove(wav)
		// out did not exist before this attempt, so anything there is partial.
		c.remove(out)
		return classify(types.OutcomeEncodeFailed, c.encoder.Name(), err)
	}
	encoded, err := c.fileExists(out)
	if err != nil {
		c.remove(wav)
		c.remove(out)
		return types.OutcomeError, err.Error()
	}
	if !encoded {
		c.remove(wav)
		return types.OutcomeEncodeFailed,
			fmt.Sprintf("%s failed: no output written to %s", c.encoder.Name(), filepath.Base(out))
	}

	if err := os.Remove(wav); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.OutcomeError, fmt.Sprintf("removing intermediate %s: %v", filepath.Base(wav), err)
	}
	return types.OutcomeConverted, filepath.Base(out)
}

// classify maps a stage error to an outcome and the message shown to the user.
func classify(stage types.Outcome, tool string, err error) (types.Outcome, string) {
	var (
		notFound *runner.NotFoundError
		exitErr  *runner.ExitError
	)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return types.OutcomeInterrupted, fmt.Sprintf("interrupted during %s", tool)
	case errors.As(err, &notFound):
		return types.OutcomeToolMissing, "Command not found: " + notFound.Command
	case errors.As(err, &exitErr):
		msg := exitErr.Stderr
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", exitErr.Code)
		}
		return stage, fmt.Sprintf("%s failed: %s", tool, msg)
	default:
		return types.OutcomeError, err.Error()
	}
}

// remove deletes path if present. Failures are logged; the outcome already
// reflects the more important stage error.
func (c *Converter) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		c.logger.Warn("cleanup failed", "path", path, "error", err)
	}
}

func (c *Converter) fileExists(path string) (bool, error) {
	_, err := c.stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
