// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package deps verifies that the external decoder and encoder can be launched
// before a conversion run starts.
package deps

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/ffxi-audio/internal/runner"
)

// Requirement describes one external program the run depends on.
type Requirement struct {
	Name    string
	Command string
	// Args are passed when probing; most tools print usage or a version.
	Args []string
	// Hint is printed when the program cannot be launched.
	Hint []string
}

// Status reports whether a requirement could be launched.
type Status struct {
	Requirement
	Available bool
	Err       error
}

// Requirements returns the decoder and encoder requirements for the given
// commands.
func Requirements(decoder, encoder string) []Requirement {
	return []Requirement{
		{
			Name:    "vgmstream-cli",
			Command: decoder,
			Hint: []string{
				"Download from: https://github.com/vgmstream/vgmstream/releases",
				"  - Download vgmstream-linux-cli.tar.gz",
				"  - Extract and provide path as second argument",
			},
		},
		{
			Name:    "ffmpeg",
			Command: encoder,
			Args:    []string{"-version"},
			Hint:    []string{"Install with: sudo apt install ffmpeg"},
		},
	}
}

// Check probes each requirement in order. Only launch failures mark a
// requirement unavailable; tools that print usage and exit non-zero pass.
func Check(ctx context.Context, r runner.Runner, reqs []Requirement) []Status {
	results := make([]Status, 0, len(reqs))
	for _, req := range reqs {
		st := Status{Requirement: req}
		cmd := strings.TrimSpace(req.Command)
		if cmd == "" {
			st.Err = fmt.Errorf("%s: command not configured", req.Name)
		} else if err := r.Probe(ctx, cmd, req.Args...); err != nil {
			st.Err = err
		} else {
			st.Available = true
		}
		results = append(results, st)
	}
	return results
}

// Report prints one line per status and the remediation hint of the first
// missing tool. It returns an error naming the missing tools, or nil.
func Report(w io.Writer, statuses []Status) error {
	var missing []string
	for _, st := range statuses {
		if st.Available {
			if st.Command != st.Name {
				fmt.Fprintf(w, "  %s: OK (%s)\n", st.Name, st.Command)
			} else {
				fmt.Fprintf(w, "  %s: OK\n", st.Name)
			}
			continue
		}
		fmt.Fprintf(w, "  %s: NOT FOUND\n", st.Name)
		if len(missing) == 0 && len(st.Hint) > 0 {
			fmt.Fprintln(w)
			for _, line := range st.Hint {
				fmt.Fprintln(w, line)
			}
		}
		missing = append(missing, st.Name)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}
