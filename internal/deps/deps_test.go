// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package deps

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ffxi-audio/internal/runner"
)

// probeRunner reports the listed commands as installed.
type probeRunner struct {
	installed map[string]bool
	probed    [][]string
}

func (p *probeRunner) Run(ctx context.Context, name string, args ...string) error {
	return errors.New("Run must not be called during a dependency check")
}

func (p *probeRunner) Probe(ctx context.Context, name string, args ...string) error {
	p.probed = append(p.probed, append([]string{name}, args...))
	if p.installed[name] {
		return nil
	}
	return &runner.NotFoundError{Command: name}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		decoder    string
		installed  map[string]bool
		wantOK     []bool
		wantErr    string
		wantOutput []string
	}{
		{
			name:       "both available",
			decoder:    "vgmstream-cli",
			installed:  map[string]bool{"vgmstream-cli": true, "ffmpeg": true},
			wantOK:     []bool{true, true},
			wantOutput: []string{"  vgmstream-cli: OK\n", "  ffmpeg: OK\n"},
		},
		{
			name:       "custom decoder path shown",
			decoder:    "./bin/vgmstream-cli",
			installed:  map[string]bool{"./bin/vgmstream-cli": true, "ffmpeg": true},
			wantOK:     []bool{true, true},
			wantOutput: []string{"  vgmstream-cli: OK (./bin/vgmstream-cli)\n"},
		},
		{
			name:       "decoder missing",
			decoder:    "vgmstream-cli",
			installed:  map[string]bool{"ffmpeg": true},
			wantOK:     []bool{false, true},
			wantErr:    "missing required tools: vgmstream-cli",
			wantOutput: []string{"  vgmstream-cli: NOT FOUND\n", "vgmstream/releases"},
		},
		{
			name:       "encoder missing",
			decoder:    "vgmstream-cli",
			installed:  map[string]bool{"vgmstream-cli": true},
			wantOK:     []bool{true, false},
			wantErr:    "missing required tools: ffmpeg",
			wantOutput: []string{"  ffmpeg: NOT FOUND\n", "sudo apt install ffmpeg"},
		},
		{
			name:       "decoder not configured",
			decoder:    "  ",
			installed:  map[string]bool{"ffmpeg": true},
			wantOK:     []bool{false, true},
			wantErr:    "vgmstream-cli",
			wantOutput: []string{"NOT FOUND"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &probeRunner{installed: tt.installed}
			statuses := Check(context.Background(), r, Requirements(tt.decoder, "ffmpeg"))
			require.Len(t, statuses, 2)
			for i, want := range tt.wantOK {
				assert.Equal(t, want, statuses[i].Available, statuses[i].Name)
			}

			var out bytes.Buffer
			err := Report(&out, statuses)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			for _, s := range tt.wantOutput {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestCheck_ProbeArguments(t *testing.T) {
	r := &probeRunner{installed: map[string]bool{"vgmstream-cli": true, "ffmpeg": true}}
	Check(context.Background(), r, Requirements("vgmstream-cli", "ffmpeg"))

	assert.Equal(t, [][]string{{"vgmstream-cli"}, {"ffmpeg", "-version"}}, r.probed)
}
