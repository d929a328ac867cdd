// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ffxi-audio/pkg/types"
)

func sample() types.BatchResult {
	return types.BatchResult{
		Root:      "/sound",
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Tally:     types.Tally{Converted: 1, Failed: 1},
		Files: []types.FileResult{
			{Input: "/sound/a.bgw", Output: "/sound/a.ogg", Outcome: types.OutcomeConverted},
			{Input: "/sound/b.spw", Output: "/sound/b.ogg", Outcome: types.OutcomeDecodeFailed, Detail: "vgmstream failed: bad header"},
		},
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "run.yaml", want: FormatYAML},
		{path: "run.YML", want: FormatYAML},
		{path: "out/run.json", want: FormatJSON},
		{path: "run.txt", wantErr: true},
		{path: "run", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrite_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.yaml")
	require.NoError(t, Write(path, sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "root: /sound")
	assert.Contains(t, content, "converted: 1")
	assert.Contains(t, content, "outcome: decode_failed")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded["failed"], "tally fields are inlined at the top level")
}

func TestWrite_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, Write(path, sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Root  string             `json:"root"`
		Files []types.FileResult `json:"files"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "/sound", decoded.Root)
	require.Len(t, decoded.Files, 2)
	assert.Equal(t, types.OutcomeDecodeFailed, decoded.Files[1].Outcome)
}

func TestWrite_BadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	require.Error(t, Write(path, sample()))
	assert.NoFileExists(t, path)
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, Format("xml"), sample()))
}
