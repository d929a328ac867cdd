// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ffxi-audio converter:
// discovered input files, per-file outcomes, batch results, and configuration.
package types

import (
	"path/filepath"
	"strings"
)

const (
	// IntermediateExt is the extension of the decoded WAV written between stages.
	IntermediateExt = ".wav"
	// OutputExt is the extension of the final encoded file.
	OutputExt = ".ogg"
)

// Kind classifies an input container by the game asset it holds.
type Kind string

const (
	KindMusic Kind = "music"
	KindSFX   Kind = "sfx"
)

// InputFile is a discovered audio container. Path is absolute.
type InputFile struct {
	Path string `json:"path" yaml:"path"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// IntermediatePath returns the sibling WAV path used by the decode stage.
func (f InputFile) IntermediatePath() string {
	return withExt(f.Path, IntermediateExt)
}

// OutputPath returns the sibling Ogg path produced by the encode stage.
func (f InputFile) OutputPath() string {
	return withExt(f.Path, OutputExt)
}

func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
