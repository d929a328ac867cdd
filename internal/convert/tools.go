// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/ffxi-audio/internal/runner"
)

// Decoder turns an audio container into an uncompressed WAV file.
type Decoder interface {
	// Name identifies the tool in progress messages.
	Name() string
	// Decode reads inputPath and writes wavPath.
	Decode(ctx context.Context, inputPath, wavPath string) error
}

// Encoder compresses a WAV file into the final output format.
type Encoder interface {
	Name() string
	// Encode reads wavPath and writes outPath, replacing any existing file.
	Encode(ctx context.Context, wavPath, outPath string) error
}

// VgmstreamDecoder decodes containers with vgmstream-cli.
type VgmstreamDecoder struct {
	runner  runner.Runner
	command string
}

// NewVgmstreamDecoder returns a decoder that runs command through r.
func NewVgmstreamDecoder(r runner.Runner, command string) *VgmstreamDecoder {
	return &VgmstreamDecoder{runner: r, command: command}
}

// Name is the short tool name used in failure lines, independent of where
// the executable lives.
func (d *VgmstreamDecoder) Name() string { return "vgmstream" }

// Decode runs `vgmstream-cli -o <wav> <input>`.
func (d *VgmstreamDecoder) Decode(ctx context.Context, inputPath, wavPath string) error {
	return d.runner.Run(ctx, d.command, "-o", wavPath, inputPath)
}

// FFmpegEncoder encodes WAV files with ffmpeg at a fixed codec and VBR quality.
type FFmpegEncoder struct {
	runner  runner.Runner
	command string
	codec   string
	quality int
}

// NewFFmpegEncoder returns an encoder that runs command through r.
func NewFFmpegEncoder(r runner.Runner, command, codec string, quality int) *FFmpegEncoder {
	return &FFmpegEncoder{runner: r, command: command, codec: codec, quality: quality}
}

func (e *FFmpegEncoder) Name() string { return filepath.Base(e.command) }

// Encode runs ffmpeg with overwrite forced and logging limited to errors.
func (e *FFmpegEncoder) Encode(ctx context.Context, wavPath, outPath string) error {
	return e.runner.Run(ctx, e.command,
		"-i", wavPath,
		"-c:a", e.codec,
		"-q:a", strconv.Itoa(e.quality),
		outPath,
		"-y",
		"-loglevel", "error",
	)
}
