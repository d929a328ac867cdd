//go:build mage

package main

import (
	"errors"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and runs it against $FFXI_SOUND_DIR. Set
// $VGMSTREAM_CLI to use a decoder that is not on PATH.
func Convert() error {
	dir := os.Getenv("FFXI_SOUND_DIR")
	if dir == "" {
		return errors.New("FFXI_SOUND_DIR is not set")
	}
	mg.Deps(Build)

	args := []string{dir}
	if dec := os.Getenv("VGMSTREAM_CLI"); dec != "" {
		args = append(args, dec)
	}
	return sh.RunV(binPath(), args...)
}

// History prints the most recent conversion runs.
func History() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "history")
}
