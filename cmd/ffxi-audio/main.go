// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ffxi-audio CLI, which converts
// FFXI .bgw and .spw audio containers to Ogg Vorbis using vgmstream-cli and
// ffmpeg.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
