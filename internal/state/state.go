// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package state locates the per-user state directory and guards sound folders
// against concurrent runs. Nothing is written inside the sound folder itself.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	appName     = "ffxi-audio"
	historyFile = "history.db"
	locksDir    = "locks"
)

// ErrLocked is returned when another run holds the folder lock.
var ErrLocked = errors.New("another ffxi-audio run is already converting this folder")

// Dir returns $XDG_STATE_HOME/ffxi-audio, falling back to
// ~/.local/state/ffxi-audio.
func Dir() (string, error) {
	if base := os.Getenv("XDG_STATE_HOME"); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating state directory: %w", err)
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// HistoryPath returns the default history database path inside dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, historyFile)
}

// Lock is an advisory lock on one sound folder.
type Lock struct {
	fl *flock.Flock
}

// LockFolder takes the lock for folder under dir/locks. It does not block;
// if the lock is held it returns ErrLocked.
func LockFolder(dir, folder string) (*Lock, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", folder, err)
	}
	lockDir := filepath.Join(dir, locksDir)
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	sum := sha256.Sum256([]byte(abs))
	fl := flock.New(filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock"))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", abs, ErrLocked)
	}
	return &Lock{fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.fl.Path() }

// Release drops the lock.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}
