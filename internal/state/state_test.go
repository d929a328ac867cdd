// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir(t *testing.T) {
	t.Run("XDG_STATE_HOME", func(t *testing.T) {
		base := t.TempDir()
		t.Setenv("XDG_STATE_HOME", base)

		dir, err := Dir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "ffxi-audio"), dir)
	})
	t.Run("home fallback", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_STATE_HOME", "")
		t.Setenv("HOME", home)

		dir, err := Dir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "state", "ffxi-audio"), dir)
	})
}

func TestHistoryPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/state", "history.db"), HistoryPath("/state"))
}

func TestLockFolder(t *testing.T) {
	dir := t.TempDir()
	folder := t.TempDir()

	first, err := LockFolder(dir, folder)
	require.NoError(t, err)
	assert.FileExists(t, first.Path())
	assert.Equal(t, filepath.Join(dir, "locks"), filepath.Dir(first.Path()))

	_, err = LockFolder(dir, folder)
	require.ErrorIs(t, err, ErrLocked)

	other, err := LockFolder(dir, t.TempDir())
	require.NoError(t, err, "a different folder has its own lock")
	require.NoError(t, other.Release())

	require.NoError(t, first.Release())
	again, err := LockFolder(dir, folder)
	require.NoError(t, err, "lock is reusable after release")
	require.NoError(t, again.Release())
}
