// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover finds FFXI audio containers under a sound folder.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/ffxi-audio/pkg/types"
)

// kinds maps recognized lowercase extensions to the asset kind they hold.
var kinds = map[string]types.Kind{
	".bgw": types.KindMusic,
	".spw": types.KindSFX,
}

// Resolve returns the absolute form of root with symlinks evaluated. Paths
// returned by Discover are under this directory.
func Resolve(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	dir, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", root, err)
	}
	return dir, nil
}

// Discover walks root, collects regular files whose extension matches a
// recognized container in any letter case, and returns absolute paths sorted
// lexicographically. A symlinked root is followed, as are links to regular
// files inside the tree. A traversal error aborts the walk and is returned.
func Discover(root string) ([]types.InputFile, error) {
	dir, err := Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var files []types.InputFile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		kind, ok := KindOf(path)
		if !ok || !isFile(path, d) {
			return nil
		}
		files = append(files, types.InputFile{Path: path, Kind: kind})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// isFile accepts regular files and symlinks whose target is one. Dangling
// links are ignored.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// KindOf reports the asset kind for path based on its extension.
func KindOf(path string) (types.Kind, bool) {
	kind, ok := kinds[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// Count returns the number of music and sound-effect files.
func Count(files []types.InputFile) (music, sfx int) {
	for _, f := range files {
		switch f.Kind {
		case types.KindMusic:
			music++
		case types.KindSFX:
			sfx++
		}
	}
	return music, sfx
}
