// Package ingest discovers source bill files: a one-shot directory walk for
// batch runs, and an fsnotify watcher for the daemon.
package ingest

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/payroll-parser/constants"
)

// DirStats aggregates one discovery walk.
type DirStats struct {
	Scanned uint32
	Matched uint32
	Failed  uint32
}

// DiscoverDirectory walks root, filters by allowed extensions, skips hidden
// entries, and returns matching file paths in walk order plus aggregate
// stats. Per-file walk errors are counted, not fatal.
func DiscoverDirectory(root string) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			stats.Failed++
			return nil // continue walking
		}
		if IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	return paths, stats, err
}

// AllowedExt checks if a file extension is in the allowed set (pdf/json).
func AllowedExt(ext string) bool {
	_, ok := constants.AllowedExtensions[constants.NormalizeExt(ext)]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
