// Package gamescanner discovers playable levels in the data directory.
package gamescanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LevelEntry represents a discoverable level in the levels directory
type LevelEntry struct {
	Name   string // Display name (file name without extension)
	Path   string // File path relative to the levels directory
	Format string // Lower-case extension, including the dot
}

// ScanLevels scans levelsPath for files with one of the given extensions.
// Subdirectories are scanned one level deep so a level can keep its assets
// next to it. Entries are sorted by path.
func ScanLevels(levelsPath string, extensions []string) ([]LevelEntry, error) {
	entries, err := os.ReadDir(levelsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var levels []LevelEntry
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		if entry.IsDir() {
			nested, err := os.ReadDir(filepath.Join(levelsPath, name))
			if err != nil {
				// Skip directories that can't be read
				continue
			}
			for _, n := range nested {
				if !n.IsDir() {
					if level, ok := matchLevel(filepath.Join(name, n.Name()), extensions); ok {
						levels = append(levels, level)
					}
				}
			}
			continue
		}

		if level, ok := matchLevel(name, extensions); ok {
			levels = append(levels, level)
		}
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].Path < levels[j].Path })
	return levels, nil
}

func matchLevel(rel string, extensions []string) (LevelEntry, bool) {
	ext := strings.ToLower(filepath.Ext(rel))
	for _, e := range extensions {
		if ext == e {
			base := filepath.Base(rel)
			return LevelEntry{
				Name:   strings.TrimSuffix(base, filepath.Ext(base)),
				Path:   rel,
				Format: ext,
			}, true
		}
	}
	return LevelEntry{}, false
}

// Find returns the entry whose name or path matches name.
func Find(levels []LevelEntry, name string) (LevelEntry, error) {
	for _, level := range levels {
		if level.Name == name || level.Path == name {
			return level, nil
		}
	}
	return LevelEntry{}, fmt.Errorf("level not found: %s", name)
}
