package load

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultPattern selects record files under a directory argument.
const DefaultPattern = "**/*.termmap.yaml"

// ResolveFiles expands patterns to record files. Relative patterns are resolved
// against root. Supports both single-level wildcards (*) and recursive
// wildcards (**). A directory without wildcards selects every record file below
// it. Results keep pattern order and contain no duplicates.
func ResolveFiles(root string, patterns []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		paths, err := resolvePattern(root, pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}

		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				resolved = append(resolved, p)
			}
		}
	}

	return resolved, nil
}

// resolvePattern expands a single glob pattern to files.
func resolvePattern(root, pattern string) ([]string, error) {
	if !containsGlob(pattern) {
		absPath, err := absolute(root, pattern)
		if err != nil {
			return nil, err
		}

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			return []string{absPath}, nil
		}
		pattern = filepath.Join(absPath, DefaultPattern)
	}

	absPattern, err := makeAbsolutePattern(root, pattern)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(absPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob error: %w", err)
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	return matches, nil
}

// Match reports whether path, absolute or relative to root, is selected by any
// of patterns. It is used to filter watch events without touching the disk.
func Match(root string, patterns []string, path string) bool {
	path, err := absolute(root, path)
	if err != nil {
		return false
	}
	for _, pattern := range patterns {
		if !containsGlob(pattern) {
			absPattern, err := absolute(root, pattern)
			if err != nil {
				continue
			}
			if absPattern == path {
				return true
			}
			pattern = filepath.Join(absPattern, DefaultPattern)
		}
		absPattern, err := makeAbsolutePattern(root, pattern)
		if err != nil {
			continue
		}
		if ok, _ := doublestar.PathMatch(absPattern, path); ok {
			return true
		}
	}
	return false
}

// containsGlob checks if a pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func absolute(root, path string) (string, error) {
	if filepath.IsAbs(path) || root == "" {
		return filepath.Abs(path)
	}
	return filepath.Abs(filepath.Join(root, path))
}

// makeAbsolutePattern converts a relative pattern to absolute.
// Preserves glob characters in the pattern.
func makeAbsolutePattern(root, pattern string) (string, error) {
	globIdx := strings.IndexAny(pattern, "*?[{")
	if globIdx == -1 {
		return absolute(root, pattern)
	}

	// Split at the last separator before the first glob character
	dir, glob := ".", pattern
	if sep := strings.LastIndexAny(pattern[:globIdx], "/"+string(filepath.Separator)); sep >= 0 {
		dir, glob = pattern[:sep], pattern[sep+1:]
		if dir == "" {
			dir = string(filepath.Separator)
		}
	}

	absDir, err := absolute(root, dir)
	if err != nil {
		return "", err
	}

	return filepath.Join(absDir, filepath.FromSlash(glob)), nil
}
