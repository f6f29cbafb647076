package formatter

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ExcludedPath is one normalized exclusion entry.
type ExcludedPath struct {
	FullPath    string
	IsDirectory bool
}

func (e ExcludedPath) directoryPrefix() string {
	if strings.HasSuffix(e.FullPath, string(filepath.Separator)) {
		return e.FullPath
	}
	return e.FullPath + string(filepath.Separator)
}

// Exclusions is the set of paths a run must not touch.
type Exclusions []ExcludedPath

// NewExclusions resolves raw entries against baseDir. An entry is a
// directory when it ends with a path separator or names an existing
// directory. Blank and duplicate entries are dropped.
func NewExclusions(raw []string, baseDir string) (Exclusions, error) {
	var out Exclusions
	seen := map[string]bool{}

	for _, entry := range raw {
		if strings.TrimSpace(entry) == "" {
			continue
		}

		resolved := entry
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(baseDir, resolved)
		}
		full, err := normalizePath(resolved)
		if err != nil {
			return nil, err
		}

		key := full
		if caseInsensitivePaths() {
			key = strings.ToLower(full)
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		isDir := strings.HasSuffix(entry, "/") || strings.HasSuffix(entry, string(filepath.Separator))
		if !isDir {
			if info, err := os.Stat(full); err == nil && info.IsDir() {
				isDir = true
			}
		}
		out = append(out, ExcludedPath{FullPath: full, IsDirectory: isDir})
	}
	return out, nil
}

// Match reports whether path equals an excluded path or lies below an
// excluded directory.
func (ex Exclusions) Match(path string) bool {
	if len(ex) == 0 {
		return false
	}
	full, err := normalizePath(path)
	if err != nil {
		return false
	}

	for _, e := range ex {
		if pathsEqual(full, e.FullPath) {
			return true
		}
		if e.IsDirectory && hasPathPrefix(full, e.directoryPrefix()) {
			return true
		}
	}
	return false
}

// normalizePath returns the absolute, cleaned form of path. Clean drops
// trailing separators except on a volume root.
func normalizePath(path string) (string, error) {
	return filepath.Abs(path)
}

func caseInsensitivePaths() bool {
	return runtime.GOOS == "windows"
}

func pathsEqual(a, b string) bool {
	if caseInsensitivePaths() {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func hasPathPrefix(path, prefix string) bool {
	if len(path) < len(prefix) {
		return false
	}
	return pathsEqual(path[:len(prefix)], prefix)
}
