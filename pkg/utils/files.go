package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceExtension is the extension of the files sharpalign processes.
const SourceExtension = ".cs"

var buildOutputDirs = []string{"bin", "obj"}

// IsSourceFile checks if a file name has the C# source extension
func IsSourceFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), SourceExtension)
}

// IsBuildOutputDir reports whether a directory name is a build output folder
func IsBuildOutputDir(name string) bool {
	for _, d := range buildOutputDirs {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return false
}

// InBuildOutput reports whether any segment of path below root is a build
// output folder
func InBuildOutput(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if IsBuildOutputDir(segment) {
			return true
		}
	}
	return false
}

// FindSourceFiles recursively finds all C# source files under root. Build
// output folders are skipped, as is every path for which skip returns true;
// a skipped directory is not descended into. skip may be nil.
func FindSourceFiles(root string, skip func(path string, isDir bool) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if IsBuildOutputDir(d.Name()) || (skip != nil && skip(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsSourceFile(d.Name()) || (skip != nil && skip(path, false)) {
			return nil
		}
		files = append(files, path)
		return nil
	})

	return files, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// FindConfigFile looks for name in the directory of start (or start itself
// when it is a directory) and every parent directory. It returns "" when no
// such file exists.
func FindConfigFile(start, name string) string {
	absPath, err := filepath.Abs(start)
	if err != nil {
		return ""
	}

	dir := absPath
	if isDir, err := IsDirectory(absPath); err != nil || !isDir {
		dir = filepath.Dir(absPath)
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
