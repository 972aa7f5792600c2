// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputSuffix is appended to the input base name when a transformed page is persisted.
const OutputSuffix = "_output"

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrTargetIsDir = errors.New("target path is a directory")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "notion" -> false (name)
//   - "./n2t.yaml" -> true (relative path)
//   - "/etc/n2t/blog.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HasExtension reports whether path ends with ext, case-insensitively.
// ext must include the leading dot.
func HasExtension(path, ext string) bool {
	return strings.EqualFold(filepath.Ext(path), ext)
}

// StripExtension returns the base name of path without its final extension.
//
//	StripExtension("/exports/My Page 1a2b.html") -> "My Page 1a2b"
func StripExtension(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SiblingDir returns the directory next to path named after its base name
// without extension. Notion stores a page's images there.
//
//	SiblingDir("/exports/Post.html") -> "/exports/Post"
func SiblingDir(path string) string {
	return filepath.Join(filepath.Dir(path), StripExtension(path))
}

// OutputPath returns the persisted output path for an input page:
// the input path with its extension replaced by "_output.html".
func OutputPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + OutputSuffix + ".html"
}

// IsOutputPath reports whether path was produced by OutputPath.
func IsOutputPath(path string) bool {
	return strings.HasSuffix(StripExtension(path), OutputSuffix)
}

// WriteFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return ErrEmptyPath
	}
	if DirExists(path) {
		return fmt.Errorf("%w: %s", ErrTargetIsDir, path)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".n2t-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, writeErr := tmpFile.Write(data); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
