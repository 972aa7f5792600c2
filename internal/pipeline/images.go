package pipeline

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-n2t/internal/assets"
)

// ImageEncoder turns an image file into a data URI.
type ImageEncoder func(path string) (string, error)

// InlineImages replaces the src of every img under region with a data URI
// of the file it names inside assetDir, and returns the number inlined.
//
// Sources starting with "http" or "data:image/" are left alone, as are img
// elements without src. The last "/" segment of src is URL-decoded and
// resolved under assetDir; when that name is absent its NFC and NFD forms
// are tried, since macOS stores decomposed file names. A missing file
// fails with an error wrapping assets.ErrAssetRead and os.ErrNotExist.
//
// A nil encode uses assets.EncodeFile.
func InlineImages(region *html.Node, assetDir string, encode ImageEncoder) (int, error) {
	if encode == nil {
		encode = assets.EncodeFile
	}

	inlined := 0
	for _, img := range FindAll(region, "img") {
		src, ok := GetAttr(img, "src")
		if !ok || isInlineSkipped(src) {
			continue
		}

		path, err := resolveAssetPath(assetDir, src)
		if err != nil {
			return inlined, err
		}

		uri, err := encode(path)
		if err != nil {
			return inlined, fmt.Errorf("inlining %q: %w", src, err)
		}
		SetAttr(img, "src", uri)
		inlined++
	}
	return inlined, nil
}

// isInlineSkipped reports whether src is remote or already inlined.
func isInlineSkipped(src string) bool {
	return strings.HasPrefix(src, "http") || strings.HasPrefix(src, "data:image/")
}

// resolveAssetPath maps an img src to a file under assetDir.
func resolveAssetPath(assetDir, src string) (string, error) {
	name := src
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		return "", fmt.Errorf("%w: %q has no file name", assets.ErrAssetRead, src)
	}

	path := filepath.Join(assetDir, name)
	if !isPathUnderDir(path, assetDir) {
		return "", fmt.Errorf("%w: %q resolves outside %s", assets.ErrPathTraversal, src, assetDir)
	}

	return existingVariant(path, assetDir, name), nil
}

// existingVariant returns the first of path and its NFC and NFD spellings
// that exists, or path unchanged when none do.
func existingVariant(path, dir, name string) string {
	if _, err := os.Stat(path); err == nil {
		return path
	}
	for _, form := range []norm.Form{norm.NFC, norm.NFD} {
		alt := form.String(name)
		if alt == name {
			continue
		}
		candidate := filepath.Join(dir, alt)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)

	// Ensure dir ends with separator for correct prefix matching
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}

	return strings.HasPrefix(cleanPath, cleanDir)
}
