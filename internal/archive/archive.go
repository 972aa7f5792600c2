// Package archive reads Notion export bundles. An export zip holds one or
// more page .html files plus their asset directories; pages are parsed
// straight from the bundle without extracting it.
package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"golang.org/x/net/html"

	"github.com/alnah/go-n2t/internal/fileutil"
	"github.com/alnah/go-n2t/internal/pipeline"
)

// MaxPageSize caps how much of a single page entry is read.
const MaxPageSize = 64 << 20

// Sentinel errors for archive operations.
var (
	ErrOpenArchive   = errors.New("cannot open export archive")
	ErrEntryNotFound = errors.New("archive entry not found")
	ErrUnsafeEntry   = errors.New("archive entry escapes archive root")
	ErrNotPage       = errors.New("archive entry is not an HTML page")
	ErrPageTooLarge  = errors.New("archive page exceeds size limit")
)

// Archive is an opened export zip. Close it when done.
type Archive struct {
	path  string
	rc    *zip.ReadCloser
	files map[string]*zip.File
	bases map[string]int // page base name -> number of pages sharing it
}

// Open opens the export zip at path and indexes its entries by name.
func Open(path string) (*Archive, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenArchive, path, err)
	}

	a := &Archive{
		path:  path,
		rc:    rc,
		files: make(map[string]*zip.File, len(rc.File)),
	}
	for _, f := range rc.File {
		a.files[f.Name] = f
	}
	a.bases = make(map[string]int)
	for _, name := range a.Pages() {
		a.bases[path.Base(slashName(name))]++
	}
	return a, nil
}

// Close releases the underlying file.
func (a *Archive) Close() error {
	return a.rc.Close()
}

// Pages lists the .html entries in sorted order. Entries that would escape
// the archive root, directories, macOS resource forks and previously
// persisted *_output.html files are left out.
func (a *Archive) Pages() []string {
	var pages []string
	for name, f := range a.files {
		if f.FileInfo().IsDir() || !IsSafeName(name) {
			continue
		}
		if strings.HasPrefix(name, "__MACOSX/") {
			continue
		}
		if !fileutil.HasExtension(name, ".html") || fileutil.IsOutputPath(name) {
			continue
		}
		pages = append(pages, name)
	}
	sort.Strings(pages)
	return pages
}

// Parse reads the named page entry and parses it as HTML.
func (a *Archive) Parse(name string) (*html.Node, error) {
	if !IsSafeName(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsafeEntry, name)
	}
	f, ok := a.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, a.path)
	}
	if f.FileInfo().IsDir() || !fileutil.HasExtension(name, ".html") {
		return nil, fmt.Errorf("%w: %q", ErrNotPage, name)
	}
	if f.UncompressedSize64 > MaxPageSize {
		return nil, fmt.Errorf("%w: %q (%d bytes, max %d)", ErrPageTooLarge, name, f.UncompressedSize64, MaxPageSize)
	}

	r, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", name, err)
	}
	defer func() { _ = r.Close() }()

	doc, err := pipeline.Parse(io.LimitReader(r, MaxPageSize))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}
	return doc, nil
}

// LogicalPath returns where a page from the archive would live if it had
// been exported as a loose file next to the zip. Persisted output is
// derived from it. When several pages share a base name, the entry's
// folders are folded into the file name so each page gets its own path.
//
//	LogicalPath("/dl/Export.zip", "Export/Post 1a2b.html") -> "/dl/Post 1a2b.html"
//	LogicalPath("/dl/Export.zip", "A/Post.html") -> "/dl/A_Post.html" (B/Post.html also present)
func (a *Archive) LogicalPath(name string) string {
	clean := slashName(name)
	base := path.Base(clean)
	if a.bases[base] > 1 {
		base = strings.ReplaceAll(clean, "/", "_")
	}
	return filepath.Join(filepath.Dir(a.path), base)
}

// slashName normalizes backslash separators written by some Windows tools.
func slashName(name string) string {
	return strings.TrimSuffix(strings.ReplaceAll(name, `\`, "/"), "/")
}

// IsSafeName reports whether an entry name stays inside the archive root.
// Backslashes are treated as separators since some Windows tools write them.
func IsSafeName(name string) bool {
	clean := slashName(name)
	return clean != "" && fs.ValidPath(clean)
}
