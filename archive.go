package n2t

import (
	"github.com/alnah/go-n2t/internal/archive"
)

// Archive is an opened Notion export zip. Its pages are transformed in
// archive mode (Options.FromArchive), so images are left as they are.
type Archive struct {
	a *archive.Archive
}

// OpenArchive opens the export zip at path. Close it when done.
// Errors match ErrArchive.
func OpenArchive(path string) (*Archive, error) {
	a, err := archive.Open(path)
	if err != nil {
		return nil, convertError(err)
	}
	return &Archive{a: a}, nil
}

// Pages lists the page entries, sorted.
func (a *Archive) Pages() []string {
	return a.a.Pages()
}

// Source parses the named page and returns it ready for Transform with
// FromArchive set. Source.Path is the page's location next to the zip,
// so persisted output lands beside the archive.
func (a *Archive) Source(name string) (Source, error) {
	doc, err := a.a.Parse(name)
	if err != nil {
		return Source{}, convertError(err)
	}
	return Source{Path: a.a.LogicalPath(name), Document: doc}, nil
}

// Close releases the archive file.
func (a *Archive) Close() error {
	return a.a.Close()
}
