package pipeline

import (
	"fmt"

	"golang.org/x/net/html"
)

// MetadataTags lists the elements removed from an export, in removal order.
var MetadataTags = []string{"meta", "title", "style"}

// StripMetadata removes the first meta, title and style element of doc.
// A missing element is ErrMissingElement naming the tag, unless tolerant
// is set, in which case it is skipped. The tags actually removed are returned.
//
// Every tag is checked before anything is removed, so a strict failure
// leaves doc untouched.
func StripMetadata(doc *html.Node, tolerant bool) ([]string, error) {
	found := make([]*html.Node, len(MetadataTags))
	for i, tag := range MetadataTags {
		found[i] = FindFirst(doc, tag)
		if found[i] == nil && !tolerant {
			return nil, fmt.Errorf("%w: <%s>", ErrMissingElement, tag)
		}
	}

	removed := make([]string, 0, len(MetadataTags))
	for i, n := range found {
		if n == nil {
			continue
		}
		Detach(n)
		removed = append(removed, MetadataTags[i])
	}
	return removed, nil
}
