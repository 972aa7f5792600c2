package pipeline

import (
	"fmt"

	"golang.org/x/net/html"
)

// PageBodyClass marks the element holding a Notion page's content.
const PageBodyClass = "page-body"

// SubstituteContent locates the single article and the single element
// classed page-body, then moves the page-body element into the article's
// place. The article and everything else it held are discarded.
// The page-body element is returned as the content region.
//
// Zero matches is ErrMissingElement, more than one is ErrDuplicateElement.
// doc is not modified on error.
func SubstituteContent(doc *html.Node) (*html.Node, error) {
	article, err := findUnique(doc, "article", "<article>")
	if err != nil {
		return nil, err
	}
	region, err := findUnique(doc, "."+PageBodyClass, `class="`+PageBodyClass+`"`)
	if err != nil {
		return nil, err
	}
	if region != article && Contains(region, article) {
		return nil, fmt.Errorf("%w: <article> outside %s", ErrMissingElement, `class="`+PageBodyClass+`"`)
	}

	if region == article {
		return region, nil
	}
	ReplaceNode(article, region)
	return region, nil
}

// findUnique returns the only match for selector under root.
func findUnique(root *html.Node, selector, label string) (*html.Node, error) {
	nodes := FindAll(root, selector)
	switch len(nodes) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrMissingElement, label)
	case 1:
		return nodes[0], nil
	default:
		return nil, fmt.Errorf("%w: %s (found %d)", ErrDuplicateElement, label, len(nodes))
	}
}
