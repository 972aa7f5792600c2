package n2t

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-n2t/internal/assets"
	"github.com/alnah/go-n2t/internal/pipeline"
)

// DefaultCodeTheme is the highlight.js theme used when Options.CodeTheme is empty.
const DefaultCodeTheme = assets.DefaultCodeTheme

// DefaultLanguage labels code blocks when no languages are supplied.
const DefaultLanguage = pipeline.DefaultLanguage

// Options controls a single transform. The transformer never modifies it.
type Options struct {
	// CodeLanguages supplies one highlight.js class per <pre>, in document
	// order. nil means "not supplied"; an empty non-nil slice is supplied
	// and fails for any document that has code blocks.
	CodeLanguages []string

	// CodeTheme is the highlight.js theme (default: atom-one-dark).
	CodeTheme string

	// FromArchive marks Source.Document as a page read from an export zip.
	// Image inlining is skipped since the asset files are not on disk.
	FromArchive bool

	// PersistOutput writes the transformed page to <path-without-ext>_output.html.
	PersistOutput bool

	// PublishedAt is a pre-formatted label appended under the post.
	// Empty skips the label.
	PublishedAt string

	// Tolerant skips a missing meta, title or style instead of failing.
	Tolerant bool

	// DetectLanguages guesses each block's language when CodeLanguages is nil.
	DetectLanguages bool

	// FooterNote is Markdown rendered after the publish label.
	FooterNote string
}

// Validate checks theme and language values.
// Does not mutate.
func (o Options) Validate() error {
	if err := assets.ValidateCodeTheme(o.CodeTheme); err != nil {
		return convertError(err)
	}
	for i, lang := range o.CodeLanguages {
		if lang == "" || strings.ContainsAny(lang, " \t\r\n\f\"'<>") {
			return fmt.Errorf("%w: language %d is not a single class token: %q", ErrInvalidCodeLanguage, i, lang)
		}
	}
	return nil
}

// Source is the page to transform.
//
// Without FromArchive, Path names the exported .html file; images are read
// from the directory next to it named after the file. Document, when set,
// is used instead of reading Path.
//
// With FromArchive, Document is required and Path is only the logical
// location used to name persisted output.
type Source struct {
	Path     string
	Document *html.Node
}

// Result is a transformed page. Document is the same tree that was passed
// in (or parsed from Path), modified in place.
type Result struct {
	Document *html.Node

	// OutputPath is the persisted file, empty unless Options.PersistOutput.
	OutputPath string

	CodeBlocks    int // <pre> elements tagged
	ImagesInlined int // <img> sources replaced with data URIs
}

// HTML renders the whole document.
func (r *Result) HTML() (string, error) {
	return pipeline.RenderString(r.Document)
}

// BodyHTML renders the children of <body>, the part pasted into a blog post.
func (r *Result) BodyHTML() (string, error) {
	body := pipeline.FindFirst(r.Document, "body")
	if body == nil {
		return "", fmt.Errorf("%w: <body>", ErrMissingElement)
	}
	return pipeline.RenderChildren(body)
}
