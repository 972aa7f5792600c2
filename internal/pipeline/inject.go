package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-n2t/internal/assets"
)

// HeadData holds the values rendered into the head fragments.
type HeadData struct {
	StylesheetURL string // empty uses assets.DefaultStylesheetURL
	CodeTheme     string // empty uses assets.DefaultCodeTheme
}

// FooterData holds the values appended under the content region.
type FooterData struct {
	Label    string // publish label, escaped; empty skips the paragraph
	NoteHTML string // pre-rendered HTML appended last; empty skips it
}

// HeadInjector defines the contract for adding stylesheet and script
// fragments to a document.
type HeadInjector interface {
	InjectHead(ctx context.Context, doc *html.Node, data *HeadData) error
}

// FooterInjector defines the contract for appending the footer to the
// content region.
type FooterInjector interface {
	AppendFooter(ctx context.Context, region *html.Node, data *FooterData) error
}

// FragmentInjection renders the fragment templates of an assets.FragmentSet
// and splices them into documents. Templates are parsed once; a
// FragmentInjection is safe for concurrent use.
type FragmentInjection struct {
	stylesheet *template.Template
	highlight  *template.Template
	mathjax    *template.Template
	watermark  *template.Template
	published  *template.Template
}

// NewFragmentInjection parses every fragment of set.
// Returns error if a template cannot be parsed.
func NewFragmentInjection(set *assets.FragmentSet) (*FragmentInjection, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: nil fragment set", ErrFragmentRender)
	}

	f := &FragmentInjection{}
	targets := []struct {
		name string
		src  string
		dst  **template.Template
	}{
		{assets.TemplateStylesheet, set.Stylesheet, &f.stylesheet},
		{assets.TemplateHighlight, set.Highlight, &f.highlight},
		{assets.TemplateMathJax, set.MathJax, &f.mathjax},
		{assets.TemplateWatermark, set.Watermark, &f.watermark},
		{assets.TemplatePublished, set.Published, &f.published},
	}
	for _, t := range targets {
		tmpl, err := template.New(t.name).Parse(t.src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", t.name, err)
		}
		*t.dst = tmpl
	}

	return f, nil
}

// InjectHead inserts the stylesheet, highlight and MathJax fragments at
// position 0 of <body>, one after the other. Each insertion goes in front
// of the previous one, so the body ends up starting with MathJax, then
// highlight, then the stylesheet, then the original content.
// All fragments are rendered before the document is touched.
func (f *FragmentInjection) InjectHead(ctx context.Context, doc *html.Node, data *HeadData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := FindFirst(doc, "body")
	if body == nil {
		return fmt.Errorf("%w: <body>", ErrMissingElement)
	}

	d := HeadData{StylesheetURL: assets.DefaultStylesheetURL, CodeTheme: assets.DefaultCodeTheme}
	if data != nil {
		if data.StylesheetURL != "" {
			d.StylesheetURL = data.StylesheetURL
		}
		if data.CodeTheme != "" {
			d.CodeTheme = data.CodeTheme
		}
	}

	var fragments [][]*html.Node
	for _, tmpl := range []*template.Template{f.stylesheet, f.highlight, f.mathjax} {
		nodes, err := renderFragment(tmpl, d)
		if err != nil {
			return err
		}
		fragments = append(fragments, nodes)
	}

	for _, nodes := range fragments {
		Prepend(body, nodes)
	}
	return nil
}

// AppendFooter appends the watermark to region, then the publish label
// when data.Label is set, then data.NoteHTML when set.
func (f *FragmentInjection) AppendFooter(ctx context.Context, region *html.Node, data *FooterData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	watermark, err := renderFragment(f.watermark, nil)
	if err != nil {
		return err
	}
	tail := [][]*html.Node{watermark}

	if data != nil && data.Label != "" {
		label, err := renderFragment(f.published, struct{ Label string }{data.Label})
		if err != nil {
			return err
		}
		tail = append(tail, label)
	}

	if data != nil && strings.TrimSpace(data.NoteHTML) != "" {
		note, err := ParseFragment(data.NoteHTML)
		if err != nil {
			return fmt.Errorf("%w: footer note: %v", ErrFragmentRender, err)
		}
		tail = append(tail, note)
	}

	for _, nodes := range tail {
		AppendAll(region, nodes)
	}
	return nil
}

// renderFragment executes tmpl and parses the result into body-level nodes.
func renderFragment(tmpl *template.Template, data any) ([]*html.Node, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFragmentRender, tmpl.Name(), err)
	}

	nodes, err := ParseFragment(strings.TrimSpace(buf.String()))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFragmentRender, tmpl.Name(), err)
	}
	return nodes, nil
}

// Compile-time interface checks.
var (
	_ HeadInjector   = (*FragmentInjection)(nil)
	_ FooterInjector = (*FragmentInjection)(nil)
)
