package assets

import "fmt"

// Fragment template names.
const (
	TemplateStylesheet = "stylesheet"
	TemplateHighlight  = "highlight"
	TemplateMathJax    = "mathjax"
	TemplateWatermark  = "watermark"
	TemplatePublished  = "published"
)

// DefaultCodeTheme is the highlight.js theme used when none is configured.
const DefaultCodeTheme = "atom-one-dark"

// DefaultStylesheetURL is the Notion-like stylesheet linked from every post.
const DefaultStylesheetURL = "https://rawcdn.githack.com/whquddn55/N2T/283c35a8df20927cd9582c098072ad86fb8f82ff/asset/style.css"

// FragmentSet holds the template sources injected into a post.
//
// Template data:
//   - Stylesheet: {{.StylesheetURL}}
//   - Highlight:  {{.CodeTheme}}
//   - MathJax:    none
//   - Watermark:  none
//   - Published:  {{.Label}}
type FragmentSet struct {
	Stylesheet string
	Highlight  string
	MathJax    string
	Watermark  string
	Published  string
}

// LoadFragmentSet loads every fragment template through loader.
func LoadFragmentSet(loader AssetLoader) (*FragmentSet, error) {
	set := &FragmentSet{}
	targets := []struct {
		name string
		dst  *string
	}{
		{TemplateStylesheet, &set.Stylesheet},
		{TemplateHighlight, &set.Highlight},
		{TemplateMathJax, &set.MathJax},
		{TemplateWatermark, &set.Watermark},
		{TemplatePublished, &set.Published},
	}

	for _, t := range targets {
		content, err := loader.LoadTemplate(t.name)
		if err != nil {
			return nil, fmt.Errorf("loading %s fragment: %w", t.name, err)
		}
		*t.dst = content
	}

	return set, nil
}
