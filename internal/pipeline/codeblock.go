package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
)

// DefaultLanguage labels code blocks when no languages are supplied.
const DefaultLanguage = "python"

// LanguageDetector guesses a highlight.js language label for a code block.
type LanguageDetector interface {
	DetectLanguage(code string) string
}

// ChromaDetector detects languages with chroma's lexer analysers and
// returns Fallback when no analyser claims the code.
type ChromaDetector struct {
	Fallback string
}

// NewChromaDetector creates a ChromaDetector falling back to DefaultLanguage.
func NewChromaDetector() *ChromaDetector {
	return &ChromaDetector{Fallback: DefaultLanguage}
}

// DetectLanguage returns the first alias of the best matching lexer.
func (d *ChromaDetector) DetectLanguage(code string) string {
	fallback := d.Fallback
	if fallback == "" {
		fallback = DefaultLanguage
	}
	if strings.TrimSpace(code) == "" {
		return fallback
	}

	lexer := lexers.Analyse(code)
	if lexer == nil {
		return fallback
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	if cfg.Name != "" {
		return strings.ToLower(strings.ReplaceAll(cfg.Name, " ", "-"))
	}
	return fallback
}

// TagCodeBlocks appends a language class to every pre element under root,
// in document order.
//
// A non-nil languages slice supplies one label per block; a shorter slice
// is a *CodeLanguagesError and nothing is modified. An empty non-nil slice still
// counts as supplied. With nil languages each block gets detector's guess,
// or DefaultLanguage when detector is nil. It returns the number of blocks tagged.
func TagCodeBlocks(root *html.Node, languages []string, detector LanguageDetector) (int, error) {
	blocks := FindAll(root, "pre")
	if languages != nil && len(languages) < len(blocks) {
		return 0, &CodeLanguagesError{Blocks: len(blocks), Languages: len(languages)}
	}

	for i, pre := range blocks {
		var lang string
		switch {
		case languages != nil:
			lang = languages[i]
		case detector != nil:
			lang = detector.DetectLanguage(TextContent(pre))
		default:
			lang = DefaultLanguage
		}
		AppendClass(pre, lang)
	}
	return len(blocks), nil
}

// Compile-time interface check.
var _ LanguageDetector = (*ChromaDetector)(nil)
