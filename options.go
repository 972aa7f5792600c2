package n2t

import (
	"log/slog"

	"github.com/alnah/go-n2t/internal/pipeline"
)

// Option configures a Transformer.
type Option func(*Transformer)

// transformerConfig holds construction-time settings resolved by NewTransformer.
type transformerConfig struct {
	assetPath     string
	stylesheetURL string
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transformer) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithAssetPath overrides fragments from {path}/templates/{name}.html.
// Fragments absent from path fall back to the built-in ones.
func WithAssetPath(path string) Option {
	return func(t *Transformer) {
		t.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom fragment loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(t *Transformer) {
		t.publicAssetLoader = loader
	}
}

// WithStylesheetURL replaces the Notion stylesheet linked from every post.
func WithStylesheetURL(url string) Option {
	return func(t *Transformer) {
		t.cfg.stylesheetURL = url
	}
}

// WithLanguageDetector replaces the chroma detector used by Options.DetectLanguages.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(t *Transformer) {
		if d != nil {
			t.detector = d
		}
	}
}

// LanguageDetector guesses a highlight.js language label for a code block.
type LanguageDetector = pipeline.LanguageDetector
