package n2t

import (
	"github.com/alnah/go-n2t/internal/assets"
)

// Fragment template names accepted by AssetLoader.LoadTemplate.
const (
	TemplateStylesheet = assets.TemplateStylesheet
	TemplateHighlight  = assets.TemplateHighlight
	TemplateMathJax    = assets.TemplateMathJax
	TemplateWatermark  = assets.TemplateWatermark
	TemplatePublished  = assets.TemplatePublished
)

// AssetLoader loads the html/template sources of the fragments added to
// each post. Implementations return an error wrapping ErrTemplateNotFound
// for unknown names.
type AssetLoader interface {
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded fragments.
// If basePath is set, files under {basePath}/templates/ take precedence,
// with fallback to the embedded ones.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertError(err)
	}
	return content, nil
}

// Compile-time interface checks.
var (
	_ AssetLoader        = (*assetLoaderAdapter)(nil)
	_ assets.AssetLoader = AssetLoader(nil)
)
