// Package assets provides the HTML fragments injected into published posts
// and the data-URI helpers used to inline images.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in fragments)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom directory first and falls back to the
// embedded fragment when a template is absent, so a user can override only
// the watermark and keep the default head injection.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    ├── stylesheet.html   # post stylesheet <link>
//	    ├── highlight.html    # highlight.js stylesheet + script
//	    ├── mathjax.html      # MathJax config + library
//	    ├── watermark.html    # attribution appended to every post
//	    └── published.html    # publish timestamp paragraph
//
// Templates are html/template sources; see FragmentSet for the data each
// one receives.
//
// # Data URIs
//
// EncodeFile turns an image on disk into a data:image/jpeg;base64 URI and
// DecodeDataURI reverses it into a seekable reader for mail attachments.
package assets
