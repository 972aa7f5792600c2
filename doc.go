// Package n2t converts Notion HTML exports into HTML ready to paste into a
// Tistory blog post.
//
// # Quick Start
//
// Create a transformer once and reuse it:
//
//	tr, err := n2t.NewTransformer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := tr.Transform(ctx, n2t.Source{Path: "Export/My Post 1a2b.html"}, n2t.Options{
//	    CodeLanguages: []string{"go", "sql"},
//	    PublishedAt:   "(24.05.01 10:00)에 작성된 글 입니다.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	body, _ := res.BodyHTML()
//
// # Transformation
//
// A page goes through these stages, in order:
//
//  1. Metadata strip: the first meta, title and style are removed
//  2. Code tagging: each <pre> gets a language class (default: python)
//  3. Content substitution: the page-body element replaces its <article>
//  4. Heading demotion: h3 to h4, h2 to h3, h1 to h2
//  5. Collapsible sections: every <details> is closed
//  6. Image inlining: relative <img> sources become data URIs
//  7. Injection: MathJax, highlight.js and the post stylesheet at the top of <body>
//  8. Footer: watermark, publish label and optional Markdown note
//  9. Persistence: <name>_output.html next to the source (optional)
//  10. Unwrap: the page-body element is replaced by its children
//
// # Archive Mode
//
// Pages read from an export zip are already parsed and have no asset
// directory on disk:
//
//	arc, err := n2t.OpenArchive("Export.zip")
//	defer arc.Close()
//	for _, name := range arc.Pages() {
//	    src, err := arc.Source(name)
//	    ...
//	    res, err := tr.Transform(ctx, src, n2t.Options{FromArchive: true})
//	}
//
// # Custom Fragments
//
// The injected HTML comes from html/template fragments. Override any of
// them with WithAssetPath:
//
//	assets/
//	└── templates/
//	    ├── stylesheet.html
//	    ├── highlight.html
//	    ├── mathjax.html
//	    ├── watermark.html
//	    └── published.html
//
// # Errors
//
// Failures match exported sentinels with errors.Is: ErrMissingElement and
// ErrDuplicateElement for documents that do not look like a Notion export,
// ErrAssetRead for missing images (os.ErrNotExist stays in the chain), and
// ErrCodeLanguages when fewer languages than code blocks are supplied.
//
// # Concurrency
//
// A Transformer is safe for concurrent use as long as each call works on
// its own document.
package n2t
