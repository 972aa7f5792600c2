// Package pipeline implements the tree rewrites that turn a Notion HTML
// export into a blog post body.
//
// Every stage works in place on a golang.org/x/net/html tree:
//   - Metadata strip (first meta, title and style)
//   - Code-block language tagging, optionally detected with chroma
//   - Content substitution (the page-body element replaces its article)
//   - Heading demotion and collapsible-section normalization
//   - Image inlining as data URIs
//   - Head fragment injection and footer append (html/template fragments)
//   - Footer note rendering from Markdown via goldmark
//   - Final unwrap of the content region
//
// Stage ordering, context checks and persistence are owned by the root n2t
// package. Selection goes through goquery; structural edits use the
// html.Node API directly so a node always has a single parent.
package pipeline
