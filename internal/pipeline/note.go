package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Highlight placeholders use Unicode Private Use Area characters.
// They pass through goldmark unchanged and become <mark> tags afterwards,
// so raw HTML never has to be enabled.
const (
	MarkStartPlaceholder = "\uE000" // U+E000: Private Use Area start
	MarkEndPlaceholder   = "\uE001" // U+E001: Private Use Area end
)

// markClass matches Notion's orange highlight, the same one the watermark uses.
const markClass = "highlight-orange"

var (
	crlfOrCR         = regexp.MustCompile(`\r\n?`)
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

// NoteRenderer abstracts footer note Markdown to HTML conversion.
type NoteRenderer interface {
	RenderNote(ctx context.Context, markdown string) (string, error)
}

// GoldmarkNoteRenderer renders footer notes with goldmark (pure Go).
type GoldmarkNoteRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkNoteRenderer creates a renderer with GFM extensions.
func NewGoldmarkNoteRenderer() *GoldmarkNoteRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			// WithUnsafe is not set: raw HTML in a note is dropped.
		),
	)
	return &GoldmarkNoteRenderer{md: md}
}

// RenderNote converts markdown to an HTML fragment. ==text== becomes a
// Notion-style orange <mark>. Empty input renders to "".
// Supports context cancellation via goroutine + select since goldmark
// doesn't take a context.
func (r *GoldmarkNoteRenderer) RenderNote(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	source := crlfOrCR.ReplaceAllString(markdown, "\n")
	source = highlightPattern.ReplaceAllString(source, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(source), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrNoteConversion, err)}
			return
		}
		done <- result{html: convertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// convertMarkPlaceholders turns placeholder pairs into <mark> tags.
func convertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, `<mark class="`+markClass+`">`),
		MarkEndPlaceholder, "</mark>",
	)
}

// Compile-time interface check.
var _ NoteRenderer = (*GoldmarkNoteRenderer)(nil)
