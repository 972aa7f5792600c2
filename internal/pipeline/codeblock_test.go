package pipeline

// Notes:
// - ChromaDetector results depend on chroma's analysers; tests only assert
//   languages with strong signatures (shebangs, <?php) and the fallback.

import (
	"errors"
	"strings"
	"testing"
)

type fixedDetector string

func (f fixedDetector) DetectLanguage(string) string { return string(f) }

func preClasses(t *testing.T, content string, languages []string, detector LanguageDetector) ([]string, error) {
	t.Helper()

	doc := mustParse(t, content)
	_, err := TagCodeBlocks(doc, languages, detector)
	var classes []string
	for _, pre := range FindAll(doc, "pre") {
		c, _ := GetAttr(pre, "class")
		classes = append(classes, c)
	}
	return classes, err
}

// ---------------------------------------------------------------------------
// TestTagCodeBlocks
// ---------------------------------------------------------------------------

func TestTagCodeBlocks(t *testing.T) {
	t.Parallel()

	threeBlocks := `<pre class="code">a</pre><pre class="code">b</pre><pre class="code">c</pre>`

	tests := []struct {
		name      string
		content   string
		languages []string
		detector  LanguageDetector
		want      []string
		wantErr   error
	}{
		{
			name:      "languages in order",
			content:   threeBlocks,
			languages: []string{"go", "sql", "bash"},
			want:      []string{"code go", "code sql", "code bash"},
		},
		{
			name:      "extra languages ignored",
			content:   `<pre class="code">a</pre>`,
			languages: []string{"go", "rust"},
			want:      []string{"code go"},
		},
		{
			name:    "nil languages default to python",
			content: threeBlocks,
			want:    []string{"code python", "code python", "code python"},
		},
		{
			name:     "nil languages use detector",
			content:  `<pre class="code">a</pre>`,
			detector: fixedDetector("ruby"),
			want:     []string{"code ruby"},
		},
		{
			name:      "supplied languages win over detector",
			content:   `<pre class="code">a</pre>`,
			languages: []string{"go"},
			detector:  fixedDetector("ruby"),
			want:      []string{"code go"},
		},
		{
			name:      "too few languages",
			content:   threeBlocks,
			languages: []string{"go"},
			want:      []string{"code", "code", "code"},
			wantErr:   ErrCodeLanguages,
		},
		{
			name:      "empty non-nil slice counts as supplied",
			content:   `<pre class="code">a</pre>`,
			languages: []string{},
			want:      []string{"code"},
			wantErr:   ErrCodeLanguages,
		},
		{
			name:      "empty slice with no blocks",
			content:   `<p>no code</p>`,
			languages: []string{},
		},
		{
			name:    "duplicate token kept",
			content: `<pre class="code python">a</pre>`,
			want:    []string{"code python python"},
		},
		{
			name:      "pre without class",
			content:   `<pre>a</pre>`,
			languages: []string{"go"},
			want:      []string{"go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := preClasses(t, tt.content, tt.languages, tt.detector)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("classes = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pre[%d] class = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestChromaDetector
// ---------------------------------------------------------------------------

func TestChromaDetector(t *testing.T) {
	t.Parallel()

	d := NewChromaDetector()

	if got := d.DetectLanguage("#!/bin/bash\necho hi\n"); got != "bash" {
		t.Errorf("DetectLanguage(bash shebang) = %q, want bash", got)
	}
	if got := d.DetectLanguage(""); got != DefaultLanguage {
		t.Errorf("DetectLanguage(empty) = %q, want %q", got, DefaultLanguage)
	}

	custom := &ChromaDetector{Fallback: "plaintext"}
	if got := custom.DetectLanguage(""); got != "plaintext" {
		t.Errorf("custom fallback = %q, want plaintext", got)
	}
}

func TestTagCodeBlocks_ErrorCounts(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `<pre>a</pre><pre>b</pre><pre>c</pre>`)
	_, err := TagCodeBlocks(doc, []string{"go"}, nil)

	var langErr *CodeLanguagesError
	if !errors.As(err, &langErr) {
		t.Fatalf("error = %v, want *CodeLanguagesError", err)
	}
	if langErr.Blocks != 3 || langErr.Languages != 1 {
		t.Errorf("counts = %d blocks, %d languages; want 3, 1", langErr.Blocks, langErr.Languages)
	}
	if !strings.Contains(err.Error(), "3 code blocks, 1 languages") {
		t.Errorf("message = %q", err)
	}
}
