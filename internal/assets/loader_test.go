package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTemplate creates {dir}/templates/{name}.html.
func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()

	tmplDir := filepath.Join(dir, "templates")
	if err := os.MkdirAll(tmplDir, 0o755); err != nil {
		t.Fatalf("failed to create templates dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmplDir, name+".html"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateAssetName
// ---------------------------------------------------------------------------

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "watermark", false},
		{"hyphenated", "my-watermark", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot", "watermark.html", true},
		{"traversal", "..", true},
		{"null byte", "a\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error = %v, want ErrInvalidAssetName", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader
// ---------------------------------------------------------------------------

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	for _, name := range []string{TemplateStylesheet, TemplateHighlight, TemplateMathJax, TemplateWatermark, TemplatePublished} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, err := loader.LoadTemplate(name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", name, err)
			}
			if strings.TrimSpace(content) == "" {
				t.Errorf("LoadTemplate(%q) returned empty content", name)
			}
		})
	}

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("nonexistent")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("../watermark")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedTemplates_Content(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name string
		want []string
	}{
		{TemplateHighlight, []string{"highlight.js/11.7.0/styles/{{.CodeTheme}}.min.css", "hljs.initHighlightingOnLoad();"}},
		{TemplateMathJax, []string{"MathJax = {", "mathjax@3/es5/tex-chtml.js"}},
		{TemplateWatermark, []string{`<mark class="highlight-orange">`, "https://github.com/jmjeon94/N2T"}},
		{TemplatePublished, []string{`data-ke-size="size14"`, "{{.Label}}"}},
		{TemplateStylesheet, []string{`rel="stylesheet"`, "{{.StylesheetURL}}"}},
	}

	for _, tt := range tests {
		content, err := loader.LoadTemplate(tt.name)
		if err != nil {
			t.Fatalf("LoadTemplate(%q) error = %v", tt.name, err)
		}
		for _, want := range tt.want {
			if !strings.Contains(content, want) {
				t.Errorf("%s template missing %q", tt.name, want)
			}
		}
	}

	mathjax, _ := loader.LoadTemplate(TemplateMathJax)
	if strings.Index(mathjax, "MathJax = {") > strings.Index(mathjax, "tex-chtml.js") {
		t.Error("MathJax configuration must precede the library script")
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	t.Run("loads existing template", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTemplate(t, dir, "watermark", "<p>custom</p>")

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		got, err := loader.LoadTemplate("watermark")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if got != "<p>custom</p>" {
			t.Errorf("LoadTemplate() = %q, want %q", got, "<p>custom</p>")
		}
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.LoadTemplate("watermark")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("symlink escaping base path", func(t *testing.T) {
		t.Parallel()

		outside := t.TempDir()
		secret := filepath.Join(outside, "secret.html")
		if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Symlink(secret, filepath.Join(dir, "templates", "watermark.html")); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}

		loader, err := NewFilesystemLoader(dir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		_, err = loader.LoadTemplate("watermark")
		if !errors.Is(err, ErrPathTraversal) {
			t.Errorf("error = %v, want ErrPathTraversal", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestAssetResolver
// ---------------------------------------------------------------------------

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("invalid custom path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTemplate(t, dir, "watermark", "<p>mine</p>")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("expected custom loader")
	}

	got, err := resolver.LoadTemplate("watermark")
	if err != nil || got != "<p>mine</p>" {
		t.Errorf("custom watermark = %q, %v", got, err)
	}

	got, err = resolver.LoadTemplate("mathjax")
	if err != nil {
		t.Fatalf("fallback LoadTemplate() error = %v", err)
	}
	if !strings.Contains(got, "MathJax") {
		t.Errorf("fallback mathjax = %q, want embedded content", got)
	}

	_, err = resolver.LoadTemplate("bad.name")
	if !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("invalid name error = %v, want ErrInvalidAssetName (no fallback)", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadFragmentSet
// ---------------------------------------------------------------------------

type failingLoader struct{ missing string }

func (f failingLoader) LoadTemplate(name string) (string, error) {
	if name == f.missing {
		return "", ErrTemplateNotFound
	}
	return "<p>" + name + "</p>", nil
}

func TestLoadFragmentSet(t *testing.T) {
	t.Parallel()

	t.Run("embedded", func(t *testing.T) {
		t.Parallel()

		set, err := LoadFragmentSet(NewEmbeddedLoader())
		if err != nil {
			t.Fatalf("LoadFragmentSet() error = %v", err)
		}
		if set.Stylesheet == "" || set.Highlight == "" || set.MathJax == "" || set.Watermark == "" || set.Published == "" {
			t.Errorf("LoadFragmentSet() left empty fragments: %+v", set)
		}
	})

	t.Run("missing fragment names the template", func(t *testing.T) {
		t.Parallel()

		_, err := LoadFragmentSet(failingLoader{missing: TemplatePublished})
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("error = %v, want ErrTemplateNotFound", err)
		}
		if !strings.Contains(err.Error(), "published") {
			t.Errorf("error %q should name the fragment", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidateCodeTheme
// ---------------------------------------------------------------------------

func TestValidateCodeTheme(t *testing.T) {
	t.Parallel()

	tests := []struct {
		theme   string
		wantErr bool
	}{
		{"", false},
		{"atom-one-dark", false},
		{"base16/solarized-dark", false},
		{"a11y-dark", false},
		{"../secret", true},
		{"a/b/c", true},
		{"x..y", true},
		{`dark" onload="x`, true},
		{strings.Repeat("a", MaxCodeThemeLength+1), true},
	}

	for _, tt := range tests {
		err := ValidateCodeTheme(tt.theme)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateCodeTheme(%q) error = %v, wantErr %v", tt.theme, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidCodeTheme) {
			t.Errorf("error = %v, want ErrInvalidCodeTheme", err)
		}
	}
}
