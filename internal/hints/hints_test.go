package hints

// Notes:
// - ForMissingAsset tests swap the package-level DirExists and therefore
//   do not run in parallel.

import (
	"strings"
	"testing"
)

func TestForMissingAsset_NoDirectory(t *testing.T) {
	orig := DirExists
	defer func() { DirExists = orig }()
	DirExists = func(string) bool { return false }

	hint := ForMissingAsset("/exports/Post")

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q missing prefix", hint)
	}
	if !strings.Contains(hint, `"/exports/Post"`) {
		t.Errorf("hint %q should name the directory", hint)
	}
	if !strings.Contains(hint, "Include content: Everything") {
		t.Errorf("hint %q should explain how to export assets", hint)
	}
}

func TestForMissingAsset_DirectoryPresent(t *testing.T) {
	orig := DirExists
	defer func() { DirExists = orig }()
	DirExists = func(string) bool { return true }

	hint := ForMissingAsset("/exports/Post")

	if !strings.Contains(hint, "renamed") {
		t.Errorf("hint %q should mention renamed files", hint)
	}
}

func TestForMissingElement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"meta", "--tolerant"},
		{"style", "--tolerant"},
		{"article", "Notion HTML export"},
		{"page-body", "Notion HTML export"},
	}

	for _, tt := range tests {
		if got := ForMissingElement(tt.tag); !strings.Contains(got, tt.want) {
			t.Errorf("ForMissingElement(%q) = %q, want it to contain %q", tt.tag, got, tt.want)
		}
	}
}

func TestForCodeLanguages(t *testing.T) {
	t.Parallel()

	got := ForCodeLanguages(3, 1)
	if !strings.Contains(got, "3 code block(s)") || !strings.Contains(got, "1 language(s)") {
		t.Errorf("ForCodeLanguages(3, 1) = %q", got)
	}
}

func TestForBatchLanguages(t *testing.T) {
	t.Parallel()

	if got := ForBatchLanguages(); !strings.Contains(got, "--detect-lang") || !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("ForBatchLanguages() = %q", got)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	got := ForConfigNotFound([]string{"blog.yaml", "/home/u/.config/go-n2t/blog.yaml"})
	if !strings.Contains(got, "or create /home/u/.config/go-n2t/blog.yaml") {
		t.Errorf("ForConfigNotFound() = %q", got)
	}

	got = ForConfigNotFound(nil)
	if !strings.Contains(got, "--config") || strings.Contains(got, "or create") {
		t.Errorf("ForConfigNotFound(nil) = %q", got)
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
