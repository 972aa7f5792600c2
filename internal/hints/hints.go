// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"

	"github.com/alnah/go-n2t/internal/fileutil"
)

// DirExists is swapped in tests.
var DirExists = fileutil.DirExists

// ForMissingAsset returns hints for an image that could not be inlined.
// assetDir is the directory the transformer looked in.
func ForMissingAsset(assetDir string) string {
	if !DirExists(assetDir) {
		return formatHints([]string{
			fmt.Sprintf("asset directory %q does not exist", assetDir),
			"export the page from Notion as HTML with \"Include content: Everything\" and keep the folder next to the .html file",
		})
	}
	return format("check that the image file was not renamed after export")
}

// ForMissingElement returns hints for pages lacking the expected Notion structure.
func ForMissingElement(tag string) string {
	switch tag {
	case "meta", "title", "style":
		return format("the page head looks edited; use --tolerant to skip missing head elements")
	default:
		return format("input does not look like a Notion HTML export (expected <article> with a .page-body element)")
	}
}

// ForCodeLanguages returns a hint when fewer languages than code blocks were given.
func ForCodeLanguages(blocks, languages int) string {
	return format(fmt.Sprintf("page has %d code block(s) but %d language(s) were given; pass one --lang per block or use --detect-lang", blocks, languages))
}

// ForBatchLanguages returns a hint when a language list meets several pages.
func ForBatchLanguages() string {
	return format("--lang lists one label per code block of a single page; convert pages one at a time or use --detect-lang")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-n2t/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-n2t") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the export directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
