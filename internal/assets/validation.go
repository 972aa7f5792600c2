package assets

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxCodeThemeLength bounds a highlight.js theme name.
const MaxCodeThemeLength = 64

// ValidateAssetName checks that an asset name is safe for use as a filename.
// Returns ErrInvalidAssetName if the name is empty or contains path separators,
// dots (which could allow extension manipulation), or traversal characters.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// themePattern matches highlight.js theme names, including the base16/ subdirectory.
var themePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*(/[A-Za-z0-9][A-Za-z0-9_.-]*)?$`)

// ValidateCodeTheme checks that theme is a highlight.js theme name such as
// "atom-one-dark" or "base16/solarized-dark". Empty is valid (default theme).
func ValidateCodeTheme(theme string) error {
	if theme == "" {
		return nil
	}
	if len(theme) > MaxCodeThemeLength || !themePattern.MatchString(theme) || strings.Contains(theme, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidCodeTheme, theme)
	}
	return nil
}
