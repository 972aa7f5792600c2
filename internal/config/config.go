package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-n2t/internal/assets"
	"github.com/alnah/go-n2t/internal/dateutil"
	"github.com/alnah/go-n2t/internal/fileutil"
	"github.com/alnah/go-n2t/internal/logging"
	"github.com/alnah/go-n2t/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxThemeLength    = assets.MaxCodeThemeLength
	MaxLanguageLength = 32  // highlight.js language alias
	MaxLanguages      = 500 // code blocks per post
	MaxFormatLength   = dateutil.MaxDateFormatLength
	MaxLabelLength    = 200 // rendered publish label
	MaxFooterLength   = 4000
)

// DefaultCodeTheme is the highlight.js theme used when none is configured.
const DefaultCodeTheme = assets.DefaultCodeTheme

// DefaultDownloadDir is where exported pages are looked up when no input is given.
const DefaultDownloadDir = "~/.n2t"

// languagePattern matches a single class token.
var languagePattern = regexp.MustCompile(`^[A-Za-z0-9_+#.-]+$`)

// Config holds all configuration for post conversion.
type Config struct {
	Notion NotionConfig `yaml:"notion"`
	Post   PostConfig   `yaml:"post"`
	Output OutputConfig `yaml:"output"`
	Assets AssetsConfig `yaml:"assets"`
	Log    LogConfig    `yaml:"log"`
}

// NotionConfig describes where exports live and how code is themed.
type NotionConfig struct {
	DownloadDir string `yaml:"downloadDir"` // Default input directory ("~" expanded)
	CodeTheme   string `yaml:"codeTheme"`   // highlight.js theme (default: atom-one-dark)
}

// PostConfig defines per-post transformation options.
type PostConfig struct {
	CodeLanguages   []string `yaml:"codeLanguages"`   // One label per <pre>, in document order
	DetectLanguages bool     `yaml:"detectLanguages"` // Guess labels when codeLanguages is empty
	PublishedAt     string   `yaml:"publishedAt"`     // Literal label, "auto" or "auto:FORMAT"
	PublishedFormat string   `yaml:"publishedFormat"` // Layout used for "auto" (strftime or tokens)
	FooterNote      string   `yaml:"footerNote"`      // Markdown appended under the post
	Tolerant        bool     `yaml:"tolerant"`        // Skip missing meta/title/style
}

// OutputConfig defines output persistence options.
type OutputConfig struct {
	Save bool `yaml:"save"` // Write <name>_output.html next to the input
}

// AssetsConfig defines fragment overrides.
type AssetsConfig struct {
	BasePath      string `yaml:"basePath"`      // Empty = use embedded fragments
	StylesheetURL string `yaml:"stylesheetURL"` // Empty = built-in Notion stylesheet
}

// LogConfig defines structured logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("notion.downloadDir", c.Notion.DownloadDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("notion.codeTheme", c.Notion.CodeTheme, MaxThemeLength); err != nil {
		return err
	}
	if err := assets.ValidateCodeTheme(c.Notion.CodeTheme); err != nil {
		return fmt.Errorf("%w: notion.codeTheme: %v", ErrInvalidValue, err)
	}

	if len(c.Post.CodeLanguages) > MaxLanguages {
		return fmt.Errorf("%w: post.codeLanguages (%d entries, max %d)", ErrFieldTooLong, len(c.Post.CodeLanguages), MaxLanguages)
	}
	for i, lang := range c.Post.CodeLanguages {
		field := fmt.Sprintf("post.codeLanguages[%d]", i)
		if err := validateFieldLength(field, lang, MaxLanguageLength); err != nil {
			return err
		}
		if !languagePattern.MatchString(lang) {
			return fmt.Errorf("%w: %s %q (must be a single class token)", ErrInvalidValue, field, lang)
		}
	}
	if err := validateFieldLength("post.publishedAt", c.Post.PublishedAt, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength("post.publishedFormat", c.Post.PublishedFormat, MaxFormatLength); err != nil {
		return err
	}
	if err := validateFieldLength("post.footerNote", c.Post.FooterNote, MaxFooterLength); err != nil {
		return err
	}

	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.stylesheetURL", c.Assets.StylesheetURL, MaxURLLength); err != nil {
		return err
	}
	if c.Assets.StylesheetURL != "" && !fileutil.IsURL(c.Assets.StylesheetURL) {
		return fmt.Errorf("%w: assets.stylesheetURL %q (must start with http:// or https://)", ErrInvalidValue, c.Assets.StylesheetURL)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q (must be text or json)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Notion: NotionConfig{
			DownloadDir: DefaultDownloadDir,
			CodeTheme:   DefaultCodeTheme,
		},
		Post: PostConfig{
			PublishedFormat: dateutil.DefaultLabelFormat,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then ~/.config/go-n2t/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-n2t", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing candidate from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
