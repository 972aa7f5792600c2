package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-n2t/internal/config"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// envConfig holds configuration from N2T_* variables.
// Values come from the process environment first, then the .env file.
type envConfig struct {
	ConfigPath      string   // N2T_CONFIG: config file name or path
	DownloadDir     string   // N2T_DOWNLOAD_DIR: default input directory
	CodeTheme       string   // N2T_CODE_THEME: highlight.js theme
	Languages       []string // N2T_LANGUAGES: comma-separated labels
	PublishedAt     string   // N2T_PUBLISHED_AT: label, "auto" or "auto:FORMAT"
	PublishedFormat string   // N2T_PUBLISHED_FORMAT: label layout
	FooterNote      string   // N2T_FOOTER_NOTE: Markdown note
	AssetPath       string   // N2T_ASSET_PATH: fragment override directory
	StylesheetURL   string   // N2T_STYLESHEET_URL: stylesheet link
	LogLevel        string   // N2T_LOG_LEVEL
	LogFormat       string   // N2T_LOG_FORMAT
	Save            *bool    // N2T_SAVE: persist output
	Workers         int      // N2T_WORKERS: parallel workers
}

// knownEnvVars lists valid N2T_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"N2T_CONFIG":           true,
	"N2T_DOWNLOAD_DIR":     true,
	"N2T_CODE_THEME":       true,
	"N2T_LANGUAGES":        true,
	"N2T_PUBLISHED_AT":     true,
	"N2T_PUBLISHED_FORMAT": true,
	"N2T_FOOTER_NOTE":      true,
	"N2T_ASSET_PATH":       true,
	"N2T_STYLESHEET_URL":   true,
	"N2T_LOG_LEVEL":        true,
	"N2T_LOG_FORMAT":       true,
	"N2T_SAVE":             true,
	"N2T_WORKERS":          true,
}

// readDotEnv reads KEY=VALUE pairs from path without touching the process
// environment. A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return values, nil
}

// lookupFunc returns a variable lookup that prefers the process environment
// over dotenv values, matching godotenv.Load semantics.
func lookupFunc(getenv func(string) string, dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
}

// loadEnvConfig reads every recognized N2T_* value through lookup.
// Unparseable numbers and booleans are ignored.
func loadEnvConfig(lookup func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:      lookup("N2T_CONFIG"),
		DownloadDir:     lookup("N2T_DOWNLOAD_DIR"),
		CodeTheme:       lookup("N2T_CODE_THEME"),
		PublishedAt:     lookup("N2T_PUBLISHED_AT"),
		PublishedFormat: lookup("N2T_PUBLISHED_FORMAT"),
		FooterNote:      lookup("N2T_FOOTER_NOTE"),
		AssetPath:       lookup("N2T_ASSET_PATH"),
		StylesheetURL:   lookup("N2T_STYLESHEET_URL"),
		LogLevel:        lookup("N2T_LOG_LEVEL"),
		LogFormat:       lookup("N2T_LOG_FORMAT"),
	}

	if langs := lookup("N2T_LANGUAGES"); langs != "" {
		cfg.Languages = splitList(langs)
	}

	if save := lookup("N2T_SAVE"); save != "" {
		if b, err := strconv.ParseBool(save); err == nil {
			cfg.Save = &b
		}
	}

	if workers := lookup("N2T_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized N2T_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string, dotenv map[string]string) {
	names := make([]string, 0, len(environ)+len(dotenv))
	for _, kv := range environ {
		names = append(names, strings.SplitN(kv, "=", 2)[0])
	}
	for name := range dotenv {
		names = append(names, name)
	}

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !strings.HasPrefix(name, "N2T_") || knownEnvVars[name] || seen[name] {
			continue
		}
		seen[name] = true
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with set variables.
// Precedence: CLI flags > environment > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.DownloadDir != "" {
		cfg.Notion.DownloadDir = env.DownloadDir
	}
	if env.CodeTheme != "" {
		cfg.Notion.CodeTheme = env.CodeTheme
	}
	if env.Languages != nil {
		cfg.Post.CodeLanguages = env.Languages
	}
	if env.PublishedAt != "" {
		cfg.Post.PublishedAt = env.PublishedAt
	}
	if env.PublishedFormat != "" {
		cfg.Post.PublishedFormat = env.PublishedFormat
	}
	if env.FooterNote != "" {
		cfg.Post.FooterNote = env.FooterNote
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.StylesheetURL != "" {
		cfg.Assets.StylesheetURL = env.StylesheetURL
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Save != nil {
		cfg.Output.Save = *env.Save
	}
}

// splitList splits a comma-separated list, dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
