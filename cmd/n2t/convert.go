package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	n2t "github.com/alnah/go-n2t"
	"github.com/alnah/go-n2t/internal/config"
	"github.com/alnah/go-n2t/internal/dateutil"
	"github.com/alnah/go-n2t/internal/hints"
	"github.com/alnah/go-n2t/internal/logging"
	"github.com/alnah/go-n2t/internal/yamlutil"
)

// Sentinel errors for convert operations.
var (
	ErrNoInput = errors.New("no input specified")
	ErrNoPages = errors.New("no Notion pages found")

	// ErrBatchLanguages is returned when a code language list meets more
	// than one page; the list is positional within a single page.
	ErrBatchLanguages = errors.New("code languages need a single page")
)

// converter runs conversions for one invocation. It is reused by watch mode.
type converter struct {
	transformer CLITransformer
	logger      *slog.Logger
	post        config.PostConfig
	noPublished bool
	theme       string
	save        bool
	workers     int
	quiet       bool
	verbose     bool
	env         *Environment
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := resolveConfig(&flags.common, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(env.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	// Fail fast on a bad label format instead of once per document
	if _, err := resolveLabel(cfg.Post, flags.post.noPublished, env.Now()); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	tr, err := n2t.NewTransformer(
		n2t.WithLogger(logger),
		n2t.WithAssetPath(config.ExpandHome(cfg.Assets.BasePath)),
		n2t.WithStylesheetURL(cfg.Assets.StylesheetURL),
	)
	if err != nil {
		return fmt.Errorf("initializing transformer: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}

	c := &converter{
		transformer: tr,
		logger:      logger,
		post:        cfg.Post,
		noPublished: flags.post.noPublished,
		theme:       cfg.Notion.CodeTheme,
		save:        cfg.Output.Save,
		workers:     resolveWorkers(workers),
		quiet:       flags.common.quiet,
		verbose:     flags.common.verbose,
		env:         env,
	}

	if !flags.watch {
		return c.convertInput(ctx, inputPath)
	}

	if err := c.convertInput(ctx, inputPath); err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
	}
	return watchInput(ctx, inputPath, c)
}

// convertInput discovers the pages under inputPath and converts them.
func (c *converter) convertInput(ctx context.Context, inputPath string) error {
	jobs, closeInputs, err := discoverJobs(inputPath)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	defer closeInputs()

	if len(jobs) == 0 {
		return fmt.Errorf("%w in %s", ErrNoPages, inputPath)
	}
	if c.post.CodeLanguages != nil && len(jobs) > 1 {
		return fmt.Errorf("%w: %d pages in %s%s", ErrBatchLanguages, len(jobs), inputPath, hints.ForBatchLanguages())
	}

	label, err := resolveLabel(c.post, c.noPublished, c.env.Now())
	if err != nil {
		return err
	}

	opts := n2t.Options{
		CodeLanguages:   c.post.CodeLanguages,
		CodeTheme:       c.theme,
		PersistOutput:   c.save || !isPagePath(inputPath),
		PublishedAt:     label,
		Tolerant:        c.post.Tolerant,
		DetectLanguages: c.post.DetectLanguages,
		FooterNote:      c.post.FooterNote,
	}

	c.logger.Debug("converting", logging.Path(inputPath), logging.Count(len(jobs)), slog.Int("workers", c.workers))

	results := convertBatch(ctx, c.transformer, jobs, opts, c.workers, c.logger)
	return summarize(results, c.quiet, c.verbose, c.env)
}

// resolveConfig loads the dotenv file, the config file and N2T_* overrides.
// Precedence: environment > config file > defaults.
func resolveConfig(flags *commonFlags, env *Environment) (*config.Config, *envConfig, error) {
	dotenv, err := readDotEnv(flags.envFile)
	if err != nil {
		return nil, nil, err
	}
	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr, env.Environ(), dotenv)
	}
	envCfg := loadEnvConfig(lookupFunc(env.Getenv, dotenv))

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Post flags
	if flags.post.codeTheme != "" {
		cfg.Notion.CodeTheme = flags.post.codeTheme
	}
	if len(flags.post.languages) > 0 {
		cfg.Post.CodeLanguages = flags.post.languages
	}
	if flags.post.detectLanguages {
		cfg.Post.DetectLanguages = true
	}
	if flags.post.publishedAt != "" {
		cfg.Post.PublishedAt = flags.post.publishedAt
	}
	if flags.post.publishedFormat != "" {
		cfg.Post.PublishedFormat = flags.post.publishedFormat
	}
	if flags.post.footerNote != "" {
		cfg.Post.FooterNote = flags.post.footerNote
	}
	if flags.post.tolerant {
		cfg.Post.Tolerant = true
	}

	// Output and asset flags
	if flags.save {
		cfg.Output.Save = true
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.stylesheetURL != "" {
		cfg.Assets.StylesheetURL = flags.assets.stylesheetURL
	}

	// Logging flags
	if flags.logFormat != "" {
		cfg.Log.Format = flags.logFormat
	}
	switch {
	case flags.common.verbose:
		cfg.Log.Level = "debug"
	case flags.common.quiet:
		cfg.Log.Level = "error"
	}
}

// resolveLabel returns the publish label appended to each post.
//   - disabled → no label
//   - post.publishedAt set → literal, or "auto"/"auto:FORMAT" resolved at now
//   - otherwise post.publishedFormat rendered at now (empty format → no label)
func resolveLabel(post config.PostConfig, disabled bool, now time.Time) (string, error) {
	if disabled {
		return "", nil
	}
	if post.PublishedAt != "" {
		label, err := dateutil.ResolveDate(post.PublishedAt, now)
		if err != nil {
			return "", fmt.Errorf("post.publishedAt: %w", err)
		}
		return label, nil
	}
	if post.PublishedFormat == "" {
		return "", nil
	}
	label, err := dateutil.FormatLabel(post.PublishedFormat, now)
	if err != nil {
		return "", fmt.Errorf("post.publishedFormat: %w", err)
	}
	return label, nil
}

// resolveInputPath returns the positional input or the configured download directory.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Notion.DownloadDir != "" {
		return config.ExpandHome(cfg.Notion.DownloadDir), nil
	}
	return "", ErrNoInput
}

// runConfigCmd prints the effective configuration as YAML.
func runConfigCmd(flags *configFlags, env *Environment) error {
	cfg, _, err := resolveConfig(&flags.common, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return writeConfig(env.Stdout, cfg)
}

// writeConfig writes cfg as YAML.
func writeConfig(w io.Writer, cfg *config.Config) error {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
