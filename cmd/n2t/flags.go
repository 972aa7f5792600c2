package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// postFlags holds per-post transformation flags.
type postFlags struct {
	codeTheme       string
	languages       []string
	detectLanguages bool
	publishedAt     string
	publishedFormat string
	noPublished     bool
	footerNote      string
	tolerant        bool
}

// assetFlags holds fragment override flags.
type assetFlags struct {
	assetPath     string
	stylesheetURL string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	post      postFlags
	assets    assetFlags
	save      bool
	workers   int
	watch     bool
	logFormat string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", DefaultEnvFile, "dotenv file with N2T_* variables")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPostFlags adds transformation flags to a FlagSet.
func addPostFlags(fs *flag.FlagSet, f *postFlags) {
	fs.StringVar(&f.codeTheme, "code-theme", "", "highlight.js theme (default: atom-one-dark)")
	fs.StringSliceVarP(&f.languages, "lang", "l", nil, "code block language, one per block (repeatable or comma list)")
	fs.BoolVar(&f.detectLanguages, "detect-lang", false, "guess code block languages when --lang is not given")
	fs.StringVar(&f.publishedAt, "published-at", "", "publish label: literal, \"auto\" or \"auto:FORMAT\"")
	fs.StringVar(&f.publishedFormat, "published-format", "", "layout of the default publish label (strftime or tokens)")
	fs.BoolVar(&f.noPublished, "no-published", false, "omit the publish label")
	fs.StringVar(&f.footerNote, "footer-note", "", "Markdown note appended under the post")
	fs.BoolVar(&f.tolerant, "tolerant", false, "skip missing meta, title or style")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with templates/ overriding built-in fragments")
	fs.StringVar(&f.stylesheetURL, "stylesheet-url", "", "stylesheet linked from every post")
}

// newConvertFlagSet builds the convert FlagSet bound to f.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.BoolVarP(&f.save, "save", "s", false, "write <name>_output.html next to each input")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.watch, "watch", false, "convert again whenever an input page changes")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")

	addCommonFlags(fs, &f.common)
	addPostFlags(fs, &f.post)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(usage) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, usage)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, usage io.Writer) (*configFlags, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &configFlags{}
	addCommonFlags(fs, &f.common)
	fs.Usage = func() { printConfigUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
