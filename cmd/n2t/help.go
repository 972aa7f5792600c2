package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: n2t <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Turn Notion HTML exports into blog posts")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'n2t help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: n2t convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn Notion HTML exports into blog post HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Page .html, directory of exports, or export .zip")
	fmt.Fprintln(w, "           (optional: defaults to notion.downloadDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A single page is printed to stdout unless --save is given.")
	fmt.Fprintln(w, "Directories and archives always write <name>_output.html files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>       Dotenv file (default: .env)")
	fmt.Fprintln(w, "  -s, --save                  Write <name>_output.html next to the input")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --watch                 Convert again when a page changes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Post:")
	fmt.Fprintln(w, "  -l, --lang <s>              Code block language, one per block in order")
	fmt.Fprintln(w, "                              (repeatable or comma list, single page only)")
	fmt.Fprintln(w, "      --detect-lang           Guess languages when --lang is not given")
	fmt.Fprintln(w, "      --code-theme <s>        highlight.js theme (default: atom-one-dark)")
	fmt.Fprintln(w, "      --published-at <s>      Label: literal, \"auto\", or \"auto:FORMAT\"")
	fmt.Fprintln(w, "      --published-format <s>  Layout of the default label")
	fmt.Fprintln(w, "                              strftime directives or YYYY/MM/DD tokens")
	fmt.Fprintln(w, "      --no-published          Omit the publish label")
	fmt.Fprintln(w, "      --footer-note <s>       Markdown note appended under the post")
	fmt.Fprintln(w, "      --tolerant              Skip missing meta, title or style")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>      Override fragments from <dir>/templates/")
	fmt.Fprintln(w, "      --stylesheet-url <url>  Stylesheet linked from every post")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing and debug logs")
	fmt.Fprintln(w, "      --log-format <s>        Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  N2T_CONFIG, N2T_DOWNLOAD_DIR, N2T_CODE_THEME, N2T_LANGUAGES,")
	fmt.Fprintln(w, "  N2T_PUBLISHED_AT, N2T_PUBLISHED_FORMAT, N2T_FOOTER_NOTE, N2T_ASSET_PATH,")
	fmt.Fprintln(w, "  N2T_STYLESHEET_URL, N2T_LOG_LEVEL, N2T_LOG_FORMAT, N2T_SAVE, N2T_WORKERS")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: n2t config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration convert would use, after the config file")
	fmt.Fprintln(w, "and N2T_* environment variables are applied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>       Dotenv file (default: .env)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: n2t version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: n2t help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
