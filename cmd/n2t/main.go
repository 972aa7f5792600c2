package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognized subcommand.
var ErrUnknownCommand = errors.New("unknown command")

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand and returns the process exit code.
func runMain(args []string, env *Environment) int {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := run(ctx, args[1], args[2:], env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, formatError(err))
	}
	return exitCodeFor(err)
}

// run executes a single subcommand.
func run(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case "convert":
		flags, positional, err := parseConvertFlags(args, env.Stderr)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return runConvert(ctx, positional, flags, env)
	case "config":
		flags, err := parseConfigFlags(args, env.Stderr)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return runConfigCmd(flags, env)
	case "completion":
		return runCompletion(args, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "n2t %s\n", Version)
		return nil
	case "help", "-h", "--help":
		return runHelp(args, env)
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}
