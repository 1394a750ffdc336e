package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args[1:], DefaultEnv())
	stop()
	os.Exit(code)
}

// commands lists the subcommands; anything else is an input for convert.
var commands = []string{"convert", "styles", "config", "doctor", "completion", "version", "help"}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	for _, c := range commands {
		if arg == c {
			return true
		}
	}
	return false
}

// runMain dispatches args (without the program name) and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]
	switch {
	case cmd == "-h" || cmd == "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	case cmd == "--version":
		cmd = "version"
	case !isCommand(cmd):
		cmd, rest = "convert", args
	}

	switch cmd {
	case "convert":
		return runConvertCmd(ctx, rest, env)
	case "styles":
		return report(env, runStyles(rest, env))
	case "config":
		return report(env, runConfigCmd(rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return report(env, runCompletion(rest, env))
	case "version":
		fmt.Fprintf(env.Stdout, "go-html2doc %s\n", Version)
		return ExitSuccess
	default:
		return runHelp(rest, env)
	}
}

// runConvertCmd parses convert flags, sizes the runtime and runs the batch.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	log, err := newLogger(flags.common, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}
	setMaxProcs(log)

	return report(env, runConvert(ctx, positional, flags, env, log))
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(log *slog.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Debug(fmt.Sprintf(format, args...))
	}))
}

// report prints err with its hint and maps it to an exit code.
func report(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error:", err.Error()+hintFor(err))
	return exitCodeFor(err)
}
