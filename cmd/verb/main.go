package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/footprint-tools/verb/internal/app"
	"github.com/footprint-tools/verb/internal/cli"
	"github.com/footprint-tools/verb/internal/completions"
	"github.com/footprint-tools/verb/internal/config"
	"github.com/footprint-tools/verb/internal/console"
	"github.com/footprint-tools/verb/internal/httpapi"
	"github.com/footprint-tools/verb/internal/usage"
)

const maintainInterval = time.Hour

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	actor      string
	addr       string
	noColor    bool
	serve      bool
	version    bool
	help       bool
}

func parseArgs(args []string) (options, []string, *pflag.FlagSet, error) {
	var opts options
	flagSet := pflag.NewFlagSet("verb", pflag.ContinueOnError)
	// Everything after the first command word belongs to the command.
	flagSet.SetInterspersed(false)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to the config file (default: $VERB_CONFIG or ~/.verbrc)")
	flagSet.StringVarP(&opts.actor, "actor", "a", "", "dispatch as this actor")
	flagSet.StringVar(&opts.addr, "addr", "", "listen address for --serve (default: http_addr)")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flagSet.BoolVar(&opts.serve, "serve", false, "serve the HTTP API")
	flagSet.BoolVarP(&opts.version, "version", "v", false, "show version")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return opts, nil, flagSet, err
	}
	return opts, flagSet.Args(), flagSet, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, rest, flagSet, err := parseArgs(args)
	if errors.Is(err, pflag.ErrHelp) || opts.help {
		printHelp(stdout, flagSet)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "verb version %s\n", app.Version)
		return 0
	}

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	overrides := env.Overrides()
	if opts.actor != "" {
		overrides["actor"] = opts.actor
	}
	if opts.addr != "" {
		overrides["http_addr"] = opts.addr
	}
	configPath := opts.configPath
	if configPath == "" {
		configPath = env.Config
	}

	a, err := app.New(app.Options{
		ConfigPath:   configPath,
		Overrides:    overrides,
		StyleEnabled: isTerminal(stdout) && !opts.noColor && !env.NoColor,
		Out:          stdout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer a.Close()

	if err := cli.Setup(a); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch {
	case opts.serve:
		return serve(a, stderr)
	case len(rest) > 0 && rest[0] == "complete":
		return complete(a, rest[1:], stdout)
	case len(rest) > 0 && rest[0] == "completions":
		return printCompletions(a, rest[1:], stdout, stderr)
	case len(rest) > 0:
		return dispatch(a, JoinArgs(rest), stdout, stderr)
	case isTerminal(stdin) && isTerminal(stdout):
		if err := console.Run(stdin, stdout, a.Runner, a.Actor(), a.Styler); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	default:
		return batch(a, stdin, stdout, stderr)
	}
}

// dispatch runs one command line and returns its exit code.
func dispatch(a *app.Application, line string, stdout, stderr io.Writer) int {
	result, err := a.Runner.Dispatch(a.Actor(), line)
	if err != nil {
		fmt.Fprintln(stderr, console.FormatError(err, a.Styler))
		return exitCode(err)
	}
	if out := console.FormatResult(result); out != "" {
		fmt.Fprintln(stdout, out)
	}
	return 0
}

// batch dispatches every non-blank line of in. The exit code is that of the
// last failure, or 0.
func batch(a *app.Application, in io.Reader, stdout, stderr io.Writer) int {
	code := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if c := dispatch(a, line, stdout, stderr); c != 0 {
			code = c
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "error: read input: %v\n", err)
		return 1
	}
	return code
}

// complete prints the candidates for the line after "--", one per line.
// Shell completion scripts call it on every tab.
func complete(a *app.Application, args []string, stdout io.Writer) int {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	out := completions.Candidates(a.Runner.Suggest(a.Actor(), strings.Join(args, " ")))
	if out != "" {
		fmt.Fprintln(stdout, out)
	}
	return 0
}

// printCompletions handles `completions [install] [shell]`.
func printCompletions(a *app.Application, args []string, stdout, stderr io.Writer) int {
	install := len(args) > 0 && args[0] == "install"
	if install {
		args = args[1:]
	}

	shell, ok := completions.DetectShell()
	if len(args) > 0 {
		var err error
		if shell, err = completions.ParseShell(args[0]); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
	} else if !ok {
		fmt.Fprintln(stderr, "error: could not detect shell, name one of: bash, zsh, fish")
		return 2
	}

	bin := completions.BinaryName()
	script, err := completions.Script(shell, bin, completions.TopLevel(a.Engine.Commands()))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	if !install {
		fmt.Fprint(stdout, script)
		return 0
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	path, err := completions.Install(home, shell, bin, script)
	if errors.Is(err, completions.ErrNoAutoInstall) {
		fmt.Fprintf(stdout, "add this line to %s:\n  %s\n", completions.RcFile(shell), completions.SourceInstructions(shell, bin))
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "installed %s completions to %s\n", shell, path)
	return 0
}

func serve(a *app.Application, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.Maintain(ctx, maintainInterval)

	addr, _ := a.Config.Get("http_addr")
	srv := httpapi.New(addr, a.Engine, serverOptions(a)...)
	fmt.Fprintf(stderr, "verb: serving on %s\n", addr)
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func serverOptions(a *app.Application) []httpapi.Option {
	actor, _ := a.Config.Get("http_actor")
	opts := []httpapi.Option{
		httpapi.WithDispatcher(a.Runner),
		httpapi.WithLogger(a.Logger.Named("http")),
		httpapi.WithDefaultActor(actor),
	}
	if trust, _ := a.Config.Get("http_trust_actor_header"); trust == "true" {
		opts = append(opts, httpapi.WithTrustedActorHeader())
	}
	return opts
}

func exitCode(err error) int {
	var ue *usage.Error
	if errors.As(err, &ue) {
		return ue.GetExitCode()
	}
	return 1
}

// JoinArgs rebuilds a command line from shell arguments, quoting the ones
// the tokenizer would otherwise split or unescape.
func JoinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\"'\\") {
			arg = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(arg) + `"`
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `verb dispatches text commands.

Usage:
  verb [flags] <command> [args...]   run one command
  verb [flags]                       interactive console (or read commands from stdin)
  verb --serve                       serve the HTTP API
  verb completions [install] [shell] print or install shell completions

Run 'verb help' to list commands.

Flags:
%s`, flagSet.FlagUsages())
}
