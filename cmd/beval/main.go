package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/beval"
)

// errFailed is returned from the root command when an expression given as an
// argument could not be evaluated. Its diagnostic has already been printed.
var errFailed = errors.New("evaluation failed")

type options struct {
	debug    bool
	prec     uint
	verb     string
	noColor  bool
	history  string
	logLevel string
}

func main() {
	log.SetFlags(0)
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "beval [expression...]",
		Short: "Evaluate arithmetic expressions",
		Long: fmt.Sprintf(`beval evaluates arithmetic expressions over numbers with the operators
+ - * / %% ^ and the functions %s.

Each argument is evaluated as an expression. With no arguments, beval reads
one expression per line from standard input, with line editing and history
when standard input is a terminal. The line "exit" ends the session.`,
			strings.Join(beval.FuncNames(), ", ")),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &opts, args)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.debug, "debug", false, "print the tokens of each line before evaluating it")
	f.UintVar(&opts.prec, "prec", 0, "precision of calculations in bits, or 0 for float64")
	f.StringVar(&opts.verb, "fmt", "%g", "result formatting string")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	f.StringVar(&opts.history, "history", defaultHistory(), "history file for interactive sessions, or empty for none")
	f.StringVar(&opts.logLevel, "log-level", "warn", "minimum level of log messages")
	return cmd
}

func defaultHistory() string {
	if p := os.Getenv("BEVAL_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beval_history")
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.noColor {
		color.NoColor = true
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(opts.logLevel)); err != nil {
		return fmt.Errorf("couldn't use log level: %w", err)
	}
	if strings.Contains(fmt.Sprintf(opts.verb, beval.Result{}), "%!") {
		return fmt.Errorf("result format %q must format exactly one value", opts.verb)
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	out := cmd.OutOrStdout()
	copts := []beval.Option{beval.Prec(opts.prec), beval.Logger(logger)}
	if opts.debug {
		plain := color.NoColor
		copts = append(copts, beval.Trace(func(toks []beval.Token) { printTokens(out, toks, plain) }))
	}
	s := &session{
		calc:   beval.New(copts...),
		out:    out,
		errOut: cmd.ErrOrStderr(),
		verb:   "    " + opts.verb + "\n",
	}
	if len(args) > 0 {
		return s.args(args)
	}

	lr := newLineReader(cmd.InOrStdin(), opts.history, logger)
	defer lr.Close()
	return s.repl(lr)
}
