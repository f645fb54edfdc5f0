package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"unicode"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/zephyrtronium/beval"
)

const prompt = "-> "

var errColor = color.New(color.FgRed)

// session prints the results of evaluating lines.
type session struct {
	calc   *beval.Calc
	out    io.Writer
	errOut io.Writer
	// verb formats a result, including indentation and newline.
	verb string
}

// line evaluates one line and prints its result or diagnostic. The returned
// error is ErrExit for the exit command and otherwise the line's error, which
// has already been reported.
func (s *session) line(line string) error {
	r, err := s.calc.Line(line)
	switch {
	case errors.Is(err, beval.ErrExit):
		return err
	case err != nil:
		s.report(err)
		return err
	case r.Empty():
		return nil
	}
	fmt.Fprintf(s.out, s.verb, r)
	return nil
}

func (s *session) report(err error) {
	var ierr beval.InputError
	if errors.As(err, &ierr) {
		errColor.Fprintf(s.errOut, "Error at column %d: %s\n", ierr.Pos(), ierr.Message())
		return
	}
	errColor.Fprintf(s.errOut, "Error: %v\n", err)
}

// args evaluates each argument as a line, stopping at exit.
func (s *session) args(args []string) error {
	failed := false
	for _, arg := range args {
		err := s.line(arg)
		if errors.Is(err, beval.ErrExit) {
			break
		}
		failed = failed || err != nil
	}
	if failed {
		return errFailed
	}
	return nil
}

// repl evaluates lines from lr until exit or end of input. Errors in lines
// are reported and do not end the session.
func (s *session) repl(lr lineReader) error {
	for {
		line, err := lr.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) != "" {
			lr.AppendHistory(line)
		}
		if errors.Is(s.line(line), beval.ErrExit) {
			return nil
		}
	}
}

// lineReader is a source of input lines. Prompt returns io.EOF at the end of
// input.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// newLineReader creates a line editor if in is a terminal and a plain line
// scanner otherwise.
func newLineReader(in io.Reader, history string, logger *slog.Logger) lineReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return newLinerReader(history, logger)
	}
	return newScanReader(in)
}

type linerReader struct {
	ln      *liner.State
	history string
	log     *slog.Logger
	sigc    chan os.Signal
}

func newLinerReader(history string, logger *slog.Logger) *linerReader {
	r := &linerReader{
		ln:      liner.NewLiner(),
		history: history,
		log:     logger,
		sigc:    make(chan os.Signal, 1),
	}
	r.ln.SetCtrlCAborts(true)
	r.ln.SetCompleter(complete)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			if _, err := r.ln.ReadHistory(f); err != nil {
				logger.Warn("couldn't read history", slog.String("file", history), slog.Any("err", err))
			}
			f.Close()
		}
	}
	signal.Notify(r.sigc, os.Interrupt, syscall.SIGTERM)
	go r.watch()
	return r
}

// watch restores the terminal and exits when the process is signaled while
// the line editor is open.
func (r *linerReader) watch() {
	if _, ok := <-r.sigc; !ok {
		return
	}
	r.ln.Close()
	os.Exit(130)
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	for {
		line, err := r.ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl-C discards the line.
			continue
		}
		return line, err
	}
}

func (r *linerReader) AppendHistory(line string) {
	r.ln.AppendHistory(line)
}

func (r *linerReader) Close() error {
	signal.Stop(r.sigc)
	close(r.sigc)
	if r.history != "" {
		f, err := os.Create(r.history)
		if err != nil {
			r.log.Warn("couldn't write history", slog.String("file", r.history), slog.Any("err", err))
		} else {
			if _, err := r.ln.WriteHistory(f); err != nil {
				r.log.Warn("couldn't write history", slog.String("file", r.history), slog.Any("err", err))
			}
			f.Close()
		}
	}
	return r.ln.Close()
}

// complete completes a function name at the end of line.
func complete(line string) []string {
	prefix := strings.TrimRightFunc(line, isIdentRune)
	word := line[len(prefix):]
	if word == "" {
		return nil
	}
	var c []string
	for _, name := range beval.FuncNames() {
		if strings.HasPrefix(name, word) {
			c = append(c, prefix+name+"(")
		}
	}
	return c
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

type scanReader struct {
	sc *bufio.Scanner
}

func newScanReader(in io.Reader) *scanReader {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 4096), 64<<20)
	return &scanReader{sc: sc}
}

func (r *scanReader) Prompt(string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (*scanReader) AppendHistory(string) {}

func (*scanReader) Close() error {
	return nil
}
