package beval

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
)

// Calc evaluates input lines one at a time. A Calc holds only its options, so
// nothing carries over from one line to the next, and it is safe to use
// concurrently.
type Calc struct {
	prec  uint
	trace func([]Token)
	log   *slog.Logger
}

// Option is an option used when creating a Calc.
type Option interface {
	calcOption()
}

type (
	precopt  uint
	traceopt func([]Token)
	logopt   struct{ l *slog.Logger }
)

func (precopt) calcOption()  {}
func (traceopt) calcOption() {}
func (logopt) calcOption()   {}

// Prec sets the precision of calculations in bits. With precision 0, the
// default, lines are evaluated in float64.
func Prec(prec uint) Option {
	return precopt(prec)
}

// Trace sets a function to receive the tokens of each non-empty line before
// the line is evaluated.
func Trace(f func([]Token)) Option {
	return traceopt(f)
}

// Logger sets the logger for per-line diagnostics. By default, nothing is
// logged.
func Logger(l *slog.Logger) Option {
	return logopt{l}
}

// New creates a Calc. Later options override earlier ones.
func New(opts ...Option) *Calc {
	c := Calc{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			c.prec = uint(opt)
		case traceopt:
			c.trace = opt
		case logopt:
			if opt.l != nil {
				c.log = opt.l
			}
		default:
			panic("beval: unknown option type")
		}
	}
	return &c
}

// Result is the result of evaluating one line.
type Result struct {
	// Tokens is the line's token sequence.
	Tokens []Token
	// Value is the value of the line in float64. If the Calc was created
	// with a nonzero Prec, it is Big rounded to float64.
	Value float64
	// Big is the value of the line in arbitrary precision, or nil if the Calc
	// evaluates in float64.
	Big *big.Float
}

// Empty reports whether the line had no tokens, and hence no value.
func (r Result) Empty() bool {
	return len(r.Tokens) == 0
}

// Format implements fmt.Formatter, formatting Big if it is set and Value
// otherwise.
func (r Result) Format(s fmt.State, verb rune) {
	if r.Big != nil {
		r.Big.Format(s, verb)
		return
	}
	fmt.Fprintf(s, fmt.FormatString(s, verb), r.Value)
}

// Line tokenizes and evaluates one line. If the first token of the line is
// "exit", the result is ErrExit, regardless of what follows. A line with no
// tokens has an empty result and no error. Otherwise, errors are *LexError
// or *EvalError.
func (c *Calc) Line(line string) (Result, error) {
	l := lex(line)
	first, err := l.next()
	if err != nil {
		c.log.Debug("lex failed", slog.Any("err", err))
		return Result{}, err
	}
	switch {
	case first.Kind == TokenEOF:
		return Result{}, nil
	case first.Kind == TokenIdent && first.Text == "exit":
		return Result{}, ErrExit
	}
	toks, err := l.rest([]Token{first})
	if err != nil {
		c.log.Debug("lex failed", slog.Any("err", err))
		return Result{}, err
	}
	c.log.Debug("tokenized", slog.Int("tokens", len(toks)))
	if c.trace != nil {
		c.trace(toks)
	}
	r := Result{Tokens: toks}
	if c.prec == 0 {
		r.Value, err = Evaluate(toks)
	} else {
		r.Big, err = EvaluateBig(toks, c.prec)
		if err == nil {
			r.Value, _ = r.Big.Float64()
		}
	}
	if err != nil {
		c.log.Debug("evaluation failed", slog.Any("err", err))
		return Result{}, err
	}
	c.log.Debug("evaluated", slog.Float64("value", r.Value))
	return r, nil
}
