package beval

import (
	"errors"
	"math/big"
)

// Grammar, from least to most binding:
//
// Sum = Term { ('+' | '-') Term }
// Term = Atom { ('*' | '/' | '%') Atom }
// Atom = '-' Atom | '+' Atom | Pow
// Pow = Primary [ '^' Atom ]
// Primary = int | float | Call
// Call = funcname '(' Sum ')'

// evaluator holds the state of evaluating one token sequence. The cursor only
// moves forward.
type evaluator[T any] struct {
	toks []Token
	pos  int
	ar   arith[T]
	// op is the token whose operation is being applied, for reporting
	// arithmetic panics.
	op Token
}

// Evaluate evaluates a token sequence in float64 arithmetic. The sequence may
// but need not end with an EOF token. Errors are *EvalError.
func Evaluate(toks []Token) (float64, error) {
	e := evaluator[float64]{toks: toks, ar: floatArith{}}
	return e.run()
}

// EvaluateBig evaluates a token sequence using arbitrary-precision arithmetic
// with prec bits of mantissa. If prec is 0, 64 is used. Errors are
// *EvalError.
func EvaluateBig(toks []Token, prec uint) (r *big.Float, err error) {
	if prec == 0 {
		prec = 64
	}
	e := evaluator[*big.Float]{toks: toks, ar: bigArith{prec: prec}}
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok {
			panic(p)
		}
		var de *DomainError
		if !errors.As(perr, &de) {
			if !errors.As(perr, &big.ErrNaN{}) {
				panic(p)
			}
			de = &DomainError{Func: e.op.Text}
		}
		r, err = nil, &EvalError{Col: e.op.Col, Err: de}
	}()
	return e.run()
}

// EvalString is a shortcut to tokenize and evaluate a line in float64.
func EvalString(line string) (float64, error) {
	toks, err := Tokenize(line)
	if err != nil {
		return 0, err
	}
	return Evaluate(toks)
}

// run evaluates the whole sequence.
func (e *evaluator[T]) run() (T, error) {
	var zero T
	x, err := e.parsesum()
	if err != nil {
		return zero, err
	}
	if tok := e.peek(); tok.Kind != TokenEOF {
		return zero, unexpected(tok)
	}
	return x, nil
}

// peek returns the token under the cursor. Past the end of the sequence, it
// returns an EOF token positioned after the last token.
func (e *evaluator[T]) peek() Token {
	if e.pos < len(e.toks) {
		return e.toks[e.pos]
	}
	if len(e.toks) == 0 {
		return Token{Kind: TokenEOF}
	}
	return Token{Kind: TokenEOF, Col: e.toks[len(e.toks)-1].end()}
}

func (e *evaluator[T]) parsesum() (T, error) {
	var zero T
	x, err := e.parseterm()
	if err != nil {
		return zero, err
	}
	for {
		tok := e.peek()
		if tok.Kind != TokenAdd && tok.Kind != TokenSub {
			return x, nil
		}
		e.pos++
		y, err := e.parseterm()
		if err != nil {
			return zero, err
		}
		e.op = tok
		if tok.Kind == TokenAdd {
			x = e.ar.add(x, y)
		} else {
			x = e.ar.sub(x, y)
		}
	}
}

func (e *evaluator[T]) parseterm() (T, error) {
	var zero T
	x, err := e.parseatom()
	if err != nil {
		return zero, err
	}
	for {
		tok := e.peek()
		switch tok.Kind {
		case TokenMul, TokenDiv, TokenMod:
		default:
			return x, nil
		}
		e.pos++
		col := e.peek().Col
		y, err := e.parseatom()
		if err != nil {
			return zero, err
		}
		e.op = tok
		switch tok.Kind {
		case TokenMul:
			x = e.ar.mul(x, y)
		case TokenDiv:
			if e.ar.zero(y) {
				return zero, &EvalError{Col: col, Err: ErrDivisionByZero}
			}
			x = e.ar.quo(x, y)
		case TokenMod:
			if e.ar.zero(y) {
				return zero, &EvalError{Col: col, Err: ErrModuloByZero}
			}
			x = e.ar.rem(x, y)
		}
	}
}

func (e *evaluator[T]) parseatom() (T, error) {
	switch tok := e.peek(); tok.Kind {
	case TokenSub:
		e.pos++
		x, err := e.parseatom()
		if err != nil {
			return x, err
		}
		e.op = tok
		return e.ar.neg(x), nil
	case TokenAdd:
		e.pos++
		return e.parseatom()
	default:
		return e.parsepow()
	}
}

func (e *evaluator[T]) parsepow() (T, error) {
	var zero T
	x, err := e.parseprimary()
	if err != nil {
		return zero, err
	}
	tok := e.peek()
	if tok.Kind != TokenPow {
		return x, nil
	}
	e.pos++
	// The exponent is an atom, so x^-y works and x^y^z is x^(y^z).
	y, err := e.parseatom()
	if err != nil {
		return zero, err
	}
	e.op = tok
	r, err := e.ar.pow(x, y)
	if err != nil {
		return zero, &EvalError{Col: tok.Col, Err: err}
	}
	return r, nil
}

func (e *evaluator[T]) parseprimary() (T, error) {
	var zero T
	switch tok := e.peek(); tok.Kind {
	case TokenInt, TokenFloat:
		x, ok := e.ar.num(tok.Text)
		if !ok {
			return zero, unexpected(tok)
		}
		e.pos++
		return x, nil
	case TokenIdent:
		return e.parsecall()
	default:
		return zero, unexpected(tok)
	}
}

// parsecall parses and applies a call of a built-in function. The cursor is
// on the function name.
func (e *evaluator[T]) parsecall() (T, error) {
	var zero T
	name := e.peek()
	fn := globalfuncs[name.Text]
	if fn == nil {
		return zero, &EvalError{Col: name.Col, Err: ErrUnknownFunction, Text: name.Text}
	}
	e.pos++
	if tok := e.peek(); tok.Kind != TokenLParen {
		return zero, &EvalError{Col: tok.Col, Err: ErrMissingLParen, Text: name.Text}
	}
	e.pos++
	x, err := e.parsesum()
	if err != nil {
		return zero, err
	}
	if tok := e.peek(); tok.Kind != TokenRParen {
		return zero, &EvalError{Col: tok.Col, Err: ErrMissingRParen}
	}
	e.pos++
	e.op = name
	r, err := e.ar.call(fn, x)
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) && de.Func == "" {
			de.Func = name.Text
		}
		return zero, &EvalError{Col: name.Col, Err: err}
	}
	return r, nil
}

// unexpected creates the error for a token that cannot appear where it is.
func unexpected(tok Token) error {
	text := tok.Text
	if tok.Kind == TokenEOF {
		text = "end of input"
	}
	return &EvalError{Col: tok.Col, Err: ErrUnexpectedToken, Text: text}
}
