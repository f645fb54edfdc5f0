package beval

import (
	"errors"
	"math/big"
	"strconv"
)

// Lexical errors. LexError.Err is one of these.
var (
	ErrNumberChar       = errors.New("invalid character in number")
	ErrDuplicateDecimal = errors.New("duplicate decimal point")
	ErrUnknownOperator  = errors.New("unknown operator")
)

// Evaluation errors. EvalError.Err is one of these, or a *DomainError, which
// unwraps to ErrDomain.
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrModuloByZero    = errors.New("modulo by zero")
	ErrUnknownFunction = errors.New("unknown function")
	ErrMissingLParen   = errors.New("missing '(' after function name")
	ErrMissingRParen   = errors.New("missing ')'")
	ErrUnexpectedToken = errors.New("unexpected token in expression")
	ErrDomain          = errors.New("argument outside domain")
)

// ErrExit is returned by Calc.Line when the line is the exit command.
var ErrExit = errors.New("exit")

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 0-based column of the character or token that caused
	// the error.
	Pos() int
	// Message returns the description of the error without its position.
	Message() string
}

// LexError indicates an invalid character in a line. It implements
// InputError.
type LexError struct {
	// Col is the column of the invalid character.
	Col int
	// Err is the kind of error.
	Err error
	// Text is the invalid character.
	Text string
	// First is the column of the first decimal point in a number, if Err is
	// ErrDuplicateDecimal.
	First int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Message())
}

func (err *LexError) Message() string {
	switch err.Err {
	case ErrDuplicateDecimal:
		return err.Err.Error() + " (first at column " + strconv.Itoa(err.First) + ")"
	case ErrUnknownOperator:
		return err.Err.Error() + " " + err.Text
	default:
		return err.Err.Error() + ": " + err.Text
	}
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	return err.Err
}

// EvalError indicates a line that was lexically valid but could not be
// evaluated. It implements InputError.
type EvalError struct {
	// Col is the column of the token where evaluation failed.
	Col int
	// Err is the kind of error.
	Err error
	// Text is the text of the offending token, if any.
	Text string
}

func (err *EvalError) Error() string {
	return errpos(err.Col, err.Message())
}

func (err *EvalError) Message() string {
	switch {
	case err.Text == "":
		return err.Err.Error()
	case err.Err == ErrUnknownFunction:
		return err.Err.Error() + " " + err.Text
	default:
		return err.Err.Error() + ": " + err.Text
	}
}

func (err *EvalError) Pos() int {
	return err.Col
}

func (err *EvalError) Unwrap() error {
	return err.Err
}

// DomainError is an error returned when a function is called on an argument
// outside its domain during arbitrary-precision evaluation. It unwraps to
// ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument. It is nil if the argument was an
	// invalid combination of operands, like Inf-Inf.
	X *big.Float
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	if err.X == nil {
		return "invalid operands to " + err.Func
	}
	return err.X.String() + " outside domain of " + err.Func
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return "column " + strconv.Itoa(pos) + ": " + msg
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*EvalError)(nil)
)
