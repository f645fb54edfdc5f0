package beval

import (
	"strconv"
	"unicode/utf8"
)

// Token is a single lexeme of an input line.
type Token struct {
	// Kind is the token's type.
	Kind TokenKind
	// Col is the 0-based rune offset of the token's first character.
	Col int
	// Text is the lexeme for numbers and identifiers. For operators and
	// brackets it is the operator's symbol. It is empty for EOF.
	Text string
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// end returns the column just past the token.
func (t Token) end() int {
	return t.Col + utf8.RuneCountInString(t.Text)
}

// TokenKind is the type of a token.
type TokenKind int

const (
	// TokenUndefined is the zero TokenKind. The lexer never produces it.
	TokenUndefined TokenKind = iota
	// TokenInt is a number without a decimal point.
	TokenInt
	// TokenFloat is a number with a decimal point.
	TokenFloat
	// TokenIdent is a function name, or any other name.
	TokenIdent
	TokenAdd
	TokenSub
	TokenMul
	TokenDiv
	TokenMod
	TokenPow
	TokenLParen
	TokenRParen
	// TokenComma is recognized but never accepted by the evaluator.
	TokenComma
	// TokenEOF indicates the end of the input.
	TokenEOF
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=TokenKind -trimprefix=Token

// Operators contains the runes which are lexed as single-rune tokens. The
// kind of the rune at byte index k is operkinds[k].
const Operators = "+-*/%^(),"

var operkinds = [...]TokenKind{
	TokenAdd,
	TokenSub,
	TokenMul,
	TokenDiv,
	TokenMod,
	TokenPow,
	TokenLParen,
	TokenRParen,
	TokenComma,
}
