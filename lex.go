package beval

import (
	"strings"
	"unicode"
)

type lexer struct {
	src []rune
	// pos is the index of the next rune to read, which is also its column.
	pos int
	buf strings.Builder
	eof bool
}

func lex(line string) *lexer {
	return &lexer{src: []rune(line)}
}

// readRune reads the next rune. The second result is false at the end of
// the input.
func (l *lexer) readRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	r := l.src[l.pos]
	l.pos++
	return r, true
}

// unreadRune backs up over the last rune read.
func (l *lexer) unreadRune() {
	if l.pos == 0 {
		panic("beval: unread at start of line")
	}
	l.pos--
}

// peek returns the next rune without reading it, or -1 at the end of the
// input.
func (l *lexer) peek() rune {
	if l.pos >= len(l.src) {
		return -1
	}
	return l.src[l.pos]
}

// next scans the next token from the input. At the end of the input or at a
// comment, the result is an EOF token. Once next has returned EOF or an
// error, it continues to return EOF tokens.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		if l.eof {
			return Token{Kind: TokenEOF, Col: l.pos}, nil
		}
		tok := Token{Col: l.pos}
		r, ok := l.readRune()
		if !ok {
			l.eof = true
			continue
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case r == '#':
			// The comment runs to the end of the line. Report EOF at the #.
			l.unreadRune()
			l.eof = true
			continue
		case isDigit(r):
			l.unreadRune()
			kind, err := l.scanNum()
			if err != nil {
				l.eof = true
				return Token{}, err
			}
			tok.Kind = kind
			tok.Text = l.buf.String()
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.Kind = TokenIdent
			tok.Text = l.buf.String()
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.Kind = operkinds[k]
				tok.Text = string(r)
				return tok, nil
			}
			l.eof = true
			return Token{}, &LexError{Col: tok.Col, Err: ErrUnknownOperator, Text: string(r)}
		}
	}
}

// scanNum scans digits with at most one decimal point into the buffer. A
// decimal point is part of the number only if a digit follows it.
func (l *lexer) scanNum() (TokenKind, error) {
	kind := TokenInt
	dot := -1
	for {
		r, ok := l.readRune()
		if !ok {
			return kind, nil
		}
		switch {
		case isDigit(r):
			l.buf.WriteRune(r)
		case r == '.':
			col := l.pos - 1
			if dot >= 0 {
				return TokenUndefined, &LexError{Col: col, Err: ErrDuplicateDecimal, Text: ".", First: dot}
			}
			if !isDigit(l.peek()) {
				l.unreadRune()
				return kind, nil
			}
			dot = col
			kind = TokenFloat
			l.buf.WriteRune(r)
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return TokenUndefined, &LexError{Col: l.pos - 1, Err: ErrNumberChar, Text: string(r)}
		default:
			l.unreadRune()
			return kind, nil
		}
	}
}

// scanIdent scans letters, digits, and underscores into the buffer.
func (l *lexer) scanIdent() {
	for {
		r, ok := l.readRune()
		if !ok {
			return
		}
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return
		}
	}
}

// rest scans all remaining tokens, not including EOF. On error, the result
// has no tokens.
func (l *lexer) rest(toks []Token) ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize splits a line into tokens. The result does not end with an EOF
// token. If the line contains an invalid character, the result is a nil slice
// and a *LexError describing the first one; no tokens of the line are kept.
func Tokenize(line string) ([]Token, error) {
	return lex(line).rest(nil)
}
