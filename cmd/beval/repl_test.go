package main

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/beval"
)

// scriptReader is a lineReader that reads from a list of lines.
type scriptReader struct {
	lines   []string
	err     error
	prompts []string
	history []string
}

func (r *scriptReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) AppendHistory(line string) {
	r.history = append(r.history, line)
}

func (r *scriptReader) Close() error {
	return nil
}

func newTestSession() (*session, *strings.Builder, *strings.Builder) {
	var out, errOut strings.Builder
	s := &session{
		calc:   beval.New(),
		out:    &out,
		errOut: &errOut,
		verb:   "    %g\n",
	}
	return s, &out, &errOut
}

func TestREPL(t *testing.T) {
	s, out, errOut := newTestSession()
	lr := &scriptReader{
		lines: []string{"1+1", "   ", "4/0", "todeg(torad(90))", "exit now", "3"},
		err:   io.EOF,
	}
	require.NoError(t, s.repl(lr))
	assert.Equal(t, "    2\n    90\n", out.String())
	assert.Equal(t, "Error at column 2: division by zero\n", errOut.String())
	assert.Equal(t, []string{"1+1", "4/0", "todeg(torad(90))", "exit now"}, lr.history)
	assert.Equal(t, []string{"3"}, lr.lines)
	for _, p := range lr.prompts {
		assert.Equal(t, prompt, p)
	}
}

func TestREPLEOF(t *testing.T) {
	s, out, _ := newTestSession()
	lr := &scriptReader{lines: []string{"2*21"}, err: io.EOF}
	require.NoError(t, s.repl(lr))
	assert.Equal(t, "    42\n", out.String())
	assert.Len(t, lr.prompts, 2)
}

func TestREPLReadError(t *testing.T) {
	s, _, _ := newTestSession()
	broken := errors.New("broken terminal")
	err := s.repl(&scriptReader{err: broken})
	assert.ErrorIs(t, err, broken)
}

func TestReport(t *testing.T) {
	s, _, errOut := newTestSession()
	s.report(errors.New("oops"))
	assert.Equal(t, "Error: oops\n", errOut.String())
}

func TestScanReader(t *testing.T) {
	long := strings.Repeat("1", 100000)
	r := newScanReader(strings.NewReader("a\r\n\n" + long + "\nlast"))
	var lines []string
	for {
		line, err := r.Prompt(prompt)
		if err != nil {
			assert.ErrorIs(t, err, io.EOF)
			break
		}
		lines = append(lines, line)
	}
	assert.Equal(t, []string{"a", "", long, "last"}, lines)
	assert.NoError(t, r.Close())
}

func TestNewLineReaderNotTerminal(t *testing.T) {
	lr := newLineReader(strings.NewReader(""), "", nil)
	assert.IsType(t, &scanReader{}, lr)
}

func TestComplete(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"1+", nil},
		{"s", []string{"sin(", "sqrt("}},
		{"2*sq", []string{"2*sqrt("}},
		{"to", []string{"todeg(", "torad("}},
		{"1+x", nil},
		{"π+t", []string{"π+tan(", "π+todeg(", "π+torad("}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, complete(c.line), "%q", c.line)
	}
}
