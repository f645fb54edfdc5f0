package beval_test

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/beval"
)

func TestCalcLine(t *testing.T) {
	c := beval.New()
	r, err := c.Line("2+3*4")
	require.NoError(t, err)
	assert.False(t, r.Empty())
	assert.Equal(t, 14.0, r.Value)
	assert.Len(t, r.Tokens, 5)
	assert.Nil(t, r.Big)
}

func TestCalcEmpty(t *testing.T) {
	c := beval.New()
	for _, line := range []string{"", "   ", "\t", "# just a comment", "   # 1.2.3 $$"} {
		r, err := c.Line(line)
		assert.NoError(t, err, "%q", line)
		assert.True(t, r.Empty(), "%q", line)
	}
}

func TestCalcExit(t *testing.T) {
	c := beval.New()
	for _, line := range []string{"exit", "  exit", "exit 1 2 $$$", "exit(", "exit # bye"} {
		_, err := c.Line(line)
		assert.ErrorIs(t, err, beval.ErrExit, "%q", line)
	}

	_, err := c.Line("exitnow")
	assert.ErrorIs(t, err, beval.ErrUnknownFunction)
	_, err = c.Line("1+exit")
	assert.ErrorIs(t, err, beval.ErrUnknownFunction)
	r, err := c.Line("# exit")
	assert.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestCalcErrors(t *testing.T) {
	c := beval.New()
	r, err := c.Line("1.2.3")
	assert.ErrorIs(t, err, beval.ErrDuplicateDecimal)
	assert.Equal(t, beval.Result{}, r)

	r, err = c.Line("$")
	assert.ErrorIs(t, err, beval.ErrUnknownOperator)
	assert.Equal(t, beval.Result{}, r)

	r, err = c.Line("4/0")
	assert.ErrorIs(t, err, beval.ErrDivisionByZero)
	assert.Equal(t, beval.Result{}, r)
	var ierr beval.InputError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, 2, ierr.Pos())
}

func TestCalcTrace(t *testing.T) {
	var got [][]beval.Token
	c := beval.New(beval.Trace(func(toks []beval.Token) { got = append(got, toks) }))

	_, err := c.Line("1+2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []beval.Token{
		{Kind: beval.TokenInt, Col: 0, Text: "1"},
		{Kind: beval.TokenAdd, Col: 1, Text: "+"},
		{Kind: beval.TokenInt, Col: 2, Text: "2"},
	}, got[0])

	// Tokens are traced even when evaluation fails.
	_, err = c.Line("4/0")
	require.Error(t, err)
	assert.Len(t, got, 2)

	for _, line := range []string{"12a", "exit", "", "# c"} {
		c.Line(line)
	}
	assert.Len(t, got, 2)
}

func TestCalcPrec(t *testing.T) {
	c := beval.New(beval.Prec(128))
	r, err := c.Line("1/3")
	require.NoError(t, err)
	require.NotNil(t, r.Big)
	assert.Equal(t, uint(128), r.Big.Prec())
	assert.Equal(t, 1.0/3, r.Value)
	assert.Equal(t, "0.3333333333", fmt.Sprintf("%.10g", r))

	_, err = c.Line("sqrt(-4)")
	assert.ErrorIs(t, err, beval.ErrDomain)
	assert.EqualError(t, err, "column 0: -4 outside domain of sqrt")
}

func TestCalcPrecOverride(t *testing.T) {
	c := beval.New(beval.Prec(256), beval.Prec(0))
	r, err := c.Line("1/3")
	require.NoError(t, err)
	assert.Nil(t, r.Big)
}

func TestResultFormat(t *testing.T) {
	c := beval.New()
	r, err := c.Line("1/4")
	require.NoError(t, err)
	assert.Equal(t, "0.25", fmt.Sprintf("%g", r))
	assert.Equal(t, "0.250", fmt.Sprintf("%.3f", r))
	assert.Equal(t, "2.500000e-01", fmt.Sprintf("%e", r))
	assert.Equal(t, "    0.25", fmt.Sprintf("%8g", r))
}

func TestCalcLogger(t *testing.T) {
	var buf strings.Builder
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := beval.New(beval.Logger(l))

	_, err := c.Line("4%0")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "tokenized")
	assert.Contains(t, buf.String(), "evaluation failed")
	assert.Contains(t, buf.String(), "modulo by zero")

	buf.Reset()
	_, err = c.Line("2^8")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "evaluated")
	assert.Contains(t, buf.String(), "value=256")
}

func TestCalcNilOption(t *testing.T) {
	assert.NotPanics(t, func() { beval.New(nil) })
}

func TestCalcStateless(t *testing.T) {
	c := beval.New()
	lines := []string{"sqrt(2+3)*4", "4/0", "1.2.3", "2^3^2", "exit", ""}
	first := make([]beval.Result, len(lines))
	firstErr := make([]error, len(lines))
	for i, line := range lines {
		first[i], firstErr[i] = c.Line(line)
	}
	var wg sync.WaitGroup
	for n := 0; n < 4; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, line := range lines {
				r, err := c.Line(line)
				assert.Equal(t, first[i], r, "%q", line)
				assert.Equal(t, firstErr[i], err, "%q", line)
			}
		}()
	}
	wg.Wait()
}
