package rdparser

import (
	"strings"
	"testing"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"", nil},
		{"; only a comment", nil},
		{"1 2.5 -3", []string{"1", "2.5", "-3"}},
		{`"a\tb"`, []string{"a\tb"}},
		{"(+ 1 2)", []string{"(+ 1 2)"}},
		{"()", []string{"()"}},
		{"[a [b c]] (d)", []string{"(a (b c))", "(d)"}},
		{"(define (f x)\n  ; body\n  (* x x))", []string{"(define (f x) (* x x))"}},
	}
	for _, test := range tests {
		exprs, err := NewReader().Read("test", strings.NewReader(test.src))
		require.NoError(t, err, test.src)
		var got []string
		for _, expr := range exprs {
			got = append(got, expr.String())
		}
		assert.Equal(t, test.want, got, test.src)
	}
}

func TestParser_types(t *testing.T) {
	exprs, err := NewReader().Read("test", strings.NewReader(`(if true x "s" 1 1.0 null? +)`))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	var types []lisp.LType
	for _, c := range exprs[0].Cells {
		types = append(types, c.Type)
	}
	assert.Equal(t, lisp.LSExpr, exprs[0].Type)
	assert.Equal(t, []lisp.LType{
		lisp.LKeyword, lisp.LBool, lisp.LSymbol, lisp.LString,
		lisp.LInt, lisp.LFloat, lisp.LKeyword, lisp.LOperator,
	}, types)
}

func TestParser_errors(t *testing.T) {
	tests := []struct {
		src string
		msg string
	}{
		{"(+ 1 2", "test:1:1: unmatched ("},
		{"(+ 1 2))", "test:1:8: unexpected )"},
		{"(a]", "test:1:3: mismatched ] closing ( at test:1:1"},
		{"99999999999999999999", "integer literal overflows int64"},
		{`"\q"`, "invalid string literal"},
		{`"abc`, "unterminated string literal"},
	}
	for _, test := range tests {
		_, err := NewReader().Read("test", strings.NewReader(test.src))
		if assert.Error(t, err, test.src) {
			assert.Contains(t, err.Error(), test.msg, test.src)
			assert.ErrorIs(t, err, lisp.ErrnoSyntax, test.src)
		}
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		src   string
		depth int
		err   bool
	}{
		{"", 0, false},
		{"(+ 1 2)", 0, false},
		{"(define (f x)", 1, false},
		{"(let ([x 1]\n", 2, false},
		{"(let ([x 1])\n", 1, false},
		{"(a (b (c", 3, false},
		{"(a ; (b\n", 1, false},
		{`(a "(")`, 0, false},
		{"())", 0, true},
		{"(#", 1, true},
	}
	for _, test := range tests {
		depth, err := Depth("test", strings.NewReader(test.src))
		if test.err {
			assert.Error(t, err, test.src)
			continue
		}
		assert.NoError(t, err, test.src)
		assert.Equal(t, test.depth, depth, test.src)
	}
}
