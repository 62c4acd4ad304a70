package lisptest

import (
	"bytes"
	"testing"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/parser"
	"github.com/bmatsuo/rlisp/parser/rdparser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, reader lisp.Reader, config ...lisp.Config) *lisp.LEnv {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(reader)}, config...)
	rc := lisp.InitializeUserEnv(env, config...)
	require.NoError(t, lisp.GoError(rc))
	return env
}

// Both readers must produce programs that evaluate identically.
func TestEval_readers(t *testing.T) {
	type testexpr []struct {
		expr   string
		result string
	}
	tests := []struct {
		name string
		testexpr
	}{
		{"atoms", testexpr{
			{"3", "3"},
			{"-12", "-12"},
			{"1.5e3", "1500.0"},
			{`"a \"quoted\"\tstring"`, "a \"quoted\"\tstring"},
			{"true", "true"},
		}},
		{"arithmetic", testexpr{
			{"(+ 1 2)", "3"},
			{"(- 10 -2)", "12"},
			{"(* (+ 1 2) (- 5 1))", "12"},
			{"(+ 1 3.0)", "4.0"},
			{`(+ "hello " "world")`, "hello world"},
		}},
		{"brackets", testexpr{
			{"(let ([x 1] [y 2]) (+ x y))", "3"},
		}},
		{"comments", testexpr{
			{"; leading comment\n(+ 1 ; inner\n 1)", "2"},
		}},
		{"definitions", testexpr{
			{"(define (sq x) (* x x))", ""},
			{"(sq (sq 3))", "81"},
			{"(define xs (list 1 2 3))", ""},
			{"(cons 0 (cdr xs))", "(0 2 3)"},
		}},
		{"tail recursion", testexpr{
			{"(define (sum-n n acc) (if (= n 0) acc (sum-n (- n 1) (+ n acc))))", ""},
			{"(sum-n 10000 0)", "50005000"},
		}},
	}
	readers := []struct {
		name   string
		reader lisp.Reader
	}{
		{"rdparser", rdparser.NewReader()},
		{"parsec", parser.NewReader()},
	}
	for _, r := range readers {
		for i, test := range tests {
			env := newEnv(t, r.reader)
			for j, expr := range test.testexpr {
				result := env.LoadString(test.name, expr.expr)
				assert.Equal(t, expr.result, result.String(),
					"%s: test %d %q: expr %d", r.name, i, test.name, j)
			}
		}
	}
}

func TestEval_print(t *testing.T) {
	var buf bytes.Buffer
	env := newEnv(t, rdparser.NewReader(), lisp.WithStdout(&buf))
	v, err := lisp.Eval(`(print "hello") (print (list 1 2.5 "x")) (print 7)`, env)
	require.NoError(t, err)
	assert.True(t, v.IsVoid())
	assert.Equal(t, "hello\n(1 2.5 x)\n7\n", buf.String())
}

func TestEval_stackHeight(t *testing.T) {
	env := newEnv(t, rdparser.NewReader(), lisp.WithMaximumStackHeight(50))
	_, err := lisp.Eval(`(define (depth n) (if (= n 0) 0 (+ 1 (depth (- n 1)))))`, env)
	require.NoError(t, err)

	v, err := lisp.Eval("(depth 40)", env)
	require.NoError(t, err)
	assert.Equal(t, "40", v.String())

	_, err = lisp.Eval("(depth 60)", env)
	require.Error(t, err)
	assert.ErrorIs(t, err, lisp.ErrnoStackOverflow)
	assert.Equal(t, 0, env.Runtime.Stack.Height())

	// Tail calls do not count against the limit.
	_, err = lisp.Eval(`(define (loop n) (if (= n 0) "done" (loop (- n 1))))`, env)
	require.NoError(t, err)
	v, err = lisp.Eval("(loop 1000)", env)
	require.NoError(t, err)
	assert.Equal(t, "done", v.String())
}
