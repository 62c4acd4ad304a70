package lisp_test

import (
	"testing"

	"github.com/bmatsuo/rlisp/elpstest"
)

func TestSpecialOp(t *testing.T) {
	tests := elpstest.TestSuite{
		{"if", elpstest.TestSequence{
			{"(if true 1 2)", "1"},
			{"(if false 1 2)", "2"},
			{"(if (= 1 1) (define x 1) (define x 2))", ""},
			{"x", "1"},
			{"(if () 1 2)", "if: condition is not a bool: ()"},
			{`(if "false" 1 2)`, "if: condition is not a bool: false"},
			{"(if true 1 2 3)", "if: three arguments expected (got 4)"},
		}},
		{"let", elpstest.TestSequence{
			{`(let () 1)`, "1"},
			{`(let ((x 1)) x)`, "1"},
			{`(let ([x 1]) x)`, "1"},
			{`(let ([x 1] [y 2]) (+ x y))`, "3"},
			{`(let ([x 0])
				(let ([x 1]
				      [y (+ x 1)])
					(+ x y)))`, "2"},
			{`(let ((1 2)) 3)`, "let: binding name is not a symbol: 1"},
			{`(let x x)`, "let: first argument is not a list: symbol"},
		}},
		{"define", elpstest.TestSequence{
			{`(define x 1)`, ""},
			{`x`, "1"},
			{`(define (f) x)`, ""},
			{`(f)`, "1"},
			{`(define () 1)`, "define: invalid definition form: ()"},
			{`(define (1 x) x)`, "define: function name is not a symbol: int"},
			{`(define (g x x) x)`, "define: duplicate formal argument: x"},
			{`(define "x" 1)`, "define: first argument is not a symbol: string"},
		}},
		{"lambda", elpstest.TestSequence{
			{`(lambda () 1)`, "(lambda () 1)"},
			{`((lambda () 1))`, "1"},
			{`((lambda (x) (* x x)) 3)`, "9"},
			{`(lambda (x) (undefined x))`, "(lambda (x) (undefined x))"},
		}},
		{"begin", elpstest.TestSequence{
			{`(begin)`, ""},
			{`(begin 1)`, "1"},
			{`(begin (define a 1) (define b 2) (+ a b))`, "3"},
			{`a`, "undefined symbol: a"},
		}},
		{"cond", elpstest.TestSequence{
			{`(cond ((= 1 2) 1) (else 2))`, "2"},
			{`(cond (else 1) ((= 1 1) 2))`, "1"},
			{`(cond ((< 1 2) (+ 1 1)) (else undefined))`, "2"},
			{`(cond 1)`, "cond: argument is not a list: int"},
			{`(cond ((= 1 2) 1))`, "no cond clause matched"},
		}},
	}
	elpstest.RunTestSuite(t, tests)
}
