package elpstest

import "testing"

func TestList(t *testing.T) {
	tests := TestSuite{
		{"list", TestSequence{
			{"(list)", "()"},
			{"(list 1 2 3)", "(1 2 3)"},
			{"(list (+ 1 1) (list 2 3) \"a\")", "(2 (2 3) a)"},
		}},
		{"car and cdr", TestSequence{
			{"(car (list 1 2 3))", "1"},
			{"(cdr (list 1 2 3))", "(2 3)"},
			{"(cdr (list 1))", "()"},
			{"(car (cdr (list 1 2 3)))", "2"},
			{"(car (list))", "car: argument is empty"},
			{"(cdr (list))", "cdr: argument is empty"},
			{"(car 1)", "car: argument is not a list: int"},
			{"(car ())", "car: argument is empty"},
		}},
		{"cons", TestSequence{
			{"(cons 1 (list))", "(1)"},
			{"(cons 1 (cons 2 (cons 3 ())))", "(1 2 3)"},
			{"(cons (list 1) (list 2))", "((1) 2)"},
			{"(cons 1 2)", "cons: second argument is not a list: int"},
		}},
		{"length and null?", TestSequence{
			{"(length (list 1 2 3))", "3"},
			{"(length ())", "0"},
			{"(null? (list))", "true"},
			{"(null? (list 1))", "false"},
			{`(length "abc")`, "length: argument is not a list: string"},
		}},
		{"list values are immutable", TestSequence{
			{"(define xs (list 1 2 3))", ""},
			{"(define ys (cons 0 xs))", ""},
			{"(cdr xs)", "(2 3)"},
			{"xs", "(1 2 3)"},
			{"ys", "(0 1 2 3)"},
		}},
		{"range", TestSequence{
			{"(range 0 5)", "(0 1 2 3 4)"},
			{"(range 0 5 2)", "(0 2 4)"},
			{"(range 5 0 -2)", "(5 3 1)"},
			{"(range 5 0)", "()"},
			{"(range 0 5 0)", "range: third argument is zero"},
			{"(range 0 1.5)", "range: second argument is not an int: float"},
			{"(length (range 0 1000))", "1000"},
			{"(range 0 5 3)", "(0 3)"},
			{"(range 5 0 -3)", "(5 2)"},
			{"(range 9223372036854775806 9223372036854775807 2)", "(9223372036854775806)"},
			{"(range 9223372036854775805 9223372036854775807 5)", "(9223372036854775805)"},
			{"(range 0 9223372036854775807)", "range: length 9223372036854775807 exceeds maximum 16777216"},
			{"(range 9223372036854775807 0 -1)", "range: length 9223372036854775807 exceeds maximum 16777216"},
		}},
		{"primitive arity", TestSequence{
			{"(car)", "car: one argument expected (got 0)"},
			{"(cons 1)", "cons: two arguments expected (got 1)"},
			{"(range 1)", "range: at least two arguments expected (got 1)"},
			{"(range 1 2 3 4)", "range: too many arguments provided (got 4)"},
		}},
		{"recursive list functions", TestSequence{
			{`(define (sum xs)
				(if (null? xs)
					0
					(+ (car xs) (sum (cdr xs)))))`, ""},
			{"(sum (list 1 2 3 4))", "10"},
			{`(define (rev xs acc)
				(if (null? xs)
					acc
					(rev (cdr xs) (cons (car xs) acc))))`, ""},
			{"(rev (range 0 5) ())", "(4 3 2 1 0)"},
		}},
	}
	RunTestSuite(t, tests)
}
