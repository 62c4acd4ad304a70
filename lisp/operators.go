package lisp

import (
	"math"
)

type binaryOp func(a, b *LVal) *LVal

var langOperators = map[string]binaryOp{
	"+": operatorAdd,
	"-": operatorSub,
	"*": operatorMul,
	"/": operatorDiv,
	"%": operatorMod,
	"=": operatorEq,
	"<": operatorLT,
	">": operatorGT,
	"&": operatorAnd,
	"|": operatorOr,
}

// Operators returns the names of the binary operators.
func Operators() []string {
	return []string{"+", "-", "*", "/", "%", "=", "<", ">", "&", "|"}
}

// evalOperator evaluates both operands in args and applies the named binary
// operator to them.
func (env *LEnv) evalOperator(name string, args *LVal) *LVal {
	op, ok := langOperators[name]
	if !ok {
		return env.Errorf(ErrnoSyntax, "unknown operator: %s", name)
	}
	if len(args.Cells) != 2 {
		return berrf(name, ErrnoArity, "two operands expected (got %d)", len(args.Cells))
	}
	lerr := env.evalArgs(args)
	if lerr != nil {
		return lerr
	}
	return op(args.Cells[0], args.Cells[1])
}

func operandTypeError(name string, a, b *LVal) *LVal {
	return berrf(name, ErrnoType, "invalid operand types: %v %v", a, b)
}

// numeric applies fint when a and b are both ints and ffloat when they are
// both numeric with at least one float.
func numeric(name string, a, b *LVal, fint func(x, y int64) *LVal, ffloat func(x, y float64) *LVal) *LVal {
	if bothInt(a, b) {
		return fint(a.Int, b.Int)
	}
	if a.IsNumeric() && b.IsNumeric() {
		return ffloat(toFloat(a), toFloat(b))
	}
	return operandTypeError(name, a, b)
}

func operatorAdd(a, b *LVal) *LVal {
	if a.Type == LString && b.Type == LString {
		return String(a.Str + b.Str)
	}
	return numeric("+", a, b,
		func(x, y int64) *LVal { return Int(x + y) },
		func(x, y float64) *LVal { return Float(x + y) })
}

func operatorSub(a, b *LVal) *LVal {
	return numeric("-", a, b,
		func(x, y int64) *LVal { return Int(x - y) },
		func(x, y float64) *LVal { return Float(x - y) })
}

func operatorMul(a, b *LVal) *LVal {
	return numeric("*", a, b,
		func(x, y int64) *LVal { return Int(x * y) },
		func(x, y float64) *LVal { return Float(x * y) })
}

// Integer division truncates toward zero.  Float division follows IEEE 754
// so dividing by zero produces an infinity or NaN.
func operatorDiv(a, b *LVal) *LVal {
	return numeric("/", a, b,
		func(x, y int64) *LVal {
			if y == 0 {
				return berrf("/", ErrnoDivZero, "division by zero: %d %d", x, y)
			}
			return Int(x / y)
		},
		func(x, y float64) *LVal { return Float(x / y) })
}

func operatorMod(a, b *LVal) *LVal {
	return numeric("%", a, b,
		func(x, y int64) *LVal {
			if y == 0 {
				return berrf("%", ErrnoDivZero, "division by zero: %d %d", x, y)
			}
			return Int(x % y)
		},
		func(x, y float64) *LVal { return Float(math.Mod(x, y)) })
}

func operatorEq(a, b *LVal) *LVal {
	switch {
	case bothInt(a, b):
		return Bool(a.Int == b.Int)
	case bothString(a, b):
		return Bool(a.Str == b.Str)
	}
	return operandTypeError("=", a, b)
}

func operatorLT(a, b *LVal) *LVal {
	switch {
	case bothInt(a, b):
		return Bool(a.Int < b.Int)
	case bothString(a, b):
		return Bool(a.Str < b.Str)
	}
	return operandTypeError("<", a, b)
}

func operatorGT(a, b *LVal) *LVal {
	switch {
	case bothInt(a, b):
		return Bool(a.Int > b.Int)
	case bothString(a, b):
		return Bool(a.Str > b.Str)
	}
	return operandTypeError(">", a, b)
}

func operatorAnd(a, b *LVal) *LVal {
	if a.Type == LBool && b.Type == LBool {
		return Bool(a.Bool && b.Bool)
	}
	return operandTypeError("&", a, b)
}

func operatorOr(a, b *LVal) *LVal {
	if a.Type == LBool && b.Type == LBool {
		return Bool(a.Bool || b.Bool)
	}
	return operandTypeError("|", a, b)
}

func bothInt(a, b *LVal) bool {
	return a.Type == LInt && b.Type == LInt
}

func bothString(a, b *LVal) bool {
	return a.Type == LString && b.Type == LString
}

func toFloat(x *LVal) float64 {
	if !x.IsNumeric() {
		panic("toFloat called with non-numeric argument: " + x.String())
	}
	if x.Type == LInt {
		return float64(x.Int)
	}
	return x.Float
}
