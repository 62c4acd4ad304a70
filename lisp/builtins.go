package lisp

import (
	"fmt"
)

// VarArgSymbol marks the start of optional arguments in the formals of a
// builtin.
const VarArgSymbol = "&rest"

// LBuiltin is a function that performs executes a lisp function.
type LBuiltin func(env *LEnv, args *LVal) *LVal

type langBuiltin struct {
	name    string
	formals []string
	fun     LBuiltin
}

// Name returns the keyword which invokes the builtin.
func (fun *langBuiltin) Name() string {
	return fun.name
}

// Formals returns the formal argument names of the builtin.
func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) checkArity(args *LVal) *LVal {
	n := len(args.Cells)
	for i, formal := range fun.formals {
		if formal != VarArgSymbol {
			continue
		}
		if n < i {
			return berrf(fun.name, ErrnoArity, "at least %s expected (got %d)", pluralArgs(i), n)
		}
		return nil
	}
	if n != len(fun.formals) {
		return berrf(fun.name, ErrnoArity, "%s expected (got %d)", pluralArgs(len(fun.formals)), n)
	}
	return nil
}

var argCountWords = []string{"zero", "one", "two", "three"}

func pluralArgs(n int) string {
	word := fmt.Sprint(n)
	if n < len(argCountWords) {
		word = argCountWords[n]
	}
	if n == 1 {
		return word + " argument"
	}
	return word + " arguments"
}

var langBuiltins = []*langBuiltin{
	{KeywordList, []string{VarArgSymbol, "args"}, builtinList},
	{KeywordCar, []string{"lis"}, builtinCAR},
	{KeywordCdr, []string{"lis"}, builtinCDR},
	{KeywordCons, []string{"head", "tail"}, builtinCons},
	{KeywordLength, []string{"lis"}, builtinLength},
	{KeywordNull, []string{"lis"}, builtinNullP},
	{KeywordPrint, []string{"expr"}, builtinPrint},
	{KeywordRange, []string{"start", "end", VarArgSymbol, "step"}, builtinRange},
}

var builtins map[string]*langBuiltin

func init() {
	builtins = builtinTable(langBuiltins)
}

func builtinTable(defs []*langBuiltin) map[string]*langBuiltin {
	m := make(map[string]*langBuiltin, len(defs))
	for _, def := range defs {
		if !IsKeyword(def.name) {
			panic("builtin is not a keyword: " + def.name)
		}
		m[def.name] = def
	}
	return m
}

// Builtins returns the names of the list primitives, whose arguments are
// evaluated before they are invoked.
func Builtins() []string {
	names := make([]string, len(langBuiltins))
	for i := range langBuiltins {
		names[i] = langBuiltins[i].name
	}
	return names
}

func builtinList(env *LEnv, args *LVal) *LVal {
	cells := make([]*LVal, len(args.Cells))
	copy(cells, args.Cells)
	return List(cells)
}

func builtinCAR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LList {
		return berrf(KeywordCar, ErrnoType, "argument is not a list: %v", lis.Type)
	}
	if len(lis.Cells) == 0 {
		return berrf(KeywordCar, ErrnoType, "argument is empty")
	}
	return lis.Cells[0]
}

func builtinCDR(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LList {
		return berrf(KeywordCdr, ErrnoType, "argument is not a list: %v", lis.Type)
	}
	if len(lis.Cells) == 0 {
		return berrf(KeywordCdr, ErrnoType, "argument is empty")
	}
	cells := make([]*LVal, len(lis.Cells)-1)
	copy(cells, lis.Cells[1:])
	return List(cells)
}

func builtinCons(env *LEnv, args *LVal) *LVal {
	head, tail := args.Cells[0], args.Cells[1]
	if tail.Type != LList {
		return berrf(KeywordCons, ErrnoType, "second argument is not a list: %v", tail.Type)
	}
	cells := make([]*LVal, 0, len(tail.Cells)+1)
	cells = append(cells, head)
	cells = append(cells, tail.Cells...)
	return List(cells)
}

func builtinLength(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LList {
		return berrf(KeywordLength, ErrnoType, "argument is not a list: %v", lis.Type)
	}
	return Int(int64(lis.Len()))
}

func builtinNullP(env *LEnv, args *LVal) *LVal {
	lis := args.Cells[0]
	if lis.Type != LList {
		return berrf(KeywordNull, ErrnoType, "argument is not a list: %v", lis.Type)
	}
	return Bool(lis.Len() == 0)
}

func builtinPrint(env *LEnv, args *LVal) *LVal {
	_, err := fmt.Fprintln(env.Runtime.Stdout, args.Cells[0])
	if err != nil {
		return berrf(KeywordPrint, ErrnoPanic, "%v", err)
	}
	return Void()
}

// (range start end &rest step)
func builtinRange(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) > 3 {
		return berrf(KeywordRange, ErrnoArity, "too many arguments provided (got %d)", len(args.Cells))
	}
	start, end := args.Cells[0], args.Cells[1]
	if start.Type != LInt {
		return berrf(KeywordRange, ErrnoType, "first argument is not an int: %v", start.Type)
	}
	if end.Type != LInt {
		return berrf(KeywordRange, ErrnoType, "second argument is not an int: %v", end.Type)
	}
	step := int64(1)
	if len(args.Cells) == 3 {
		if args.Cells[2].Type != LInt {
			return berrf(KeywordRange, ErrnoType, "third argument is not an int: %v", args.Cells[2].Type)
		}
		step = args.Cells[2].Int
		if step == 0 {
			return berrf(KeywordRange, ErrnoType, "third argument is zero")
		}
	}
	n := rangeLen(start.Int, end.Int, step)
	if n > MaxRangeLength {
		return berrf(KeywordRange, ErrnoLimit, "length %d exceeds maximum %d", n, MaxRangeLength)
	}
	cells := make([]*LVal, n)
	x := start.Int
	for i := range cells {
		cells[i] = Int(x)
		x += step
	}
	return List(cells)
}

// MaxRangeLength is the largest list range will construct.
const MaxRangeLength = 1 << 24

// rangeLen computes the number of elements in [start, end) by step using
// unsigned arithmetic so that spans near the int64 limits do not overflow.
func rangeLen(start, end, step int64) uint64 {
	var span, ustep uint64
	switch {
	case step > 0 && end > start:
		span, ustep = uint64(end)-uint64(start), uint64(step)
	case step < 0 && end < start:
		span, ustep = uint64(start)-uint64(end), -uint64(step)
	default:
		return 0
	}
	n := span / ustep
	if span%ustep != 0 {
		n++
	}
	return n
}
