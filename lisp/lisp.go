package lisp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LVoid
	LInt
	LFloat
	LBool
	LString
	LSymbol
	LKeyword
	LOperator
	LSExpr
	LList
	LLambda
	LError
	// LMarkTailCall is returned by special operators to ask Eval to continue
	// with a new expression and scope instead of recursing.  It never escapes
	// Eval.
	LMarkTailCall
	numLTypes
)

var lvalTypeStrings = []string{
	LInvalid:      "INVALID",
	LVoid:         "void",
	LInt:          "int",
	LFloat:        "float",
	LBool:         "bool",
	LString:       "string",
	LSymbol:       "symbol",
	LKeyword:      "keyword",
	LOperator:     "operator",
	LSExpr:        "sexpr",
	LList:         "list",
	LLambda:       "lambda",
	LError:        "error",
	LMarkTailCall: "MARK_TAIL_CALL",
}

func (t LType) String() string {
	if int(t) >= len(lvalTypeStrings) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LVal is a lisp value.  The Type field determines which of the remaining
// fields are meaningful.
type LVal struct {
	Type LType

	Int   int64
	Float float64
	Bool  bool

	// Str holds the contents of an LString, the name of an LSymbol, LKeyword,
	// or LOperator, and the message of an LError.
	Str string

	// Cells holds the elements of an LSExpr (code) or an LList (data).
	Cells []*LVal

	// Variables needed for lambda values.  Env is the defining scope of the
	// lambda and is shared, never copied.  LMarkTailCall values reuse Body and
	// Env for the expression and scope that evaluation continues with.
	Formals []string
	Body    *LVal
	Env     *LEnv

	// Errno and Stack describe an LError.
	Errno Errno
	Stack *CallStack
}

// Void returns an LVal representing the absence of a value.
func Void() *LVal {
	return &LVal{Type: LVoid}
}

// Int returns an LVal representing the integer x.
func Int(x int64) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// Float returns an LVal representing the floating point number x.
func Float(x float64) *LVal {
	return &LVal{
		Type:  LFloat,
		Float: x,
	}
}

// Bool returns an LVal representing the boolean b.
func Bool(b bool) *LVal {
	return &LVal{
		Type: LBool,
		Bool: b,
	}
}

// String returns an LVal representing the string s.
func String(s string) *LVal {
	return &LVal{
		Type: LString,
		Str:  s,
	}
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Keyword returns an LVal representing the special form keyword s.
func Keyword(s string) *LVal {
	return &LVal{
		Type: LKeyword,
		Str:  s,
	}
}

// Operator returns an LVal representing the binary operator s.
func Operator(s string) *LVal {
	return &LVal{
		Type: LOperator,
		Str:  s,
	}
}

// SExpr returns an LVal representing an S-expression, a symbolic expression
// which has not been evaluated.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Type:  LSExpr,
		Cells: cells,
	}
}

// List returns an LVal representing an evaluated list of values.  The cells
// slice is not copied.
func List(cells []*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Lambda returns an anonymous function with the given formal arguments and
// body which closes over env.
func Lambda(formals []string, body *LVal, env *LEnv) *LVal {
	return &LVal{
		Type:    LLambda,
		Formals: formals,
		Body:    body,
		Env:     env,
	}
}

func markTailCall(expr *LVal, env *LEnv) *LVal {
	return &LVal{
		Type: LMarkTailCall,
		Body: expr,
		Env:  env,
	}
}

// Len returns the number of cells in v.
func (v *LVal) Len() int {
	return len(v.Cells)
}

// IsNumeric returns true if v is an int or a float.
func (v *LVal) IsNumeric() bool {
	return v.Type == LInt || v.Type == LFloat
}

// IsVoid returns true if v is the unit value produced by side-effecting
// forms.
func (v *LVal) IsVoid() bool {
	return v.Type == LVoid
}

// IsKeyword returns true if v is the keyword name.
func (v *LVal) IsKeyword(name string) bool {
	return v.Type == LKeyword && v.Str == name
}

// Copy returns a shallow copy of the receiver.  The Cells slice is copied but
// the values it references are not, and lambda environments are always
// shared.
func (v *LVal) Copy() *LVal {
	if v == nil {
		return nil
	}
	cp := &LVal{}
	*cp = *v
	if v.Cells != nil {
		cp.Cells = make([]*LVal, len(v.Cells))
		copy(cp.Cells, v.Cells)
	}
	return cp
}

// Equal returns true if v and other are structurally identical values.
// Lambdas are only equal to themselves.
func (v *LVal) Equal(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LVoid:
		return true
	case LInt:
		return v.Int == other.Int
	case LFloat:
		return v.Float == other.Float
	case LBool:
		return v.Bool == other.Bool
	case LString, LSymbol, LKeyword, LOperator:
		return v.Str == other.Str
	case LSExpr, LList:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LError:
		return v.Errno == other.Errno && v.Str == other.Str
	default:
		return v == other
	}
}

func (v *LVal) String() string {
	switch v.Type {
	case LVoid:
		return ""
	case LInt:
		return strconv.FormatInt(v.Int, 10)
	case LFloat:
		return formatFloat(v.Float)
	case LBool:
		return strconv.FormatBool(v.Bool)
	case LString, LSymbol, LKeyword, LOperator:
		return v.Str
	case LError:
		return v.Str
	case LSExpr, LList:
		return exprString(v.Cells, "(", ")")
	case LLambda:
		formals := make([]*LVal, len(v.Formals))
		for i := range v.Formals {
			formals[i] = Symbol(v.Formals[i])
		}
		return fmt.Sprintf("(lambda %s %v)", exprString(formals, "(", ")"), v.Body)
	default:
		return fmt.Sprintf("%#v", v)
	}
}

// formatFloat renders f so that it is never mistaken for an integer.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}

func exprString(cells []*LVal, left string, right string) string {
	if len(cells) == 0 {
		return left + right
	}
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
