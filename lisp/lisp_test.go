package lisp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLVal_String(t *testing.T) {
	env := NewEnv(nil)
	tests := []struct {
		v    *LVal
		want string
	}{
		{Void(), ""},
		{Int(-42), "-42"},
		{Float(4), "4.0"},
		{Float(0.25), "0.25"},
		{Float(1e21), "1e+21"},
		{Float(math.Inf(1)), "+Inf"},
		{Float(math.NaN()), "NaN"},
		{Bool(true), "true"},
		{String("raw \"text\""), `raw "text"`},
		{Symbol("x"), "x"},
		{Keyword(KeywordIf), "if"},
		{Operator("+"), "+"},
		{List(nil), "()"},
		{List([]*LVal{Int(1), List([]*LVal{String("a"), Float(2)}), Bool(false)}), "(1 (a 2.0) false)"},
		{SExpr([]*LVal{Operator("+"), Symbol("x"), Int(1)}), "(+ x 1)"},
		{Lambda([]string{"a", "b"}, SExpr([]*LVal{Operator("*"), Symbol("a"), Symbol("b")}), env), "(lambda (a b) (* a b))"},
		{Lambda(nil, Int(0), env), "(lambda () 0)"},
		{Errorf(ErrnoType, "bad"), "bad"},
	}
	for i, test := range tests {
		assert.Equal(t, test.want, test.v.String(), "test %d", i)
	}
}

func TestLVal_Equal(t *testing.T) {
	env := NewEnv(nil)
	fn := Lambda([]string{"x"}, Symbol("x"), env)
	assert.True(t, Int(1).Equal(Int(1)))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(Symbol("a")))
	assert.True(t, List([]*LVal{Int(1), String("b")}).Equal(List([]*LVal{Int(1), String("b")})))
	assert.False(t, List([]*LVal{Int(1)}).Equal(List([]*LVal{Int(1), Int(2)})))
	assert.True(t, Void().Equal(Void()))
	assert.True(t, fn.Equal(fn))
	assert.False(t, fn.Equal(Lambda([]string{"x"}, Symbol("x"), env)))
}

func TestLVal_Copy(t *testing.T) {
	lis := List([]*LVal{Int(1), Int(2)})
	cp := lis.Copy()
	cp.Cells[0] = Int(3)
	assert.Equal(t, "(1 2)", lis.String())
	assert.Equal(t, "(3 2)", cp.String())

	env := NewEnv(nil)
	fn := Lambda([]string{"x"}, Symbol("x"), env)
	assert.Same(t, env, fn.Copy().Env)
	assert.Nil(t, (*LVal)(nil).Copy())
}

func TestWord(t *testing.T) {
	tests := []struct {
		text string
		typ  LType
	}{
		{"true", LBool},
		{"false", LBool},
		{"define", LKeyword},
		{"null?", LKeyword},
		{"else", LKeyword},
		{"+", LOperator},
		{"%", LOperator},
		{"|", LOperator},
		{"x", LSymbol},
		{"add-5", LSymbol},
		{"even?", LSymbol},
		{"-", LOperator},
		{"--", LSymbol},
	}
	for _, test := range tests {
		v := Word(test.text)
		assert.Equal(t, test.typ, v.Type, "word %q", test.text)
		if v.Type != LBool {
			assert.Equal(t, test.text, v.Str)
		}
	}
	assert.True(t, Word("true").Bool)
	assert.False(t, Word("false").Bool)

	for _, name := range append(SpecialOps(), Builtins()...) {
		assert.True(t, IsKeyword(name), name)
	}
	for _, name := range Operators() {
		assert.True(t, IsOperator(name), name)
	}
}
