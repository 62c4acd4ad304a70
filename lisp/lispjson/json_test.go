package lispjson

import (
	"math"
	"testing"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	env := lisp.NewEnv(nil)
	tests := []struct {
		v    *lisp.LVal
		want string
	}{
		{lisp.Void(), `null`},
		{lisp.Int(-3), `-3`},
		{lisp.Float(2.5), `2.5`},
		{lisp.Bool(true), `true`},
		{lisp.String("a \"b\""), `"a \"b\""`},
		{lisp.List(nil), `[]`},
		{lisp.List([]*lisp.LVal{lisp.Int(1), lisp.List([]*lisp.LVal{lisp.String("x")})}), `[1,["x"]]`},
		{lisp.Symbol("sym"), `"sym"`},
		{lisp.Lambda([]string{"x"}, lisp.Symbol("x"), env), `"(lambda (x) x)"`},
	}
	for _, test := range tests {
		b, err := Dump(test.v)
		require.NoError(t, err, test.want)
		assert.Equal(t, test.want, string(b))
	}
}

func TestDump_errors(t *testing.T) {
	_, err := Dump(lisp.Float(math.Inf(1)))
	assert.Error(t, err)
	_, err = Dump(lisp.List([]*lisp.LVal{lisp.Float(math.NaN())}))
	assert.Error(t, err)
	_, err = Dump(lisp.Errorf(lisp.ErrnoType, "bad"))
	assert.ErrorIs(t, err, lisp.ErrnoType)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		json string
		want string
		typ  lisp.LType
	}{
		{`null`, ``, lisp.LVoid},
		{`12`, `12`, lisp.LInt},
		{`12.0`, `12.0`, lisp.LFloat},
		{`1.5`, `1.5`, lisp.LFloat},
		{`1e400`, `type error`, lisp.LError},
		{`"s"`, `s`, lisp.LString},
		{`false`, `false`, lisp.LBool},
		{`[1, [2.5, "x"], []]`, `(1 (2.5 x) ())`, lisp.LList},
	}
	for _, test := range tests {
		v := Load([]byte(test.json))
		assert.Equal(t, test.typ, v.Type, test.json)
		if v.Type != lisp.LError {
			assert.Equal(t, test.want, v.String(), test.json)
		}
	}
}

func TestLoad_errors(t *testing.T) {
	v := Load([]byte(`{"a": 1}`))
	assert.Equal(t, lisp.ErrnoType, v.Errno)
	v = Load([]byte(`[1, {}]`))
	assert.Equal(t, lisp.ErrnoType, v.Errno)
	v = Load([]byte(`[1, 2`))
	assert.Equal(t, lisp.ErrnoSyntax, v.Errno)
	v = Load([]byte(`1 2`))
	assert.Equal(t, lisp.ErrnoSyntax, v.Errno)
}

func TestSerializer_FloatNumbers(t *testing.T) {
	s := &Serializer{FloatNumbers: true}
	v := s.Load([]byte(`[1, 2]`))
	require.Equal(t, lisp.LList, v.Type)
	assert.Equal(t, lisp.LFloat, v.Cells[0].Type)
	assert.Equal(t, "(1.0 2.0)", v.String())
}
