// Package lispjson converts between lisp values and JSON.
package lispjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/bmatsuo/rlisp/lisp"
)

// DefaultSerializer is the Serializer used by exported functions Load and
// Dump.
var DefaultSerializer = &Serializer{}

// Dump serializes the structure of v as a JSON formatted byte slice.
func Dump(v *lisp.LVal) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Load parses b as JSON and returns an equivalent LVal.
func Load(b []byte) *lisp.LVal {
	return DefaultSerializer.Load(b)
}

// Serializer defines JSON serialization rules for lisp values.
type Serializer struct {
	// FloatNumbers causes every JSON number to load as a float.  By default
	// numbers written without a fraction or exponent load as ints.
	FloatNumbers bool
}

// Dump serializes v as JSON.  Lists become arrays, Void becomes null, and
// values without a JSON counterpart (lambdas, symbols) are dumped as their
// string rendering.  Errors and non-finite floats cannot be dumped.
func (s *Serializer) Dump(v *lisp.LVal) ([]byte, error) {
	x, err := s.dumpInterface(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(x)
}

func (s *Serializer) dumpInterface(v *lisp.LVal) (interface{}, error) {
	switch v.Type {
	case lisp.LVoid:
		return nil, nil
	case lisp.LInt:
		return v.Int, nil
	case lisp.LFloat:
		if math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return nil, fmt.Errorf("unable to dump non-finite float: %v", v)
		}
		return v.Float, nil
	case lisp.LBool:
		return v.Bool, nil
	case lisp.LString:
		return v.Str, nil
	case lisp.LList, lisp.LSExpr:
		x := make([]interface{}, len(v.Cells))
		for i := range v.Cells {
			var err error
			x[i], err = s.dumpInterface(v.Cells[i])
			if err != nil {
				return nil, err
			}
		}
		return x, nil
	case lisp.LSymbol, lisp.LKeyword, lisp.LOperator, lisp.LLambda:
		return v.String(), nil
	case lisp.LError:
		return nil, lisp.GoError(v)
	default:
		return nil, fmt.Errorf("unable to dump value of type %v", v.Type)
	}
}

// Load parses b and returns an LVal representing its structure.
func (s *Serializer) Load(b []byte) *lisp.LVal {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	err := dec.Decode(&x)
	if err != nil {
		return lisp.Error(lisp.ErrnoSyntax, err)
	}
	if dec.More() {
		return lisp.Errorf(lisp.ErrnoSyntax, "unexpected data following json value")
	}
	return s.loadInterface(x)
}

func (s *Serializer) loadInterface(x interface{}) *lisp.LVal {
	if x == nil {
		return lisp.Void()
	}
	switch x := x.(type) {
	case bool:
		return lisp.Bool(x)
	case string:
		return lisp.String(x)
	case json.Number:
		if !s.FloatNumbers {
			if n, err := x.Int64(); err == nil {
				return lisp.Int(n)
			}
		}
		f, err := x.Float64()
		if err != nil {
			return lisp.Errorf(lisp.ErrnoType, "invalid json number: %v", x)
		}
		return lisp.Float(f)
	case []interface{}:
		lis := lisp.List(make([]*lisp.LVal, len(x)))
		for i, v := range x {
			lis.Cells[i] = s.loadInterface(v)
			if lis.Cells[i].Type == lisp.LError {
				return lis.Cells[i]
			}
		}
		return lis
	case map[string]interface{}:
		return lisp.Errorf(lisp.ErrnoType, "unable to load json object")
	default:
		return lisp.Errorf(lisp.ErrnoType, "unable to load json type: %T", x)
	}
}
