package lisp

import (
	"io"
	"strings"
)

// Load reads LVals from r using the environment's Reader and evaluates them in
// env, in order.  The value of the last expression is returned.  Load stops at
// the first LError.
func (env *LEnv) Load(name string, r io.Reader) *LVal {
	if env.Runtime.Reader == nil {
		return Errorf(ErrnoPanic, "no reader configured for environment")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return Error(ErrnoSyntax, err)
	}
	ret := Void()
	for _, expr := range exprs {
		env.Runtime.Logger.Debug("eval", "source", name, "form", expr)
		ret = env.Eval(expr)
		if ret.Type == LError {
			env.Runtime.Logger.Debug("eval error", "source", name, "errno", ret.Errno, "error", ret.Str)
			return ret
		}
	}
	return ret
}

// LoadString parses source and evaluates its expressions in env.
func (env *LEnv) LoadString(name, source string) *LVal {
	return env.Load(name, strings.NewReader(source))
}

// Eval parses source with the Reader of env and evaluates each top-level
// expression in env so that definitions persist across calls.  The value of
// the last expression is returned, Void if source contains no expressions.
func Eval(source string, env *LEnv) (*LVal, error) {
	v := env.LoadString("eval", source)
	if err := GoError(v); err != nil {
		return nil, err
	}
	return v, nil
}
