package lisp

import (
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// LEnv is a lisp environment, one scope in a chain of lexical scopes.
type LEnv struct {
	ID      uint
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a StandardRuntime.  Otherwise the runtime of parent is
// shared.
func NewEnv(parent *LEnv) *LEnv {
	var runtime *Runtime
	if parent != nil {
		runtime = parent.Runtime
	} else {
		runtime = StandardRuntime()
	}
	return &LEnv{
		ID:      getEnvID(),
		Scope:   make(map[string]*LVal),
		Parent:  parent,
		Runtime: runtime,
	}
}

// Get returns a copy of the value bound to name in the innermost scope of the
// chain which binds it.  If no scope binds name Get returns false.
func (env *LEnv) Get(name string) (*LVal, bool) {
	for ; env != nil; env = env.Parent {
		v, ok := env.Scope[name]
		if ok {
			return v.Copy(), true
		}
	}
	return nil, false
}

// Put binds name to v in the scope of env.  Bindings in parent scopes are
// shadowed, never modified.
func (env *LEnv) Put(name string, v *LVal) {
	if v == nil {
		panic("nil value")
	}
	env.Scope[name] = v
}

// Lookup resolves the LSymbol sym.  An unbound symbol produces an LError.
func (env *LEnv) Lookup(sym *LVal) *LVal {
	if sym.Type != LSymbol {
		return env.Errorf(ErrnoType, "not a symbol: %v", sym)
	}
	v, ok := env.Get(sym.Str)
	if !ok {
		return env.Errorf(ErrnoUnbound, "undefined symbol: %s", sym.Str)
	}
	return v
}

// Root returns the outermost scope in the chain of env.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Depth returns the number of scopes between env and the root environment.
func (env *LEnv) Depth() int {
	n := 0
	for ; env.Parent != nil; env = env.Parent {
		n++
	}
	return n
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.
//
// Eval is a loop over the current expression and scope.  Expressions in tail
// position (if branches, the last form of begin, let and cond bodies, and
// function bodies) replace the loop state instead of recursing, so tail
// recursive programs run in constant Go stack space and a single call frame.
func (env *LEnv) Eval(v *LVal) *LVal {
	stack := env.Runtime.Stack
	framed := false
	defer func() {
		if framed {
			stack.Pop()
		}
	}()
	for {
		switch v.Type {
		case LSymbol:
			return env.Lookup(v)
		case LKeyword, LOperator:
			return env.Errorf(ErrnoSyntax, "%s used as a value: %s", v.Type, v.Str)
		case LSExpr:
			r := env.evalSExpr(v)
			if r.Type == LError {
				if r.Stack == nil {
					r.Stack = stack.Copy()
				}
				return r
			}
			if r.Type != LMarkTailCall {
				return r
			}
			if r.Str != "" {
				// r is a function application.
				if framed {
					stack.TailCall(r.Str)
				} else {
					lerr := stack.Push(r.Str)
					if lerr != nil {
						return lerr
					}
					framed = true
				}
			}
			v, env = r.Body, r.Env
		case LMarkTailCall:
			panic("tail call mark used as an expression")
		default:
			return v
		}
	}
}

// evalSExpr evaluates one step of the s-expression s.  The result is either a
// final value (possibly an LError) or an LMarkTailCall holding the expression
// and scope that evaluation continues with.
func (env *LEnv) evalSExpr(s *LVal) *LVal {
	if len(s.Cells) == 0 {
		return List(nil)
	}
	head := s.Cells[0]
	args := SExpr(s.Cells[1:])
	switch head.Type {
	case LOperator:
		return env.evalOperator(head.Str, args)
	case LKeyword:
		if op, ok := specialOps[head.Str]; ok {
			lerr := op.checkArity(args)
			if lerr != nil {
				return lerr
			}
			return op.fun(env, args)
		}
		if fun, ok := builtins[head.Str]; ok {
			lerr := fun.checkArity(args)
			if lerr != nil {
				return lerr
			}
			lerr = env.evalArgs(args)
			if lerr != nil {
				return lerr
			}
			return fun.fun(env, args)
		}
		return env.Errorf(ErrnoSyntax, "keyword cannot be applied: %s", head.Str)
	case LSymbol:
		fun := env.Lookup(head)
		if fun.Type == LError {
			return fun
		}
		if fun.Type != LLambda {
			return env.Errorf(ErrnoNotLambda, "not a lambda: %s", head.Str)
		}
		return env.apply(head.Str, fun, args)
	case LSExpr, LLambda:
		fun := env.Eval(head)
		if fun.Type == LError {
			return fun
		}
		if fun.Type != LLambda {
			return env.Errorf(ErrnoNotLambda, "not a lambda: %v", fun)
		}
		return env.apply(KeywordLambda, fun, args)
	default:
		return env.Errorf(ErrnoNotLambda, "not a lambda: %v", head)
	}
}

// apply binds the evaluated args to the formals of fun in a new scope
// extending the scope fun closes over and returns a tail call of the body of
// fun in that scope.
func (env *LEnv) apply(name string, fun *LVal, args *LVal) *LVal {
	if len(args.Cells) != len(fun.Formals) {
		return env.Errorf(ErrnoArity, "%s: expects %d arguments (got %d)",
			name, len(fun.Formals), len(args.Cells))
	}
	lerr := env.evalArgs(args)
	if lerr != nil {
		return lerr
	}
	callenv := NewEnv(fun.Env)
	for i, formal := range fun.Formals {
		callenv.Put(formal, args.Cells[i])
	}
	mark := markTailCall(fun.Body, callenv)
	mark.Str = name
	return mark
}

// evalArgs evaluates the cells of args in place, left to right.  The first
// LError encountered is returned, otherwise evalArgs returns nil.
func (env *LEnv) evalArgs(args *LVal) *LVal {
	cells := make([]*LVal, len(args.Cells))
	for i := range args.Cells {
		cells[i] = env.Eval(args.Cells[i])
		if cells[i].Type == LError {
			return cells[i]
		}
	}
	args.Cells = cells
	return nil
}
