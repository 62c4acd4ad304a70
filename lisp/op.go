package lisp

var langSpecialOps = []*langBuiltin{
	{KeywordDefine, []string{"name", "expr"}, opDefine},
	{KeywordLambda, []string{"formals", "expr"}, opLambda},
	{KeywordLet, []string{"bindings", "expr"}, opLet},
	{KeywordBegin, []string{VarArgSymbol, "expr"}, opBegin},
	{KeywordCond, []string{VarArgSymbol, "branch"}, opCond},
	{KeywordIf, []string{"condition", "then", "else"}, opIf},
}

var specialOps map[string]*langBuiltin

func init() {
	specialOps = builtinTable(langSpecialOps)
}

// SpecialOps returns the names of the special operators, whose arguments are
// passed to them unevaluated.
func SpecialOps() []string {
	names := make([]string, len(langSpecialOps))
	for i := range langSpecialOps {
		names[i] = langSpecialOps[i].name
	}
	return names
}

// (define name expr)
// (define (name formal*) expr)
func opDefine(env *LEnv, args *LVal) *LVal {
	target, body := args.Cells[0], args.Cells[1]
	switch target.Type {
	case LSymbol:
		val := env.Eval(body)
		if val.Type == LError {
			return val
		}
		env.Put(target.Str, val)
	case LSExpr:
		if len(target.Cells) == 0 {
			return berrf(KeywordDefine, ErrnoSyntax, "invalid definition form: %v", target)
		}
		name := target.Cells[0]
		if name.Type != LSymbol {
			return berrf(KeywordDefine, ErrnoType, "function name is not a symbol: %v", name.Type)
		}
		formals, lerr := formalNames(KeywordDefine, target.Cells[1:])
		if lerr != nil {
			return lerr
		}
		env.Put(name.Str, Lambda(formals, body, env))
	default:
		return berrf(KeywordDefine, ErrnoType, "first argument is not a symbol: %v", target.Type)
	}
	return Void()
}

// (lambda (formal*) expr)
func opLambda(env *LEnv, args *LVal) *LVal {
	if args.Cells[0].Type != LSExpr {
		return berrf(KeywordLambda, ErrnoType, "first argument is not a list: %v", args.Cells[0].Type)
	}
	formals, lerr := formalNames(KeywordLambda, args.Cells[0].Cells)
	if lerr != nil {
		return lerr
	}
	return Lambda(formals, args.Cells[1], env)
}

func formalNames(form string, cells []*LVal) ([]string, *LVal) {
	formals := make([]string, len(cells))
	for i, sym := range cells {
		if sym.Type != LSymbol {
			return nil, berrf(form, ErrnoType, "formal argument is not a symbol: %v", sym)
		}
		for _, other := range formals[:i] {
			if other == sym.Str {
				return nil, berrf(form, ErrnoSyntax, "duplicate formal argument: %s", sym.Str)
			}
		}
		formals[i] = sym.Str
	}
	return formals, nil
}

// (let ((name expr)*) expr)
//
// All binding expressions are evaluated in the enclosing scope before any
// binding is made.
func opLet(env *LEnv, args *LVal) *LVal {
	bindlist := args.Cells[0]
	if bindlist.Type != LSExpr {
		return berrf(KeywordLet, ErrnoType, "first argument is not a list: %v", bindlist.Type)
	}
	vals := make([]*LVal, len(bindlist.Cells))
	for i, bind := range bindlist.Cells {
		if bind.Type != LSExpr || len(bind.Cells) != 2 {
			return berrf(KeywordLet, ErrnoSyntax, "first argument is not a list of pairs")
		}
		if bind.Cells[0].Type != LSymbol {
			return berrf(KeywordLet, ErrnoType, "binding name is not a symbol: %v", bind.Cells[0])
		}
		vals[i] = env.Eval(bind.Cells[1])
		if vals[i].Type == LError {
			return vals[i]
		}
	}
	letenv := NewEnv(env)
	for i, bind := range bindlist.Cells {
		letenv.Put(bind.Cells[0].Str, vals[i])
	}
	return markTailCall(args.Cells[1], letenv)
}

// (begin expr*)
func opBegin(env *LEnv, args *LVal) *LVal {
	if len(args.Cells) == 0 {
		return Void()
	}
	scope := NewEnv(env)
	last := len(args.Cells) - 1
	for _, c := range args.Cells[:last] {
		val := scope.Eval(c)
		if val.Type == LError {
			return val
		}
	}
	return markTailCall(args.Cells[last], scope)
}

// (cond (test-form then-form)*)
func opCond(env *LEnv, args *LVal) *LVal {
	for _, branch := range args.Cells {
		if branch.Type != LSExpr {
			return berrf(KeywordCond, ErrnoSyntax, "argument is not a list: %v", branch.Type)
		}
		if len(branch.Cells) != 2 {
			return berrf(KeywordCond, ErrnoSyntax, "argument is not a pair (length %d)", len(branch.Cells))
		}
		if branch.Cells[0].IsKeyword(KeywordElse) {
			return markTailCall(branch.Cells[1], env)
		}
		test := env.Eval(branch.Cells[0])
		if test.Type == LError {
			return test
		}
		if test.Type != LBool {
			return berrf(KeywordCond, ErrnoType, "test is not a bool: %v", test)
		}
		if test.Bool {
			return markTailCall(branch.Cells[1], env)
		}
	}
	return env.Errorf(ErrnoCondExhausted, "no cond clause matched")
}

// (if test-form then-form else-form)
func opIf(env *LEnv, args *LVal) *LVal {
	r := env.Eval(args.Cells[0])
	if r.Type == LError {
		return r
	}
	if r.Type != LBool {
		return berrf(KeywordIf, ErrnoType, "condition is not a bool: %v", r)
	}
	if r.Bool {
		return markTailCall(args.Cells[1], env)
	}
	return markTailCall(args.Cells[2], env)
}
