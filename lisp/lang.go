package lisp

// Language keywords.  A keyword can only appear at the head of an expression
// (or, for KeywordElse, as the test of a cond clause).
const (
	KeywordDefine = "define"
	KeywordLambda = "lambda"
	KeywordBegin  = "begin"
	KeywordLet    = "let"
	KeywordCond   = "cond"
	KeywordIf     = "if"
	KeywordElse   = "else"
	KeywordList   = "list"
	KeywordCar    = "car"
	KeywordCdr    = "cdr"
	KeywordCons   = "cons"
	KeywordLength = "length"
	KeywordNull   = "null?"
	KeywordPrint  = "print"
	KeywordRange  = "range"
)

var langKeywords = map[string]bool{
	KeywordDefine: true,
	KeywordLambda: true,
	KeywordBegin:  true,
	KeywordLet:    true,
	KeywordCond:   true,
	KeywordIf:     true,
	KeywordElse:   true,
	KeywordList:   true,
	KeywordCar:    true,
	KeywordCdr:    true,
	KeywordCons:   true,
	KeywordLength: true,
	KeywordNull:   true,
	KeywordPrint:  true,
	KeywordRange:  true,
}

// IsKeyword returns true if name is reserved as a language keyword.
func IsKeyword(name string) bool {
	return langKeywords[name]
}

// IsOperator returns true if name is a binary operator.
func IsOperator(name string) bool {
	_, ok := langOperators[name]
	return ok
}

// Word returns the LVal denoted by the bare word text as it appears in
// source code: a boolean literal, a keyword, a binary operator, or a symbol.
// Parsers use Word so that all of them agree on how words are classified.
func Word(text string) *LVal {
	switch {
	case text == "true":
		return Bool(true)
	case text == "false":
		return Bool(false)
	case IsKeyword(text):
		return Keyword(text)
	case IsOperator(text):
		return Operator(text)
	default:
		return Symbol(text)
	}
}
