package token

import "fmt"

// Token is one lexical unit of source text.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	switch tok.Type {
	case EOF:
		return "EOF"
	case ERROR, INVALID:
		return fmt.Sprintf("%s: %s", tok.Type, tok.Text)
	default:
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
}

type Type uint

// Type constants used for the lexer/parser.  These constants aren't necessary
// to use the package.
const (
	INVALID Type = iota
	ERROR
	EOF

	// Atomic expressions & literals.  A SYMBOL token holds any word,
	// including keywords, binary operators, and boolean literals.
	SYMBOL
	INT
	FLOAT
	STRING

	COMMENT

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

var typeStrings = [numTokenTypes]string{
	INVALID: "invalid",
	ERROR:   "error",
	EOF:     "EOF",
	SYMBOL:  "symbol",
	INT:     "int",
	FLOAT:   "float",
	STRING:  "string",
	COMMENT: ";",
	PAREN_L: "(",
	PAREN_R: ")",
	BRACE_L: "[",
	BRACE_R: "]",
}

func (typ Type) String() string {
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Closer returns the delimiter type which closes typ.  Closer returns INVALID
// if typ does not open a list.
func (typ Type) Closer() Type {
	switch typ {
	case PAREN_L:
		return PAREN_R
	case BRACE_L:
		return BRACE_R
	default:
		return INVALID
	}
}

type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	if loc == nil {
		return "<unknown>"
	}
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
