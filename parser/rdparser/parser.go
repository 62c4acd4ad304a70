package rdparser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/bmatsuo/rlisp/lisp"
	"github.com/bmatsuo/rlisp/parser/lexer"
	"github.com/bmatsuo/rlisp/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	p := New(s)
	return p.ParseProgram()
}

// Parser is a recursive descent parser for lisp source code.
type Parser struct {
	lex  *lexer.Lexer
	curr *token.Token
	peek *token.Token
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	p := &Parser{
		lex: lexer.New(scanner),
	}
	// Setup the peek token so the parser is in the proper state when the
	// first parse function is called.
	p.ReadToken()
	return p
}

// ParseProgram parses every top-level expression in the input.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal

	for {
		p.skipComments()
		if p.expect(token.EOF) {
			break
		}
		expr := p.ParseExpression()
		if expr.Type == lisp.LError {
			return nil, lisp.GoError(expr)
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

// ParseExpression parses a single expression.  Parse errors are returned as
// LError values with Errno lisp.ErrnoSyntax.
func (p *Parser) ParseExpression() *lisp.LVal {
	p.skipComments()
	switch p.PeekType() {
	case token.INT:
		return p.ParseLiteralInt()
	case token.FLOAT:
		return p.ParseLiteralFloat()
	case token.STRING:
		return p.ParseLiteralString()
	case token.SYMBOL:
		return p.ParseWord()
	case token.PAREN_L, token.BRACE_L:
		return p.ParseConsExpression()
	case token.ERROR, token.INVALID:
		p.ReadToken()
		return p.errorf("%s", p.Token().Text)
	case token.EOF:
		p.ReadToken()
		return p.errorf("unexpected EOF")
	default:
		p.ReadToken()
		return p.errorf("%v: unexpected %s", p.Token().Source, p.Token().Type)
	}
}

func (p *Parser) ParseLiteralInt() *lisp.LVal {
	if !p.expect(token.INT) {
		return p.errorf("invalid integer literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return p.errorf("%v: integer literal overflows int64: %v", p.Token().Source, text)
	}
	return lisp.Int(x)
}

func (p *Parser) ParseLiteralFloat() *lisp.LVal {
	if !p.expect(token.FLOAT) {
		return p.errorf("invalid float literal: %v", p.PeekType())
	}
	text := p.Token().Text
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return p.errorf("%v: invalid floating point literal: %v", p.Token().Source, text)
	}
	return lisp.Float(x)
}

func (p *Parser) ParseLiteralString() *lisp.LVal {
	if !p.expect(token.STRING) {
		return p.errorf("invalid string literal: %v", p.PeekType())
	}
	text := p.Token().Text
	s, err := strconv.Unquote(text)
	if err != nil {
		return p.errorf("%v: invalid string literal: %v", p.Token().Source, text)
	}
	return lisp.String(s)
}

// ParseWord parses a symbol token, which may denote a keyword, an operator, a
// boolean literal, or a plain symbol.
func (p *Parser) ParseWord() *lisp.LVal {
	if !p.expect(token.SYMBOL) {
		return p.errorf("invalid symbol: %v", p.PeekType())
	}
	return lisp.Word(p.Token().Text)
}

// ParseConsExpression parses a parenthesized (or bracketed) list of
// expressions.
func (p *Parser) ParseConsExpression() *lisp.LVal {
	if !p.expect(token.PAREN_L, token.BRACE_L) {
		return p.errorf("invalid list: %v", p.PeekType())
	}
	open := p.Token()
	closer := open.Type.Closer()
	expr := lisp.SExpr(nil)
	for {
		p.skipComments()
		if p.expect(token.EOF) {
			return p.errorf("%v: unmatched %s", open.Source, open.Text)
		}
		if p.expect(closer) {
			break
		}
		if p.expect(token.PAREN_R, token.BRACE_R) {
			return p.errorf("%v: mismatched %s closing %s at %v", p.Token().Source, p.Token().Text, open.Text, open.Source)
		}
		x := p.ParseExpression()
		if x.Type == lisp.LError {
			return x
		}
		expr.Cells = append(expr.Cells, x)
	}
	return expr
}

func (p *Parser) ReadToken() *token.Token {
	p.curr = p.peek
	p.peek = p.lex.NextToken()
	return p.curr
}

func (p *Parser) Token() *token.Token {
	return p.curr
}

func (p *Parser) Peek() *token.Token {
	return p.peek
}

func (p *Parser) PeekType() token.Type {
	return p.peek.Type
}

func (p *Parser) skipComments() {
	for p.expect(token.COMMENT) {
	}
}

func (p *Parser) expect(typ ...token.Type) bool {
	peekType := p.peek.Type
	if len(typ) == 0 {
		return peekType != token.EOF
	}
	for _, typ := range typ {
		if typ == peekType {
			p.ReadToken()
			return true
		}
	}
	return false
}

func (p *Parser) errorf(format string, v ...interface{}) *lisp.LVal {
	return lisp.Errorf(lisp.ErrnoSyntax, "%s", fmt.Sprintf(format, v...))
}
