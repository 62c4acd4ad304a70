// Package parser provides a lisp parser built from parser combinators.  It
// accepts the same language as package rdparser, which is the parser used by
// default.
//
//	expr     := '(' <expr>* ')' | '[' <expr>* ']' | <number> | <string> | <word>
//	number   := /-?[0-9]+/ <fraction>? <exponent>?
//	fraction := '.' /[0-9]+/
//	exponent := e /[+-]?[0-9]+/
//	string   := '"' <strcontent> '"'
//	word     := /[\pL._+\-*\/=<>!&|~%?$][\pL0-9._+\-*\/=<>!&|~%?$]*/
//	comment  := ';' /[^\n]*/
package parser

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/bmatsuo/rlisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

type nodeType uint

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
}

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

type reader struct{}

// NewReader returns a lisp.Reader which parses source code with parser
// combinators.
func NewReader() lisp.Reader {
	return &reader{}
}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	exprs, n, err := ParseLVal(text)
	if err != nil {
		return nil, fmt.Errorf("%s[%d]: %w", name, n, err)
	}
	return exprs, nil
}

// ParseLVal parses LVal values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in parsing.
func ParseLVal(text []byte) ([]*lisp.LVal, int, error) {
	var v []*lisp.LVal
	text = bytes.TrimSpace(text)
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		lval := getLVal(root)
		if lval != nil {
			if lval.Type == lisp.LError {
				return v, s.GetCursor(), lisp.GoError(lval)
			}
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	if !s.Endof() {
		lerr := lisp.Errorf(lisp.ErrnoSyntax, "unexpected text at byte %d", s.GetCursor())
		if bytes.Count(text, []byte("(")) > bytes.Count(text, []byte(")")) {
			lerr = lisp.Errorf(lisp.ErrnoSyntax, "unmatched (")
		}
		return v, s.GetCursor(), lisp.GoError(lerr)
	}
	return v, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("[", "OPENB")
	closeB := parsec.Atom("]", "CLOSEB")
	comment := parsec.Token(`;[^\n]*`, "COMMENT")
	str := parsec.Token(`"(?:[^"\\\n]|\\.)*"`, "STRING")
	decimal := parsec.Token(`-?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	word := parsec.Token(`(?:\pL|[._+\-*/=<>!&|~%?$])(?:\pL|[0-9]|[._+\-*/=<>!&|~%?$])*`, "WORD")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		str,
		decimal,
		word, // word comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	parens := parsec.And(astNode(nodeSExpr), openP, parsec.Kleene(nil, &expr), closeP)
	brackets := parsec.And(astNode(nodeSExpr), openB, parsec.Kleene(nil, &expr), closeB)
	expr = parsec.OrdChoice(nil, comment, term, parens, brackets)
	return expr
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			return lisp.Errorf(lisp.ErrnoSyntax, "unexpected terminal: %T", nodes[0])
		}
		return termLVal(term.Name, term.Value)
	case nodeSExpr:
		lval := lisp.SExpr(nil)
		// We don't want terminal parsec nodes '(' and ')'
		for _, c := range nodes {
			if c, ok := c.(*lisp.LVal); ok {
				if c.Type == lisp.LError {
					return c
				}
				lval.Cells = append(lval.Cells, c)
			}
		}
		return lval
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func termLVal(name string, text string) *lisp.LVal {
	switch name {
	case "STRING":
		s, err := strconv.Unquote(text)
		if err != nil {
			return lisp.Errorf(lisp.ErrnoSyntax, "invalid string literal: %v", text)
		}
		return lisp.String(s)
	case "DECIMAL":
		if strings.ContainsAny(text, ".eE") {
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return lisp.Errorf(lisp.ErrnoSyntax, "invalid floating point literal: %v", text)
			}
			return lisp.Float(f)
		}
		x, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return lisp.Errorf(lisp.ErrnoSyntax, "integer literal overflows int64: %v", text)
		}
		return lisp.Int(x)
	case "WORD":
		return lisp.Word(text)
	default:
		return lisp.Errorf(lisp.ErrnoSyntax, "unexpected token %s: %v", name, text)
	}
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		// we can be here if the node is a comment
		return nil
	}
	return lval
}
