package rdparser

import (
	"fmt"
	"io"

	"github.com/bmatsuo/rlisp/parser/lexer"
	"github.com/bmatsuo/rlisp/parser/token"
)

// TokenSource is a stream of tokens with a single token of lookahead.
type TokenSource struct {
	lex   *lexer.Lexer
	Token *token.Token
	Peek  *token.Token
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	lex := lexer.New(scanner)
	s := &TokenSource{
		lex: lex,
	}
	s.scan()
	return s
}

// AcceptType scans the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// Scan advances to the next token.  Scan returns false when the stream is
// exhausted.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek
		return false
	}
	s.scan()
	return true
}

func (s *TokenSource) IsEOF() bool {
	return s.Peek.Type == token.EOF
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	s.Peek = s.lex.NextToken()
}

// Depth scans the source text in r and returns the number of lists which are
// still open at the end of the text.  An interactive reader uses Depth to
// determine whether more input is needed to complete an expression.  Depth
// returns an error if the text contains an invalid token or closes a list
// which was never opened.
func Depth(name string, r io.Reader) (int, error) {
	src := NewTokenSource(token.NewScanner(name, r))
	depth := 0
	for src.Scan() {
		switch src.Token.Type {
		case token.PAREN_L, token.BRACE_L:
			depth++
		case token.PAREN_R, token.BRACE_R:
			depth--
			if depth < 0 {
				return 0, fmt.Errorf("%v: unexpected %s", src.Token.Source, src.Token.Type)
			}
		case token.ERROR, token.INVALID:
			return depth, fmt.Errorf("%s", src.Token.Text)
		}
	}
	return depth, nil
}
