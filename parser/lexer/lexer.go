package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/bmatsuo/rlisp/parser/token"
)

const miscWordRunes = "0123456789" + miscWordSymbols
const miscWordSymbols = "._+-*/=<>!&|~%?$"

// Lexer produces tokens from the runes read by a token.Scanner.
type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// readErr is the first error returned by the scanner.  Once set every
	// call to NextToken produces an EOF or ERROR token.
	readErr error
}

// New returns a Lexer which reads runes from s.
func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// NextToken scans and returns the next token in the input.  When the input is
// exhausted NextToken returns tokens of type token.EOF.
func (lex *Lexer) NextToken() *token.Token {
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readErr = lex.skipWhitespace()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	lex.readChar()
	if lex.readErr != nil {
		return lex.emitError(lex.readErr, true)
	}
	switch lex.ch {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '[':
		return lex.scanner.EmitToken(token.BRACE_L)
	case ']':
		return lex.scanner.EmitToken(token.BRACE_R)
	case ';':
		for lex.peekRune() != '\n' {
			err := lex.readChar()
			if err == io.EOF {
				return lex.scanner.EmitToken(token.COMMENT)
			}
			if err != nil {
				return lex.emitError(err, false)
			}
		}
		return lex.scanner.EmitToken(token.COMMENT)
	case '-':
		// A minus sign immediately followed by a digit begins a negative
		// numeric literal.  Otherwise it is the subtraction operator or part
		// of a symbol.
		if isDigit(lex.peekRune()) {
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err, false)
			}
			return lex.readNumber()
		}
		return lex.readWord()
	case '"':
		return lex.readString()
	default:
		if isDigit(lex.ch) {
			return lex.readNumber()
		}
		if isWordStart(lex.ch) {
			return lex.readWord()
		}
		lex.readErr = fmt.Errorf("%v: unexpected text starting with %q", lex.scanner.Loc(), lex.ch)
		return lex.emit(token.INVALID, lex.readErr.Error())
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitError(err error, expectEOF bool) *token.Token {
	if err == io.EOF {
		if expectEOF {
			return lex.emit(token.EOF, "")
		}
		return lex.emit(token.ERROR, "unexpected EOF")
	}
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...), false)
}

func (lex *Lexer) readWord() *token.Token {
	for isWord(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

// readString scans a double quoted string literal.  Escape sequences are left
// in the token text and interpreted by the parser.
func (lex *Lexer) readString() *token.Token {
	for lex.peekRune() != '"' {
		err := lex.readChar()
		if err != nil {
			if err == io.EOF {
				return lex.errorf("%v: unterminated string literal", lex.scanner.LocStart())
			}
			return lex.emitError(err, false)
		}
		switch lex.ch {
		case '\n':
			return lex.errorf("%v: unterminated string literal", lex.scanner.LocStart())
		case '\\':
			// Wait until parsing to check the escaped character
			err := lex.readChar()
			if err != nil {
				return lex.emitError(err, false)
			}
		}
	}
	err := lex.readChar()
	if err != nil {
		return lex.emitError(err, false)
	}
	return lex.scanner.EmitToken(token.STRING)
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	switch lex.peekRune() {
	case '.':
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.readFloatFraction()
	case 'e', 'E':
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.readFloatExponent()
	default:
		return lex.endNumber(token.INT)
	}
	// the returned string may not actually be a usable number (overflow), but
	// we can find that out at parse time -- not scan time.
}

func (lex *Lexer) readFloatFraction() *token.Token {
	if !isDigit(lex.peekRune()) {
		return lex.errorf("invalid floating point literal: %v", lex.scanner.Text())
	}
	for isDigit(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	switch lex.peekRune() {
	case 'e', 'E':
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
		return lex.readFloatExponent()
	default:
		return lex.endNumber(token.FLOAT)
	}
}

func (lex *Lexer) readFloatExponent() *token.Token {
	switch lex.peekRune() {
	case '+', '-':
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	if !isDigit(lex.peekRune()) {
		return lex.errorf("invalid floating point literal: %v", lex.scanner.Text())
	}
	for isDigit(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return lex.emitError(err, false)
		}
	}
	return lex.endNumber(token.FLOAT)
}

// endNumber emits a numeric token unless the literal runs directly into word
// characters (e.g. 12abc).
func (lex *Lexer) endNumber(typ token.Type) *token.Token {
	if isWord(lex.peekRune()) {
		for isWord(lex.peekRune()) {
			if lex.readChar() != nil {
				break
			}
		}
		return lex.errorf("invalid numeric literal: %v", lex.scanner.Text())
	}
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) skipWhitespace() error {
	for unicode.IsSpace(lex.peekRune()) {
		err := lex.readChar()
		if err != nil {
			return err
		}
	}
	lex.scanner.Ignore()
	return nil
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	lex.readErr = lex.scanner.ScanRune()
	if lex.readErr != nil {
		return lex.readErr
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordSymbols, c)
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || strings.ContainsRune(miscWordRunes, c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
