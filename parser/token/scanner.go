package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// Scanner tracks the line and column of every rune it scans.
type Scanner struct {
	file    string
	r       *bufio.Reader
	readErr error

	text    strings.Builder // runes scanned since the last EmitToken or Ignore
	c       rune            // the last rune scanned
	loc     Location        // location of c
	next    Location        // location of the rune following c
	start   Location        // location of the first rune in text
	started bool
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	return &Scanner{
		file: file,
		r:    bufio.NewReader(r),
		next: Location{File: file, Line: 1, Col: 1},
	}
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.started = false
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.  If Peek returns a false value the next call to
// s.ScanRune will return an error that reflects of the cause.
func (s *Scanner) Peek() (rune, bool) {
	if s.readErr != nil {
		return 0, false
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.readErr = err
		return 0, false
	}
	s.r.UnreadRune()
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  If an error prevents a valid unicode rune from being scanned
// then an error will be returned.
func (s *Scanner) ScanRune() error {
	if s.readErr != nil {
		return s.readErr
	}
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.readErr = err
		return err
	}
	if c == utf8.RuneError && n == 1 {
		s.readErr = fmt.Errorf("%v: invalid utf-8 sequence in source text", &s.next)
		return s.readErr
	}
	s.c = c
	s.loc = s.next
	if !s.started {
		s.start = s.loc
		s.started = true
	}
	s.text.WriteRune(c)
	s.next.Pos += n
	if c == '\n' {
		s.next.Line++
		s.next.Col = 1
	} else {
		s.next.Col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	loc := s.next
	if s.started {
		loc = s.start
	}
	return &loc
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	loc := s.loc
	return &loc
}
