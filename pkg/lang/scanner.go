package lang

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/prettify/pkg/errors"
)

// Scanner is a byte cursor over source text that tracks line and column
// for error reporting.
type Scanner struct {
	src  string
	pos  int
	line int
	col  int
}

// NewScanner returns a scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// EOF reports whether the whole input has been consumed.
func (s *Scanner) EOF() bool { return s.pos >= len(s.src) }

// Pos returns the byte offset of the cursor.
func (s *Scanner) Pos() int { return s.pos }

// Line returns the 1-based line of the cursor.
func (s *Scanner) Line() int { return s.line }

// Peek returns the next byte without consuming it, or 0 at the end.
func (s *Scanner) Peek() byte {
	if s.EOF() {
		return 0
	}
	return s.src[s.pos]
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (s *Scanner) PeekAt(n int) byte {
	if s.pos+n >= len(s.src) {
		return 0
	}
	return s.src[s.pos+n]
}

// HasPrefix reports whether the remaining input starts with p.
func (s *Scanner) HasPrefix(p string) bool {
	return strings.HasPrefix(s.src[s.pos:], p)
}

// Rest returns the unconsumed input.
func (s *Scanner) Rest() string { return s.src[s.pos:] }

// Next consumes and returns one rune.
func (s *Scanner) Next() rune {
	if s.EOF() {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.advance(size)
	return r
}

// Advance consumes n bytes.
func (s *Scanner) Advance(n int) {
	if s.pos+n > len(s.src) {
		n = len(s.src) - s.pos
	}
	s.advance(n)
}

func (s *Scanner) advance(n int) {
	for _, c := range []byte(s.src[s.pos : s.pos+n]) {
		if c == '\n' {
			s.line++
			s.col = 1
		} else if c < 0x80 || c >= 0xC0 {
			s.col++
		}
	}
	s.pos += n
}

// Consume consumes p if the input starts with it.
func (s *Scanner) Consume(p string) bool {
	if !s.HasPrefix(p) {
		return false
	}
	s.advance(len(p))
	return true
}

// Expect consumes p or returns a syntax error.
func (s *Scanner) Expect(p string) error {
	if !s.Consume(p) {
		return s.Errorf("expected %q, found %s", p, s.describe())
	}
	return nil
}

// TakeWhile consumes bytes while f holds and returns them.
func (s *Scanner) TakeWhile(f func(c byte) bool) string {
	start := s.pos
	end := start
	for end < len(s.src) && f(s.src[end]) {
		end++
	}
	s.advance(end - start)
	return s.src[start:end]
}

// TakeLine consumes up to, but not including, the next newline.
func (s *Scanner) TakeLine() string {
	return s.TakeWhile(func(c byte) bool { return c != '\n' })
}

// SkipSpace consumes spaces and tabs and reports whether any were found.
func (s *Scanner) SkipSpace() bool {
	return s.TakeWhile(IsBlank) != ""
}

// SkipWhitespace consumes spaces, tabs and newlines and returns the number
// of newlines crossed.
func (s *Scanner) SkipWhitespace() int {
	ws := s.TakeWhile(func(c byte) bool { return IsBlank(c) || c == '\n' || c == '\r' })
	return strings.Count(ws, "\n")
}

// Errorf returns a syntax error at the cursor.
func (s *Scanner) Errorf(format string, args ...any) error {
	return errors.Syntax(s.line, s.col, format, args...)
}

func (s *Scanner) describe() string {
	if s.EOF() {
		return "end of input"
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return "'" + string(r) + "'"
}

// IsBlank reports whether c is a space or a tab.
func IsBlank(c byte) bool { return c == ' ' || c == '\t' }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return c >= '0' && c <= '9' }
