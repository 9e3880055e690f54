// Package toml formats TOML documents.
//
// The formatter normalizes spacing around "=" and in table headers, puts
// one space after "#" in comments, collapses runs of blank lines, groups
// the digits of long decimal integers with underscores and prints arrays
// on one line when they fit. Strings and date-times are kept verbatim.
package toml

import (
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/lang"
)

// Language is the TOML front-end.
var Language = &lang.Language{
	Name:       "toml",
	Extensions: []string{".toml"},
	Format:     Format,
}

// Format parses src and returns its document.
func Format(src string) (doc.Doc, error) {
	p := &parser{s: lang.NewScanner(src)}
	stmts, err := p.document()
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return doc.Concat(), nil
	}

	parts := make([]doc.Doc, 0, len(stmts)*3)
	for i, st := range stmts {
		if i > 0 {
			parts = append(parts, doc.HardLine())
			if st.blankBefore {
				parts = append(parts, doc.HardLine())
			}
		}
		parts = append(parts, st.doc)
	}
	parts = append(parts, doc.HardLine())
	return doc.Concat(parts...), nil
}

type statement struct {
	doc         doc.Doc
	blankBefore bool
}

type parser struct {
	s *lang.Scanner
}

func (p *parser) document() ([]statement, error) {
	var (
		stmts  []statement
		blanks int
	)
	for {
		p.s.SkipSpace()
		if p.s.EOF() {
			return stmts, nil
		}
		if p.s.Consume("\r\n") || p.s.Consume("\n") {
			blanks++
			continue
		}

		var (
			d   doc.Doc
			err error
		)
		switch p.s.Peek() {
		case '#':
			d = doc.String(p.comment())
		case '[':
			d, err = p.header()
		default:
			d, err = p.keyValue()
		}
		if err != nil {
			return nil, err
		}
		if trailing, err := p.endOfLine(); err != nil {
			return nil, err
		} else if trailing != "" {
			d = doc.Concat(d, doc.String(" "+trailing))
		}

		stmts = append(stmts, statement{doc: d, blankBefore: blanks > 0 && len(stmts) > 0})
		blanks = 0
	}
}

// endOfLine consumes an optional comment and the newline that ends a
// statement, returning the normalized comment.
func (p *parser) endOfLine() (string, error) {
	p.s.SkipSpace()
	var c string
	if p.s.Peek() == '#' {
		c = p.comment()
	}
	if p.s.EOF() || p.s.Consume("\r\n") || p.s.Consume("\n") {
		return c, nil
	}
	return "", p.s.Errorf("expected end of line, found %q", p.s.Peek())
}

// comment consumes a comment and returns it with exactly one space after
// the hash.
func (p *parser) comment() string {
	line := strings.TrimRight(p.s.TakeLine(), " \t\r")
	body := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	if body == "" {
		return "#"
	}
	return "# " + body
}

func (p *parser) header() (doc.Doc, error) {
	open, close := "[", "]"
	if p.s.HasPrefix("[[") {
		open, close = "[[", "]]"
	}
	p.s.Advance(len(open))
	p.s.SkipSpace()
	key, err := p.key()
	if err != nil {
		return nil, err
	}
	p.s.SkipSpace()
	if err := p.s.Expect(close); err != nil {
		return nil, err
	}
	return doc.String(open + key + close), nil
}

func (p *parser) keyValue() (doc.Doc, error) {
	key, err := p.key()
	if err != nil {
		return nil, err
	}
	p.s.SkipSpace()
	if err := p.s.Expect("="); err != nil {
		return nil, err
	}
	p.s.SkipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	return doc.Concat(doc.String(key+" = "), v), nil
}

// key parses a possibly dotted key and returns it without the whitespace
// around dots.
func (p *parser) key() (string, error) {
	var parts []string
	for {
		part, err := p.simpleKey()
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
		p.s.SkipSpace()
		if !p.s.Consume(".") {
			return strings.Join(parts, "."), nil
		}
		p.s.SkipSpace()
	}
}

func (p *parser) simpleKey() (string, error) {
	switch p.s.Peek() {
	case '"':
		return p.basicString()
	case '\'':
		return p.literalString()
	}
	k := p.s.TakeWhile(isBareKeyChar)
	if k == "" {
		return "", p.s.Errorf("expected a key, found %s", describe(p.s))
	}
	return k, nil
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || lang.IsDigit(c) || c == '_' || c == '-'
}

func (p *parser) value() (doc.Doc, error) {
	switch {
	case p.s.HasPrefix(`"""`):
		return p.multilineString(`"""`)
	case p.s.HasPrefix("'''"):
		return p.multilineString("'''")
	case p.s.Peek() == '"':
		s, err := p.basicString()
		return doc.String(s), err
	case p.s.Peek() == '\'':
		s, err := p.literalString()
		return doc.String(s), err
	case p.s.Peek() == '[':
		return p.array()
	case p.s.Peek() == '{':
		return p.inlineTable()
	case p.s.EOF():
		return nil, p.s.Errorf("expected a value, found end of input")
	}
	return p.scalar()
}

func (p *parser) basicString() (string, error) {
	start := p.s.Rest()
	n := 1
	for {
		if n >= len(start) || start[n] == '\n' {
			return "", p.s.Errorf("unterminated string")
		}
		switch start[n] {
		case '\\':
			n += 2
			continue
		case '"':
			p.s.Advance(n + 1)
			return start[:n+1], nil
		}
		n++
	}
}

func (p *parser) literalString() (string, error) {
	rest := p.s.Rest()
	end := strings.IndexAny(rest[1:], "'\n")
	if end < 0 || rest[1+end] != '\'' {
		return "", p.s.Errorf("unterminated string")
	}
	p.s.Advance(end + 2)
	return rest[:end+2], nil
}

func (p *parser) multilineString(delim string) (doc.Doc, error) {
	rest := p.s.Rest()
	end := strings.Index(rest[3:], delim)
	if end < 0 {
		return nil, p.s.Errorf("unterminated multi-line string")
	}
	n := 3 + end + 3
	// up to two quotes directly before the closing delimiter belong to the content
	for i := 0; i < 2 && n < len(rest) && rest[n] == delim[0]; i++ {
		n++
	}
	p.s.Advance(n)
	return doc.Verbatim(rest[:n]), nil
}

func describe(s *lang.Scanner) string {
	if s.EOF() {
		return "end of input"
	}
	return "'" + string(s.Peek()) + "'"
}
