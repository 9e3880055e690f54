// Package json formats JSON and JSON with comments.
//
// Objects and arrays print on one line when they fit and with one member
// per line otherwise. A newline directly after an opening bracket in the
// source keeps that container broken. Strings are normalized to double
// quotes, unquoted and single-quoted keys are quoted, and trailing commas
// are dropped. Line and block comments are preserved.
package json

import (
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/lang"
)

// Language is the JSON front-end.
var Language = &lang.Language{
	Name:       "json",
	Extensions: []string{".json", ".jsonc", ".json5"},
	Aliases:    []string{"jsonc", "json5"},
	Format:     Format,
}

// Format parses src and returns its document, terminated by a newline.
func Format(src string) (doc.Doc, error) {
	p := &parser{s: lang.NewScanner(src)}
	leading := p.comments()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	trailing := p.comments()
	if !p.s.EOF() {
		return nil, p.s.Errorf("unexpected %q after value", p.s.Peek())
	}

	var parts []doc.Doc
	for _, c := range leading {
		parts = append(parts, doc.Verbatim(c.text), doc.HardLine())
	}
	parts = append(parts, v)
	for _, c := range trailing {
		if c.sameLine {
			parts = append(parts, doc.Verbatim(" "+c.text))
		} else {
			parts = append(parts, doc.HardLine(), doc.Verbatim(c.text))
		}
	}
	parts = append(parts, doc.HardLine())
	return doc.Concat(parts...), nil
}

type parser struct {
	s *lang.Scanner
}

type comment struct {
	text     string
	sameLine bool // no newline between the previous token and the comment
}

// comments skips whitespace and collects the comments found in it.
func (p *parser) comments() []comment {
	var out []comment
	newlines := 0
	for {
		newlines += p.s.SkipWhitespace()
		var text string
		switch {
		case p.s.HasPrefix("//"):
			text = strings.TrimRight(p.s.TakeLine(), " \t\r")
		case p.s.HasPrefix("/*"):
			end := strings.Index(p.s.Rest()[2:], "*/")
			if end < 0 {
				text = p.s.Rest()
			} else {
				text = p.s.Rest()[:end+4]
			}
			p.s.Advance(len(text))
			text = strings.ReplaceAll(text, "\r\n", "\n")
		default:
			return out
		}
		out = append(out, comment{text: text, sameLine: newlines == 0})
		newlines = 0
	}
}

func (p *parser) value() (doc.Doc, error) {
	switch c := p.s.Peek(); {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'':
		return p.str()
	case c == '-' || c == '+' || c == '.' || lang.IsDigit(c):
		return p.number()
	case p.s.Consume("true"):
		return doc.String("true"), nil
	case p.s.Consume("false"):
		return doc.String("false"), nil
	case p.s.Consume("null"):
		return doc.String("null"), nil
	case p.s.EOF():
		return nil, p.s.Errorf("unexpected end of input, expected a value")
	default:
		return nil, p.s.Errorf("unexpected %q, expected a value", c)
	}
}

func (p *parser) object() (doc.Doc, error) {
	return p.items("{", "}", func() (doc.Doc, error) {
		key, err := p.key()
		if err != nil {
			return nil, err
		}
		p.comments()
		if err := p.s.Expect(":"); err != nil {
			return nil, err
		}
		p.comments()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		return doc.Concat(key, doc.String(": "), v), nil
	})
}

func (p *parser) array() (doc.Doc, error) {
	return p.items("[", "]", p.value)
}

// items parses a bracketed list whose elements are parsed by item.
// Trailing commas are accepted and dropped.
func (p *parser) items(open, close string, item func() (doc.Doc, error)) (doc.Doc, error) {
	if err := p.s.Expect(open); err != nil {
		return nil, err
	}
	list := lang.RepeatedItems{Open: open, Separator: ",", Close: close}
	list.ForceBreak = startsWithNewline(p.s.Rest())

	pending := p.comments()
	for !p.s.Consume(close) {
		if p.s.EOF() {
			return nil, p.s.Errorf("expected %q, found end of input", close)
		}
		d, err := item()
		if err != nil {
			return nil, err
		}
		it := lang.Item{Doc: d, Leading: texts(pending)}

		after := p.comments()
		comma := p.s.Consume(",")
		if comma {
			after = append(after, p.comments()...)
		}
		pending = nil
		for _, c := range after {
			if c.sameLine && it.Trailing == "" && len(pending) == 0 {
				it.Trailing = c.text
				continue
			}
			pending = append(pending, c)
		}
		list.Items = append(list.Items, it)

		if !comma && !p.s.HasPrefix(close) {
			return nil, p.s.Errorf("expected \",\" or %q, found %s", close, found(p.s))
		}
	}
	list.Dangling = texts(pending)
	return list.Doc(), nil
}

func (p *parser) key() (doc.Doc, error) {
	if c := p.s.Peek(); c == '"' || c == '\'' {
		return p.str()
	}
	raw := p.s.TakeWhile(func(c byte) bool { return c != ':' && c != '\n' && c != '\r' && c != '}' })
	key := strings.TrimSpace(raw)
	if key == "" {
		return nil, p.s.Errorf("expected an object key")
	}
	return doc.String(`"` + escapeBody(key, 0) + `"`), nil
}

// str parses a single- or double-quoted string and returns it
// double-quoted.
func (p *parser) str() (doc.Doc, error) {
	quote := p.s.Peek()
	p.s.Advance(1)
	var sb strings.Builder
	for {
		if p.s.EOF() {
			return nil, p.s.Errorf("unterminated string")
		}
		c := p.s.Peek()
		switch c {
		case quote:
			p.s.Advance(1)
			return doc.String(`"` + escapeBody(sb.String(), quote) + `"`), nil
		case '\n':
			return nil, p.s.Errorf("newline in string")
		case '\\':
			sb.WriteByte(c)
			p.s.Advance(1)
			if p.s.EOF() {
				return nil, p.s.Errorf("unterminated string")
			}
			sb.WriteRune(p.s.Next())
		default:
			sb.WriteRune(p.s.Next())
		}
	}
}

// escapeBody rewrites the body of a string quoted with quote so that it is
// valid inside double quotes. Escapes JSON does not know lose their
// backslash.
func escapeBody(body string, quote byte) string {
	var sb strings.Builder
	escaped := false
	for _, r := range body {
		switch {
		case escaped:
			if strings.ContainsRune(`"\/bfnrtu`, r) {
				sb.WriteByte('\\')
			}
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"' && quote != '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (p *parser) number() (doc.Doc, error) {
	lit := p.s.TakeWhile(func(c byte) bool {
		return lang.IsDigit(c) || strings.IndexByte("+-.eExXabcdefABCDEF_", c) >= 0
	})
	if !validNumber(lit) {
		return nil, p.s.Errorf("invalid number %q", lit)
	}
	return doc.String(strings.TrimPrefix(lit, "+")), nil
}

// validNumber accepts -?int(.frac)?([eE][+-]?int)? with an optional leading
// plus sign.
func validNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if len(s) > 0 && s[0] == '+' {
		s = s[1:]
	}
	digits := func() bool {
		n := 0
		for n < len(s) && lang.IsDigit(s[n]) {
			n++
		}
		s = s[n:]
		return n > 0
	}
	if !digits() {
		return false
	}
	if strings.HasPrefix(s, ".") {
		s = s[1:]
		if !digits() {
			return false
		}
	}
	if len(s) > 0 && (s[0] == 'e' || s[0] == 'E') {
		s = s[1:]
		if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
			s = s[1:]
		}
		if !digits() {
			return false
		}
	}
	return s == ""
}

func startsWithNewline(rest string) bool {
	trimmed := strings.TrimLeft(rest, " \t\r")
	return strings.HasPrefix(trimmed, "\n")
}

func texts(cs []comment) []string {
	if len(cs) == 0 {
		return nil
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.text
	}
	return out
}

func found(s *lang.Scanner) string {
	if s.EOF() {
		return "end of input"
	}
	return "'" + string(s.Peek()) + "'"
}
