package toml

import (
	"regexp"
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/lang"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([Tt ]\d{2}:\d{2}:\d{2}(\.\d+)?)?([Zz]|[+-]\d{2}:\d{2})?$`)
	timeRe  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}(\.\d+)?$`)
	digitRe = regexp.MustCompile(`^[0-9](_?[0-9])*$`)
	radixRe = regexp.MustCompile(`^0([xX][0-9a-fA-F](_?[0-9a-fA-F])*|[oO][0-7](_?[0-7])*|[bB][01](_?[01])*)$`)
)

func isScalarChar(c byte) bool {
	return isBareKeyChar(c) || c == '+' || c == '.' || c == ':'
}

// scalar parses booleans, numbers and date-times.
func (p *parser) scalar() (doc.Doc, error) {
	tok := p.s.TakeWhile(isScalarChar)
	// local date followed by a space-separated time
	if len(tok) == 10 && dateRe.MatchString(tok) && p.s.Peek() == ' ' &&
		lang.IsDigit(p.s.PeekAt(1)) && lang.IsDigit(p.s.PeekAt(2)) && p.s.PeekAt(3) == ':' {
		p.s.Advance(1)
		tok += " " + p.s.TakeWhile(isScalarChar)
	}
	if tok == "" {
		return nil, p.s.Errorf("expected a value, found %s", describe(p.s))
	}

	switch tok {
	case "true", "false", "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return doc.String(tok), nil
	}
	if dateRe.MatchString(tok) || timeRe.MatchString(tok) {
		return doc.String(normalizeDate(tok)), nil
	}
	if s, ok := formatNumber(tok); ok {
		return doc.String(s), nil
	}
	return nil, p.s.Errorf("invalid value %q", tok)
}

func normalizeDate(s string) string {
	if len(s) > 10 && s[10] == 't' {
		s = s[:10] + "T" + s[11:]
	}
	if strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "Z"
	}
	return s
}

// formatNumber formats an integer or float literal. Decimal digits are
// grouped with underscores, radix prefixes and hex digits are lowered and
// floats always have a fractional part.
func formatNumber(tok string) (string, bool) {
	if radixRe.MatchString(tok) {
		return strings.ToLower(tok), true
	}

	sign := ""
	if tok[0] == '+' || tok[0] == '-' {
		if tok[0] == '-' {
			sign = "-"
		}
		tok = tok[1:]
	}

	mantissa, exp, hasExp := strings.Cut(strings.ToLower(tok), "e")
	intPart, frac, hasFrac := strings.Cut(mantissa, ".")
	if !digitRe.MatchString(intPart) || hasFrac && !digitRe.MatchString(frac) {
		return "", false
	}
	if len(intPart) > 1 && intPart[0] == '0' {
		return "", false
	}
	if !hasFrac && !hasExp {
		return sign + lang.AddIntegerUnderscores(intPart), true
	}

	var sb strings.Builder
	sb.WriteString(sign)
	sb.WriteString(lang.AddIntegerUnderscores(intPart))
	sb.WriteByte('.')
	if hasFrac {
		sb.WriteString(lang.AddIntegerUnderscoresReverse(frac))
	} else {
		sb.WriteByte('0')
	}
	if hasExp {
		expSign := ""
		if exp != "" && (exp[0] == '+' || exp[0] == '-') {
			if exp[0] == '-' {
				expSign = "-"
			}
			exp = exp[1:]
		}
		if !digitRe.MatchString(exp) {
			return "", false
		}
		sb.WriteString("e" + expSign + exp)
	}
	return sb.String(), true
}

// comments skips whitespace, newlines and comments inside an array and
// returns the comments with whether each started on the current line.
func (p *parser) comments() (out []string, sameLine []bool) {
	newlines := 0
	for {
		newlines += p.s.SkipWhitespace()
		if p.s.Peek() != '#' {
			return out, sameLine
		}
		out = append(out, p.comment())
		sameLine = append(sameLine, newlines == 0)
		newlines = 0
	}
}

func (p *parser) array() (doc.Doc, error) {
	p.s.Advance(1)
	list := lang.RepeatedItems{Open: "[", Separator: ",", Close: "]", TrailingSeparator: true}
	list.ForceBreak = strings.HasPrefix(strings.TrimLeft(p.s.Rest(), " \t\r"), "\n")

	pending, _ := p.comments()
	for !p.s.Consume("]") {
		if p.s.EOF() {
			return nil, p.s.Errorf(`expected "]", found end of input`)
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		it := lang.Item{Doc: v, Leading: pending}

		after, same := p.comments()
		comma := p.s.Consume(",")
		if comma {
			more, moreSame := p.comments()
			after = append(after, more...)
			same = append(same, moreSame...)
		}
		pending = nil
		for i, c := range after {
			if same[i] && it.Trailing == "" && len(pending) == 0 {
				it.Trailing = c
				continue
			}
			pending = append(pending, c)
		}
		list.Items = append(list.Items, it)

		if !comma && p.s.Peek() != ']' {
			return nil, p.s.Errorf(`expected "," or "]", found %s`, describe(p.s))
		}
	}
	list.Dangling = pending
	if len(list.Dangling) > 0 || hasComments(list.Items) {
		list.ForceBreak = true
	}
	return list.Doc(), nil
}

func hasComments(items []lang.Item) bool {
	for _, it := range items {
		if len(it.Leading) > 0 || it.Trailing != "" {
			return true
		}
	}
	return false
}

// inlineTable parses { k = v, ... }. Inline tables must stay on one line,
// so the result contains no line breaks.
func (p *parser) inlineTable() (doc.Doc, error) {
	p.s.Advance(1)
	p.s.SkipSpace()
	if p.s.Consume("}") {
		return doc.String("{}"), nil
	}
	var entries []doc.Doc
	for {
		p.s.SkipSpace()
		kv, err := p.keyValue()
		if err != nil {
			return nil, err
		}
		entries = append(entries, kv)
		p.s.SkipSpace()
		if p.s.Consume("}") {
			break
		}
		if err := p.s.Expect(","); err != nil {
			return nil, err
		}
	}
	return doc.Concat(doc.String("{ "), doc.Join(entries, doc.String(", ")), doc.String(" }")), nil
}
