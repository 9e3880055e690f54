package markdown

import (
	"regexp"
	"strings"
)

type block interface {
	isBlock()
}

type heading struct {
	level int
	text  string
}

type setextHeading struct {
	level int
	text  string
}

type paragraph struct {
	lines []string
}

type thematicBreak struct{}

type fencedCode struct {
	fence string
	info  string
	lines []string
}

type indentedCode struct {
	lines []string
}

type list struct {
	ordered bool
	start   int
	delim   byte
	loose   bool
	items   [][]block
}

type blockQuote struct {
	blocks []block
}

// rawBlock is kept line by line, e.g. HTML or tables.
type rawBlock struct {
	lines []string
}

func (heading) isBlock()       {}
func (setextHeading) isBlock() {}
func (paragraph) isBlock()     {}
func (thematicBreak) isBlock() {}
func (fencedCode) isBlock()    {}
func (indentedCode) isBlock()  {}
func (list) isBlock()          {}
func (blockQuote) isBlock()    {}
func (rawBlock) isBlock()      {}

var (
	atxRe      = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	thematicRe = regexp.MustCompile(`^ {0,3}((?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)
	setextRe   = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)
	fenceRe    = regexp.MustCompile("^( {0,3})(`{3,}|~{3,})[ \t]*(.*)$")
	bulletRe   = regexp.MustCompile(`^( {0,3})([-+*])([ \t]+|$)`)
	orderedRe  = regexp.MustCompile(`^( {0,3})(\d{1,9})([.)])([ \t]+|$)`)
	quoteRe    = regexp.MustCompile(`^ {0,3}> ?`)
)

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentOf returns the visual indentation of line, counting tabs as
// reaching the next multiple of four.
func indentOf(line string) int {
	n := 0
	for _, c := range line {
		switch c {
		case ' ':
			n++
		case '\t':
			n += 4 - n%4
		default:
			return n
		}
	}
	return n
}

// dedent removes up to n columns of leading whitespace.
func dedent(line string, n int) string {
	col := 0
	for i, c := range line {
		if col >= n {
			return line[i:]
		}
		switch c {
		case ' ':
			col++
		case '\t':
			col += 4 - col%4
		default:
			return line[i:]
		}
	}
	return ""
}

// interruptsParagraph reports whether line starts a block that ends a
// running paragraph.
func interruptsParagraph(line string) bool {
	if isBlank(line) {
		return true
	}
	if atxRe.MatchString(line) || thematicRe.MatchString(line) || fenceRe.MatchString(line) || quoteRe.MatchString(line) {
		return true
	}
	if m := bulletRe.FindStringSubmatch(line); m != nil && !isBlank(line[len(m[0]):]) {
		return true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil && m[2] == "1" && !isBlank(line[len(m[0]):]) {
		return true
	}
	return false
}

func parseBlocks(lines []string) []block {
	var blocks []block
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isBlank(line) {
			i++
			continue
		}

		var b block
		switch {
		case indentOf(line) >= 4:
			b, i = parseIndentedCode(lines, i)
		case fenceRe.MatchString(line):
			b, i = parseFencedCode(lines, i)
		case atxRe.MatchString(line):
			m := atxRe.FindStringSubmatch(line)
			b, i = heading{level: len(m[1]), text: strings.TrimSpace(m[2])}, i+1
		case thematicRe.MatchString(line):
			b, i = thematicBreak{}, i+1
		case quoteRe.MatchString(line):
			b, i = parseBlockQuote(lines, i)
		case bulletRe.MatchString(line) || orderedRe.MatchString(line):
			b, i = parseList(lines, i)
		case isRawStart(line):
			b, i = parseRaw(lines, i)
		default:
			b, i = parseParagraph(lines, i)
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func isRawStart(line string) bool {
	t := strings.TrimLeft(line, " ")
	return strings.HasPrefix(t, "<") || strings.HasPrefix(t, "|")
}

func parseRaw(lines []string, i int) (block, int) {
	var raw []string
	for ; i < len(lines) && !isBlank(lines[i]); i++ {
		raw = append(raw, strings.TrimRight(lines[i], " \t"))
	}
	return rawBlock{lines: raw}, i
}

func parseParagraph(lines []string, i int) (block, int) {
	text := []string{lines[i]}
	for i++; i < len(lines); i++ {
		line := lines[i]
		if m := setextRe.FindStringSubmatch(line); m != nil {
			level := 1
			if m[1][0] == '-' {
				level = 2
			}
			return setextHeading{level: level, text: strings.Join(text, "\n")}, i + 1
		}
		if interruptsParagraph(line) {
			break
		}
		text = append(text, line)
	}
	return paragraph{lines: text}, i
}

func parseIndentedCode(lines []string, i int) (block, int) {
	var code []string
	for ; i < len(lines); i++ {
		line := lines[i]
		if !isBlank(line) && indentOf(line) < 4 {
			break
		}
		code = append(code, dedent(line, 4))
	}
	for len(code) > 0 && isBlank(code[len(code)-1]) {
		code = code[:len(code)-1]
	}
	return indentedCode{lines: code}, i
}

func parseFencedCode(lines []string, i int) (block, int) {
	m := fenceRe.FindStringSubmatch(lines[i])
	indent, fence, info := len(m[1]), m[2], strings.TrimSpace(m[3])
	var code []string
	for i++; i < len(lines); i++ {
		line := lines[i]
		t := strings.TrimSpace(line)
		if indentOf(line) < 4 && strings.HasPrefix(t, fence) && strings.Trim(t, fence[:1]) == "" {
			return fencedCode{fence: fence, info: info, lines: code}, i + 1
		}
		code = append(code, dedent(line, indent))
	}
	return fencedCode{fence: fence, info: info, lines: code}, i
}

func parseBlockQuote(lines []string, i int) (block, int) {
	var inner []string
	for ; i < len(lines); i++ {
		line := lines[i]
		if loc := quoteRe.FindStringIndex(line); loc != nil {
			inner = append(inner, line[loc[1]:])
			continue
		}
		// lazy continuation of a quoted paragraph
		if len(inner) > 0 && !isBlank(inner[len(inner)-1]) && !interruptsParagraph(line) {
			inner = append(inner, line)
			continue
		}
		break
	}
	return blockQuote{blocks: parseBlocks(inner)}, i
}

// listMarker matches a list item start and returns the content column.
type listMarker struct {
	ordered bool
	bullet  byte
	number  int
	delim   byte
	width   int // columns up to the item content
	content string
}

func matchMarker(line string) (listMarker, bool) {
	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return newMarker(line, m[0], len(m[1])+1, m[3], listMarker{bullet: m[2][0]}), true
	}
	if m := orderedRe.FindStringSubmatch(line); m != nil {
		n := 0
		for _, c := range m[2] {
			n = n*10 + int(c-'0')
		}
		mk := listMarker{ordered: true, number: n, delim: m[3][0]}
		return newMarker(line, m[0], len(m[1])+len(m[2])+1, m[4], mk), true
	}
	return listMarker{}, false
}

func newMarker(line, match string, markerEnd int, spacing string, mk listMarker) listMarker {
	rest := line[len(match):]
	switch {
	case rest == "" || isBlank(rest):
		mk.width = markerEnd + 1
		rest = ""
	case len(spacing) > 4:
		// content indented as code: one space belongs to the marker
		mk.width = markerEnd + 1
		rest = spacing[1:] + rest
	default:
		mk.width = markerEnd + len(spacing)
	}
	mk.content = rest
	return mk
}

func (m listMarker) sameList(o listMarker) bool {
	if m.ordered != o.ordered {
		return false
	}
	if m.ordered {
		return m.delim == o.delim
	}
	return m.bullet == o.bullet
}

func parseList(lines []string, i int) (block, int) {
	first, _ := matchMarker(lines[i])
	l := list{ordered: first.ordered, start: first.number, delim: first.delim}

	for i < len(lines) && !thematicRe.MatchString(lines[i]) {
		mk, ok := matchMarker(lines[i])
		if !ok || !mk.sameList(first) {
			break
		}
		content := []string{mk.content}
		blankSeen := false
		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			if isBlank(line) {
				content = append(content, "")
				blankSeen = true
				continue
			}
			if indentOf(line) >= mk.width {
				content = append(content, dedent(line, mk.width))
				continue
			}
			if _, ok := matchMarker(line); ok {
				break
			}
			// lazy paragraph continuation
			if !blankSeen && !interruptsParagraph(line) {
				content = append(content, strings.TrimLeft(line, " \t"))
				continue
			}
			break
		}

		// blank lines at the end of the item separate it from the next one
		trailing := 0
		for len(content) > 1 && content[len(content)-1] == "" {
			content = content[:len(content)-1]
			trailing++
		}
		j -= trailing
		items := parseBlocks(content)
		if len(items) > 1 && hasBlankBetween(content) {
			l.loose = true
		}
		l.items = append(l.items, items)

		i = j
		if i < len(lines) && isBlank(lines[i]) {
			k := i
			for k < len(lines) && isBlank(lines[k]) {
				k++
			}
			next, ok := matchMarker(valueAt(lines, k))
			if !ok || !next.sameList(first) {
				break
			}
			l.loose = true
			i = k
		}
	}
	return l, i
}

func hasBlankBetween(content []string) bool {
	for _, c := range content {
		if c == "" {
			return true
		}
	}
	return false
}

func valueAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
