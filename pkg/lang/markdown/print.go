package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
)

// setextMarkerWidth is the underline width of a setext heading.
const setextMarkerWidth = 12

func blocksDoc(blocks []block) doc.Doc {
	return joinBlocks(blocks, blankLine())
}

func joinBlocks(blocks []block, sep doc.Doc) doc.Doc {
	docs := make([]doc.Doc, len(blocks))
	for i, b := range blocks {
		docs[i] = blockDoc(b)
	}
	return doc.Join(docs, sep)
}

func blankLine() doc.Doc {
	return doc.Concat(doc.HardLine(), doc.HardLine())
}

func blockDoc(b block) doc.Doc {
	switch b := b.(type) {
	case heading:
		return headingDoc(b)
	case setextHeading:
		return setextDoc(b)
	case paragraph:
		return fillDoc(b.lines)
	case thematicBreak:
		return doc.Text("---")
	case fencedCode:
		return fencedDoc(b)
	case indentedCode:
		return indentedDoc(b)
	case list:
		return listDoc(b)
	case blockQuote:
		return doc.Concat(
			doc.Text("> "),
			doc.Align(doc.MarkAsRoot(blocksDoc(b.blocks)), doc.Literal("> ")),
		)
	case rawBlock:
		return lines(b.lines)
	}
	return nil
}

func headingDoc(h heading) doc.Doc {
	marker := strings.Repeat("#", h.level)
	if h.text == "" {
		return doc.Text(marker)
	}
	return doc.Text(marker + " " + strings.Join(strings.Fields(h.text), " "))
}

// setextDoc prints the heading in ATX form when it fits on one line and
// keeps the wrapped setext form otherwise.
func setextDoc(h setextHeading) doc.Doc {
	words := strings.Fields(h.text)
	underline := "="
	if h.level == 2 {
		underline = "-"
	}
	atx := doc.Concat(
		doc.Text(strings.Repeat("#", h.level)+" "),
		doc.Join(textDocs(words), doc.Line()),
	)
	setext := doc.Concat(
		doc.Fill(doc.JoinToSlice(textDocs(words), doc.Line())),
		doc.HardLine(),
		doc.Text(strings.Repeat(underline, setextMarkerWidth)),
	)
	return doc.ConditionalGroup([]doc.Doc{atx, setext}, "")
}

func textDocs(words []string) []doc.Doc {
	docs := make([]doc.Doc, len(words))
	for i, w := range words {
		docs[i] = doc.Text(w)
	}
	return docs
}

var (
	orderedWordRe = regexp.MustCompile(`^\d{1,9}[.)]$`)
	ruleWordRe    = regexp.MustCompile(`^(=+|-+|#{1,6}|[-+*>])$`)
)

// startsBlock reports whether word would start a new block when wrapped
// to the beginning of a line.
func startsBlock(word string) bool {
	return ruleWordRe.MatchString(word) || orderedWordRe.MatchString(word) ||
		strings.HasPrefix(word, "```") || strings.HasPrefix(word, "~~~")
}

// fillDoc re-wraps paragraph text. A line ending in a backslash or two
// spaces is a hard break and is kept, written with a backslash.
func fillDoc(text []string) doc.Doc {
	var parts []doc.Doc
	var sep doc.Doc
	hard := false
	for i, line := range text {
		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		hardBreak := i < len(text)-1 &&
			(strings.HasSuffix(line, "  ") || strings.HasSuffix(strings.TrimRight(line, " \t"), `\`))
		if hardBreak && !strings.HasSuffix(words[len(words)-1], `\`) {
			words[len(words)-1] += `\`
		}
		for _, w := range words {
			switch {
			case len(parts) == 0:
				parts = append(parts, doc.Text(w))
			case startsBlock(w) && !hard:
				last := len(parts) - 1
				parts[last] = doc.Concat(parts[last], doc.Text(" "+w))
			default:
				parts = append(parts, sep, doc.Text(w))
			}
			sep, hard = doc.Line(), false
		}
		if hardBreak {
			sep, hard = doc.HardLine(), true
		}
	}
	return doc.Fill(parts)
}

// lines prints each line on its own, trimming trailing whitespace.
func lines(text []string) doc.Doc {
	docs := make([]doc.Doc, len(text))
	for i, l := range text {
		docs[i] = doc.Text(strings.TrimRight(l, " \t"))
	}
	return doc.Join(docs, doc.HardLine())
}

func fencedDoc(c fencedCode) doc.Doc {
	open := c.fence
	if c.info != "" {
		open += c.info
	}
	parts := []doc.Doc{doc.Text(open)}
	for _, l := range c.lines {
		if l == "" {
			// Drop the list or quote prefix the literal line just printed.
			parts = append(parts, doc.LiteralLine(), doc.Trim())
			continue
		}
		parts = append(parts, doc.LiteralLine(), doc.Text(l))
	}
	parts = append(parts, doc.LiteralLine(), doc.Text(c.fence))
	return doc.Concat(parts...)
}

// indentedDoc turns an indented code block into a fenced one. The fence
// is longer than any backtick run starting a line of the code.
func indentedDoc(c indentedCode) doc.Doc {
	ticks := 3
	for _, l := range c.lines {
		run := len(l) - len(strings.TrimLeft(l, "`"))
		if run+1 > ticks {
			ticks = run + 1
		}
	}
	fence := doc.Text(strings.Repeat("`", ticks))
	return doc.Concat(fence, doc.HardLine(), lines(c.lines), doc.HardLine(), fence)
}

func listDoc(l list) doc.Doc {
	sep := doc.HardLine()
	if l.loose {
		sep = blankLine()
	}
	items := make([]doc.Doc, len(l.items))
	for i, blocks := range l.items {
		marker := "-"
		if l.ordered {
			marker = strconv.Itoa(l.start+i) + string(l.delim)
		}
		if len(blocks) == 0 {
			items[i] = doc.Text(marker)
			continue
		}
		items[i] = doc.Concat(
			doc.Text(marker+" "),
			doc.Align(doc.MarkAsRoot(joinBlocks(blocks, sep)), doc.Spaces(len(marker)+1)),
		)
	}
	return doc.Join(items, sep)
}
