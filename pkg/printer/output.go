package printer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// chunk is a piece of emitted output or a cursor marker.
type chunk struct {
	text   string
	cursor bool
}

type output []chunk

func (o *output) write(s string) {
	if s != "" {
		*o = append(*o, chunk{text: s})
	}
}

func (o *output) cursor() {
	*o = append(*o, chunk{cursor: true})
}

// trim removes trailing spaces and tabs, looking through whitespace-only
// chunks. Cursor markers in the trimmed region move to the end. It returns
// the number of characters removed.
func (o *output) trim() int {
	out := *o
	trimmed, cursors := 0, 0
	i := len(out) - 1
outer:
	for ; i >= 0; i-- {
		c := out[i]
		if c.cursor {
			cursors++
			continue
		}
		for j := len(c.text) - 1; j >= 0; j-- {
			if ch := c.text[j]; ch == ' ' || ch == '\t' {
				trimmed++
				continue
			}
			out[i].text = c.text[:j+1]
			break outer
		}
	}
	if trimmed == 0 && cursors == 0 {
		return 0
	}
	out = out[:i+1]
	for ; cursors > 0; cursors-- {
		out = append(out, chunk{cursor: true})
	}
	*o = out
	return trimmed
}

// result joins the chunks and records the byte offset of every cursor.
func (o output) result() Result {
	var (
		sb  strings.Builder
		res Result
	)
	for _, c := range o {
		if c.cursor {
			res.CursorOffsets = append(res.CursorOffsets, sb.Len())
			continue
		}
		sb.WriteString(c.text)
	}
	res.Formatted = sb.String()
	return res
}

// textWidth is the number of terminal columns s occupies. A tab counts as
// one column, matching what trim gives back when it removes one.
func textWidth(s string) int {
	return runewidth.StringWidth(s) + strings.Count(s, "\t")
}
