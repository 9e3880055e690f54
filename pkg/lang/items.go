package lang

import "github.com/matzehuels/prettify/pkg/doc"

// Item is one element of a delimited list together with the comments
// attached to it in the source.
type Item struct {
	Doc      doc.Doc
	Leading  []string // comments on their own lines before the item
	Trailing string   // comment on the same line after the item
}

// RepeatedItems describes a delimited, separated list such as a JSON array
// or a TOML inline table.
type RepeatedItems struct {
	Open      string
	Separator string
	Close     string
	Items     []Item

	// Dangling holds comments that follow the last item.
	Dangling []string

	// SpaceAroundDelimiters prints "{ a, b }" instead of "{a, b}" when flat.
	SpaceAroundDelimiters bool

	// TrailingSeparator adds a separator after the last item when the list
	// is broken over several lines.
	TrailingSeparator bool

	// ForceBreak keeps the list broken, typically because the source had a
	// newline right after the opening delimiter.
	ForceBreak bool
}

// Doc returns the list as a group that is either printed on one line or
// with one item per line.
func (r RepeatedItems) Doc() doc.Doc {
	if len(r.Items) == 0 && len(r.Dangling) == 0 {
		return doc.String(r.Open + r.Close)
	}

	edge := doc.SoftLine()
	if r.SpaceAroundDelimiters {
		edge = doc.Line()
	}

	var body []doc.Doc
	for i, it := range r.Items {
		for _, c := range it.Leading {
			body = append(body, doc.Verbatim(c), doc.HardLine())
		}
		body = append(body, it.Doc)
		last := i == len(r.Items)-1
		switch {
		case !last:
			body = append(body, doc.String(r.Separator))
		case r.TrailingSeparator:
			body = append(body, doc.IfBreak(doc.String(r.Separator), nil, ""))
		}
		if it.Trailing != "" {
			body = append(body, doc.LineSuffix(doc.Verbatim(" "+it.Trailing)), doc.BreakParent())
		}
		if !last {
			body = append(body, doc.Line())
		}
	}
	for i, c := range r.Dangling {
		if i > 0 || len(r.Items) > 0 {
			body = append(body, doc.HardLine())
		}
		body = append(body, doc.Verbatim(c), doc.BreakParent())
	}

	return doc.GroupWithOptions(doc.Concat(
		doc.String(r.Open),
		doc.Indent(doc.Concat(edge, doc.Concat(body...))),
		edge,
		doc.String(r.Close),
	), doc.GroupOptions{ShouldBreak: r.ForceBreak})
}
