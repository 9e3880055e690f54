package inspect

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/prettify/pkg/doc"
)

// ToDOT converts a document tree to Graphviz DOT source. Edges are
// labelled with the child index; groups that must break are filled.
func ToDOT(d doc.Doc) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Doc {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  edge [fontsize=9, color=grey40];\n")
	buf.WriteString("\n")

	type item struct {
		d  doc.Doc
		id int
	}
	next := 0
	stack := []item{{d, next}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fmt.Fprintf(&buf, "  n%d [%s];\n", it.id, nodeAttrs(it.d))
		kids := children(it.d)
		ids := make([]int, len(kids))
		for i := range kids {
			next++
			ids[i] = next
			fmt.Fprintf(&buf, "  n%d -> n%d [label=\"%d\"];\n", it.id, next, i)
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, item{kids[i], ids[i]})
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(d doc.Doc) string {
	label, attrs := nodeLabel(d), ""
	switch d := d.(type) {
	case doc.Text:
		attrs = ", shape=plaintext"
	case *doc.GroupCmd:
		attrs = ", shape=ellipse"
		if d.ShouldBreak {
			attrs += ", style=filled, fillcolor=lightpink"
		}
	case doc.LineCmd, doc.BreakParentCmd:
		attrs = ", fontcolor=grey30"
	}
	return "label=" + strconv.Quote(label) + attrs
}

func nodeLabel(d doc.Doc) string {
	switch d := d.(type) {
	case nil:
		return "nil"
	case doc.Text:
		return strconv.Quote(string(d))
	case doc.Children:
		return "concat"
	case *doc.GroupCmd:
		name := "group"
		if len(d.ExpandedStates) > 0 {
			name = "conditionalGroup"
		}
		if d.ID != "" {
			name += " #" + d.ID
		}
		return name
	case doc.FillCmd:
		return "fill"
	case doc.IfBreakCmd:
		if d.GroupID != "" {
			return "ifBreak #" + d.GroupID
		}
		return "ifBreak"
	case doc.IndentIfBreakCmd:
		return "indentIfBreak #" + d.GroupID
	case doc.BreakParentCmd:
		return "breakParent"
	case doc.LineCmd:
		return d.Mode.String()
	case doc.LineSuffixCmd:
		return "lineSuffix"
	case doc.LineSuffixBoundaryCmd:
		return "lineSuffixBoundary"
	case doc.IndentCmd:
		return "indent"
	case doc.AlignCmd:
		switch d.Amount.Kind {
		case doc.AlignDedent:
			return "dedent"
		case doc.AlignDedentToRoot:
			return "dedentToRoot"
		case doc.AlignRoot:
			return "markAsRoot"
		case doc.AlignLiteral:
			return "align " + strconv.Quote(d.Amount.Literal)
		}
		return "align " + strconv.Itoa(d.Amount.Spaces)
	case doc.TrimCmd:
		return "trim"
	case doc.CursorCmd:
		return "cursor"
	}
	return "unknown"
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
