// Package inspect renders documents for debugging.
//
// # Formats
//
//   - [Text] prints the document as the builder calls that would produce it,
//     laid out with the printer itself
//   - [ToDOT] produces Graphviz DOT source of the document tree
//   - [RenderSVG] renders DOT source to SVG in-process
//
// [Collect] gathers node counts and nesting depth for a summary line.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package inspect

import (
	"strconv"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/printer"
)

// Text returns the document as builder calls, e.g.
//
//	group(["[", indent([softline, "1"]), softline, "]"])
func Text(d doc.Doc, cfg printer.Config) string {
	return printer.Print(doc.Concat(debug(d), doc.HardLine()), cfg)
}

func call(name string, args ...doc.Doc) doc.Doc {
	return doc.Group(doc.Concat(
		doc.Text(name+"("),
		doc.Indent(doc.Concat(doc.SoftLine(), doc.Join(args, doc.Concat(doc.Text(","), doc.Line())))),
		doc.SoftLine(),
		doc.Text(")"),
	))
}

func list(items []doc.Doc) doc.Doc {
	if len(items) == 0 {
		return doc.Text("[]")
	}
	return doc.Group(doc.Concat(
		doc.Text("["),
		doc.Indent(doc.Concat(doc.SoftLine(), doc.Join(items, doc.Concat(doc.Text(","), doc.Line())))),
		doc.SoftLine(),
		doc.Text("]"),
	))
}

func debugAll(ds []doc.Doc) []doc.Doc {
	out := make([]doc.Doc, len(ds))
	for i, d := range ds {
		out[i] = debug(d)
	}
	return out
}

func options(pairs ...string) doc.Doc {
	var fields []doc.Doc
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			fields = append(fields, doc.Text(pairs[i]+": "+pairs[i+1]))
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return doc.Group(doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.Concat(doc.Line(), doc.Join(fields, doc.Concat(doc.Text(","), doc.Line())))),
		doc.Line(),
		doc.Text("}"),
	))
}

func withOptions(name string, opts doc.Doc, args ...doc.Doc) doc.Doc {
	if opts != nil {
		args = append(args, opts)
	}
	return call(name, args...)
}

func quoteID(id string) string {
	if id == "" {
		return ""
	}
	return strconv.Quote(id)
}

func debug(d doc.Doc) doc.Doc {
	switch d := d.(type) {
	case nil:
		return doc.Text("nil")
	case doc.Text:
		return doc.Text(strconv.Quote(string(d)))
	case doc.Children:
		if name, ok := hardLineName(d); ok {
			return doc.Text(name)
		}
		return list(debugAll(d))
	case *doc.GroupCmd:
		opts := options("shouldBreak", boolOpt(d.ShouldBreak), "id", quoteID(d.ID))
		if len(d.ExpandedStates) > 0 {
			return withOptions("conditionalGroup", opts, list(debugAll(d.ExpandedStates)))
		}
		return withOptions("group", opts, debug(d.Contents))
	case doc.FillCmd:
		return call("fill", list(debugAll(d.Parts)))
	case doc.IfBreakCmd:
		return withOptions("ifBreak", options("groupId", quoteID(d.GroupID)), debug(d.BreakContents), debug(d.FlatContents))
	case doc.IndentIfBreakCmd:
		return withOptions("indentIfBreak", options("groupId", quoteID(d.GroupID), "negate", boolOpt(d.Negate)), debug(d.Contents))
	case doc.BreakParentCmd:
		return doc.Text("breakParent")
	case doc.LineCmd:
		switch d.Mode {
		case doc.LineHard:
			return doc.Text("hardlineWithoutBreakParent")
		case doc.LineHardLiteral:
			return doc.Text("literallineWithoutBreakParent")
		}
		return doc.Text(d.Mode.String())
	case doc.LineSuffixCmd:
		return call("lineSuffix", debug(d.Contents))
	case doc.LineSuffixBoundaryCmd:
		return doc.Text("lineSuffixBoundary")
	case doc.IndentCmd:
		return call("indent", debug(d.Contents))
	case doc.AlignCmd:
		return alignCall(d)
	case doc.TrimCmd:
		return doc.Text("trim")
	case doc.CursorCmd:
		return doc.Text("cursor")
	}
	return doc.Text("unknown")
}

func alignCall(a doc.AlignCmd) doc.Doc {
	switch a.Amount.Kind {
	case doc.AlignDedent:
		return call("dedent", debug(a.Contents))
	case doc.AlignDedentToRoot:
		return call("dedentToRoot", debug(a.Contents))
	case doc.AlignRoot:
		return call("markAsRoot", debug(a.Contents))
	case doc.AlignLiteral:
		return call("align", doc.Text(strconv.Quote(a.Amount.Literal)), debug(a.Contents))
	}
	return call("align", doc.Text(strconv.Itoa(a.Amount.Spaces)), debug(a.Contents))
}

// hardLineName recognises the two-element concatenations built by
// doc.HardLine and doc.LiteralLine.
func hardLineName(c doc.Children) (string, bool) {
	if len(c) != 2 {
		return "", false
	}
	line, ok := c[0].(doc.LineCmd)
	if _, bp := c[1].(doc.BreakParentCmd); !ok || !bp {
		return "", false
	}
	switch line.Mode {
	case doc.LineHard:
		return "hardline", true
	case doc.LineHardLiteral:
		return "literalline", true
	}
	return "", false
}

func boolOpt(b bool) string {
	if b {
		return "true"
	}
	return ""
}
