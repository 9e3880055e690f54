package inspect

import "github.com/matzehuels/prettify/pkg/doc"

// Stats summarises a document tree.
type Stats struct {
	Nodes    int
	Texts    int
	Groups   int
	Lines    int
	MaxDepth int
}

// Collect walks d iteratively and counts its nodes.
func Collect(d doc.Doc) Stats {
	type frame struct {
		d     doc.Doc
		depth int
	}
	var s Stats
	stack := []frame{{d, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.d == nil {
			continue
		}
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, f.depth)
		for _, c := range children(f.d) {
			stack = append(stack, frame{c, f.depth + 1})
		}
		switch f.d.(type) {
		case doc.Text:
			s.Texts++
		case *doc.GroupCmd:
			s.Groups++
		case doc.LineCmd:
			s.Lines++
		}
	}
	return s
}

// children returns the direct sub-documents of d. A conditional group's
// children are its states.
func children(d doc.Doc) []doc.Doc {
	switch d := d.(type) {
	case doc.Children:
		return d
	case *doc.GroupCmd:
		if len(d.ExpandedStates) > 0 {
			return d.ExpandedStates
		}
		return []doc.Doc{d.Contents}
	case doc.FillCmd:
		return d.Parts
	case doc.IfBreakCmd:
		return []doc.Doc{d.BreakContents, d.FlatContents}
	case doc.IndentIfBreakCmd:
		return []doc.Doc{d.Contents}
	case doc.LineSuffixCmd:
		return []doc.Doc{d.Contents}
	case doc.IndentCmd:
		return []doc.Doc{d.Contents}
	case doc.AlignCmd:
		return []doc.Doc{d.Contents}
	}
	return nil
}
