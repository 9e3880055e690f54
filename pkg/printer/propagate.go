package printer

import "github.com/matzehuels/prettify/pkg/doc"

// propagateBreaks returns the set of groups that must break because they
// contain a BreakParent or a broken group. Conditional groups are never
// marked and do not pass a break upwards unless they request one themselves.
func propagateBreaks(root doc.Doc) map[*doc.GroupCmd]bool {
	type frame struct {
		d    doc.Doc
		exit bool
	}
	var (
		broken  = make(map[*doc.GroupCmd]bool)
		visited = make(map[*doc.GroupCmd]bool)
		groups  []*doc.GroupCmd
		stack   = []frame{{d: root}}
	)
	breakParent := func() {
		if len(groups) == 0 {
			return
		}
		g := groups[len(groups)-1]
		if len(g.ExpandedStates) == 0 {
			broken[g] = true
		}
	}
	exitGroup := func(g *doc.GroupCmd) {
		if g.ShouldBreak || broken[g] {
			breakParent()
		}
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			exitGroup(g)
			continue
		}

		switch d := f.d.(type) {
		case doc.BreakParentCmd:
			breakParent()
		case doc.Children:
			for i := len(d) - 1; i >= 0; i-- {
				stack = append(stack, frame{d: d[i]})
			}
		case doc.FillCmd:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				stack = append(stack, frame{d: d.Parts[i]})
			}
		case *doc.GroupCmd:
			if visited[d] {
				exitGroup(d)
				continue
			}
			visited[d] = true
			groups = append(groups, d)
			stack = append(stack, frame{d: d, exit: true})
			if len(d.ExpandedStates) > 0 {
				for i := len(d.ExpandedStates) - 1; i >= 0; i-- {
					stack = append(stack, frame{d: d.ExpandedStates[i]})
				}
			} else {
				stack = append(stack, frame{d: d.Contents})
			}
		case doc.IfBreakCmd:
			stack = append(stack, frame{d: d.FlatContents}, frame{d: d.BreakContents})
		case doc.IndentIfBreakCmd:
			stack = append(stack, frame{d: d.Contents})
		case doc.IndentCmd:
			stack = append(stack, frame{d: d.Contents})
		case doc.AlignCmd:
			stack = append(stack, frame{d: d.Contents})
		case doc.LineSuffixCmd:
			stack = append(stack, frame{d: d.Contents})
		}
	}
	return broken
}
