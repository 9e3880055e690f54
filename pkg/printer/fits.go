package printer

import "github.com/matzehuels/prettify/pkg/doc"

// fits reports whether next, followed by the commands in rest, can be
// printed flat within width columns up to the next forced newline. rest is
// consumed from the top of the stack once next is exhausted. With
// mustBeFlat set, any forced break inside next fails the test.
func (p *printer) fits(next command, rest []command, width int, hasLineSuffix, mustBeFlat bool) bool {
	restIdx := len(rest)
	cmds := []command{next}
	var out output
	for width >= 0 {
		if len(cmds) == 0 {
			if restIdx == 0 {
				return true
			}
			restIdx--
			cmds = append(cmds, rest[restIdx])
			continue
		}
		c := cmds[len(cmds)-1]
		cmds = cmds[:len(cmds)-1]

		switch d := c.doc.(type) {
		case doc.Text:
			out.write(string(d))
			width -= textWidth(string(d))
		case doc.Children:
			for i := len(d) - 1; i >= 0; i-- {
				cmds = append(cmds, command{mode: c.mode, doc: d[i]})
			}
		case doc.FillCmd:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				cmds = append(cmds, command{mode: c.mode, doc: d.Parts[i]})
			}
		case doc.IndentCmd:
			cmds = append(cmds, command{mode: c.mode, doc: d.Contents})
		case doc.AlignCmd:
			cmds = append(cmds, command{mode: c.mode, doc: d.Contents})
		case doc.TrimCmd:
			width += out.trim()
		case *doc.GroupCmd:
			broken := p.isBroken(d)
			if mustBeFlat && broken {
				return false
			}
			mode := c.mode
			if broken {
				mode = ModeBreak
			}
			contents := d.Contents
			if mode == ModeBreak && len(d.ExpandedStates) > 0 {
				contents = d.ExpandedStates[len(d.ExpandedStates)-1]
			}
			cmds = append(cmds, command{mode: mode, doc: contents})
		case doc.IfBreakCmd:
			contents := d.FlatContents
			if p.groupMode(d.GroupID, c.mode) == ModeBreak {
				contents = d.BreakContents
			}
			if contents != nil {
				cmds = append(cmds, command{mode: c.mode, doc: contents})
			}
		case doc.IndentIfBreakCmd:
			cmds = append(cmds, command{mode: c.mode, doc: d.Contents})
		case doc.LineCmd:
			if c.mode == ModeBreak || d.Mode.IsHard() {
				return true
			}
			if d.Mode == doc.LineAuto {
				out.write(" ")
				width--
			}
		case doc.LineSuffixCmd:
			hasLineSuffix = true
		case doc.LineSuffixBoundaryCmd:
			if hasLineSuffix {
				return false
			}
		case doc.BreakParentCmd:
			if mustBeFlat {
				return false
			}
		}
	}
	return false
}
