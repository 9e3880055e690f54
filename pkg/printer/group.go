package printer

import "github.com/matzehuels/prettify/pkg/doc"

func (p *printer) group(c command, g *doc.GroupCmd) {
	broken := p.isBroken(g)

	if c.mode == ModeFlat && !p.remeasure {
		mode := ModeFlat
		if broken {
			mode = ModeBreak
		}
		p.push(command{ind: c.ind, mode: mode, doc: g.Contents})
		p.recordGroup(g)
		return
	}

	p.remeasure = false
	next := command{ind: c.ind, mode: ModeFlat, doc: g.Contents}
	rem := p.cfg.PrintWidth - p.pos
	hasLineSuffix := len(p.lineSuffixes) > 0

	switch {
	case !broken && p.fits(next, p.stack, rem, hasLineSuffix, false):
		p.push(next)
	case len(g.ExpandedStates) == 0:
		p.remeasure = true
		p.push(command{ind: c.ind, mode: ModeBreak, doc: g.Contents})
	default:
		p.push(p.expandedState(c, g, broken, rem, hasLineSuffix))
	}
	p.recordGroup(g)
}

// expandedState picks the first alternative of a conditional group that
// fits flat, falling back to the most expanded one in break mode.
func (p *printer) expandedState(c command, g *doc.GroupCmd, broken bool, rem int, hasLineSuffix bool) command {
	last := command{ind: c.ind, mode: ModeBreak, doc: g.ExpandedStates[len(g.ExpandedStates)-1]}
	if broken {
		p.remeasure = true
		return last
	}
	for _, state := range g.ExpandedStates[1:] {
		cmd := command{ind: c.ind, mode: ModeFlat, doc: state}
		if p.fits(cmd, p.stack, rem, hasLineSuffix, false) {
			return cmd
		}
	}
	p.remeasure = true
	return last
}

func (p *printer) recordGroup(g *doc.GroupCmd) {
	if g.ID != "" {
		p.groupModes[g.ID] = p.stack[len(p.stack)-1].mode
	}
}

// fill handles the first content/separator pair of parts and pushes the
// remainder back as a new fill.
func (p *printer) fill(c command, parts []doc.Doc) {
	if len(parts) == 0 {
		return
	}
	rem := p.cfg.PrintWidth - p.pos
	hasLineSuffix := len(p.lineSuffixes) > 0

	content := parts[0]
	contentFlat := command{ind: c.ind, mode: ModeFlat, doc: content}
	contentBreak := command{ind: c.ind, mode: ModeBreak, doc: content}
	contentFits := p.fits(contentFlat, nil, rem, hasLineSuffix, true)

	if len(parts) == 1 {
		if contentFits {
			p.push(contentFlat)
		} else {
			p.push(contentBreak)
		}
		return
	}

	sepFlat := command{ind: c.ind, mode: ModeFlat, doc: parts[1]}
	sepBreak := command{ind: c.ind, mode: ModeBreak, doc: parts[1]}

	if len(parts) == 2 {
		if contentFits {
			p.push(sepFlat)
			p.push(contentFlat)
		} else {
			p.push(sepBreak)
			p.push(contentBreak)
		}
		return
	}

	rest := command{ind: c.ind, mode: c.mode, doc: doc.FillCmd{Parts: parts[2:]}}
	pair := command{ind: c.ind, mode: ModeFlat, doc: doc.Children(parts[:3])}
	pairFits := p.fits(pair, nil, rem, hasLineSuffix, true)

	p.push(rest)
	switch {
	case pairFits:
		p.push(sepFlat)
		p.push(contentFlat)
	case contentFits:
		p.push(sepBreak)
		p.push(contentFlat)
	default:
		p.push(sepBreak)
		p.push(contentBreak)
	}
}
