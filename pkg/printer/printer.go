// Package printer renders a [doc.Doc] to a string within a print width.
//
// The printer walks the document with an explicit stack of
// (indentation, mode, doc) commands. Groups are printed flat when their
// contents, together with whatever follows them up to the next forced
// newline, fit in the remaining width; otherwise they break. Fills wrap
// their parts greedily, conditional groups pick the first alternative that
// fits, and line suffixes are held back until the next newline.
//
// # Usage
//
//	out := printer.Print(d, printer.Config{PrintWidth: 100})
//
//	res := printer.Render(d, printer.DefaultConfig)
//	fmt.Println(res.Formatted, res.CursorOffsets)
//
// A print run keeps all of its state locally, so independent documents can
// be printed concurrently. Docs are only read.
package printer

import "github.com/matzehuels/prettify/pkg/doc"

// Mode is the rendering mode of a command.
type Mode int

const (
	// ModeBreak prints lines as newlines.
	ModeBreak Mode = iota
	// ModeFlat prints lines as spaces or nothing.
	ModeFlat
)

// String returns "break" or "flat".
func (m Mode) String() string {
	if m == ModeFlat {
		return "flat"
	}
	return "break"
}

// Result is the output of [Render].
type Result struct {
	// Formatted is the printed document.
	Formatted string

	// CursorOffsets holds the byte offset in Formatted of each cursor
	// marker, in document order.
	CursorOffsets []int
}

// Print renders d and returns the formatted string.
func Print(d doc.Doc, cfg Config) string {
	return Render(d, cfg).Formatted
}

// Render renders d and reports cursor positions along with the output.
func Render(d doc.Doc, cfg Config) Result {
	p := newPrinter(d, cfg)
	p.run()
	return p.out.result()
}

type command struct {
	ind  *indentation
	mode Mode
	doc  doc.Doc
}

type printer struct {
	cfg        Config
	rootIndent *indentation
	broken     map[*doc.GroupCmd]bool
	groupModes map[string]Mode

	stack        []command
	lineSuffixes []command
	out          output
	pos          int
	remeasure    bool
}

func newPrinter(d doc.Doc, cfg Config) *printer {
	root := &indentation{}
	return &printer{
		cfg:        cfg.WithDefaults(),
		rootIndent: root,
		broken:     propagateBreaks(d),
		groupModes: make(map[string]Mode),
		stack:      []command{{ind: root, mode: ModeBreak, doc: d}},
	}
}

func (p *printer) push(c command) {
	p.stack = append(p.stack, c)
}

func (p *printer) isBroken(g *doc.GroupCmd) bool {
	return g.ShouldBreak || p.broken[g]
}

// groupMode returns the recorded mode of the group named id, or fallback
// when id is empty or has not been printed yet.
func (p *printer) groupMode(id string, fallback Mode) Mode {
	if id == "" {
		return fallback
	}
	if m, ok := p.groupModes[id]; ok {
		return m
	}
	return fallback
}

func (p *printer) run() {
	for len(p.stack) > 0 {
		c := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		switch d := c.doc.(type) {
		case nil:
		case doc.Text:
			p.out.write(string(d))
			p.pos += textWidth(string(d))
		case doc.Children:
			for i := len(d) - 1; i >= 0; i-- {
				p.push(command{ind: c.ind, mode: c.mode, doc: d[i]})
			}
		case doc.CursorCmd:
			p.out.cursor()
		case doc.IndentCmd:
			p.push(command{ind: c.ind.indent(p.cfg.TabWidth), mode: c.mode, doc: d.Contents})
		case doc.AlignCmd:
			p.push(command{ind: p.align(c.ind, d.Amount), mode: c.mode, doc: d.Contents})
		case doc.TrimCmd:
			p.pos -= p.out.trim()
		case *doc.GroupCmd:
			p.group(c, d)
		case doc.FillCmd:
			p.fill(c, d.Parts)
		case doc.IfBreakCmd:
			contents := d.FlatContents
			if p.groupMode(d.GroupID, c.mode) == ModeBreak {
				contents = d.BreakContents
			}
			if contents != nil {
				p.push(command{ind: c.ind, mode: c.mode, doc: contents})
			}
		case doc.IndentIfBreakCmd:
			broken := p.groupMode(d.GroupID, c.mode) == ModeBreak
			contents := d.Contents
			if broken != d.Negate {
				contents = doc.Indent(contents)
			}
			p.push(command{ind: c.ind, mode: c.mode, doc: contents})
		case doc.LineSuffixCmd:
			p.lineSuffixes = append(p.lineSuffixes, command{ind: c.ind, mode: c.mode, doc: d.Contents})
		case doc.LineSuffixBoundaryCmd:
			if len(p.lineSuffixes) > 0 {
				p.push(command{ind: c.ind, mode: c.mode, doc: doc.HardLineWithoutBreakParent()})
			}
		case doc.LineCmd:
			p.line(c, d.Mode)
		case doc.BreakParentCmd:
		}

		if len(p.stack) == 0 && len(p.lineSuffixes) > 0 {
			p.flushLineSuffixes()
		}
	}
}

// flushLineSuffixes moves the pending suffixes onto the stack so they pop
// in the order they were queued.
func (p *printer) flushLineSuffixes() {
	for i := len(p.lineSuffixes) - 1; i >= 0; i-- {
		p.push(p.lineSuffixes[i])
	}
	p.lineSuffixes = p.lineSuffixes[:0]
}

func (p *printer) line(c command, mode doc.LineMode) {
	if c.mode == ModeFlat && !mode.IsHard() {
		if mode == doc.LineAuto {
			p.out.write(" ")
			p.pos++
		}
		return
	}
	if mode.IsHard() {
		p.remeasure = true
	}
	if len(p.lineSuffixes) > 0 {
		p.push(c)
		p.flushLineSuffixes()
		return
	}
	if mode == doc.LineHardLiteral {
		if root := c.ind.root; root != nil {
			p.out.write("\n" + root.value)
			p.pos = root.length
		} else {
			p.out.write("\n")
			p.pos = 0
		}
		return
	}
	p.out.trim()
	p.out.write("\n" + c.ind.value)
	p.pos = c.ind.length
}
