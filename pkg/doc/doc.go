// Package doc defines the layout document model consumed by the printer.
//
// A [Doc] is an immutable tree of text runs and layout commands. Language
// front-ends translate their syntax trees into a Doc using the builder
// functions in this package and hand the result to the printer, which
// decides where lines break for a given print width.
//
// # Model
//
// The tree has three kinds of nodes:
//
//   - [Text]: an atomic run of characters that never contains a newline
//   - [Children]: a concatenation rendered in order
//   - commands: [GroupCmd], [FillCmd], [IfBreakCmd], [IndentIfBreakCmd],
//     [BreakParentCmd], [LineCmd], [LineSuffixCmd], [LineSuffixBoundaryCmd],
//     [IndentCmd], [AlignCmd], [TrimCmd] and [CursorCmd]
//
// A nil Doc is the empty document.
//
// # Sharing
//
// Docs are never mutated after construction, so the same sub-document may be
// referenced from many places. [Join] and [Fill] reuse a single separator
// value at every join point instead of copying it.
//
// # Usage
//
//	d := doc.Group(doc.Concat(
//	    doc.String("["),
//	    doc.Indent(doc.Concat(doc.SoftLine(), doc.Join(items, doc.Concat(doc.String(","), doc.Line())))),
//	    doc.SoftLine(),
//	    doc.String("]"),
//	))
//	out := printer.Print(d, printer.DefaultConfig)
package doc

// Doc is a node of the layout tree. The set of implementations is closed.
type Doc interface {
	isDoc()
}

// Text is an unbreakable run of characters. It must not contain newlines;
// use [Verbatim] for multi-line text.
type Text string

// Children renders each member in order under the same indentation and mode.
type Children []Doc

// GroupOptions control how a group is resolved.
type GroupOptions struct {
	// ShouldBreak forces the group into break mode.
	ShouldBreak bool

	// ID makes the resolved mode addressable by [IfBreak] and
	// [IndentIfBreak]. Empty means anonymous.
	ID string

	// ExpandedStates lists alternative renderings of the same content,
	// ordered from least to most broken. The last one is the fallback
	// when nothing fits.
	ExpandedStates []Doc
}

// GroupCmd is the unit of the breaking decision: its contents print either
// entirely flat or in break mode. Groups are handled by pointer so that the
// printer can attach per-run state to each one.
type GroupCmd struct {
	Contents Doc
	GroupOptions
}

// FillCmd lays out alternating content and separator parts greedily,
// breaking only at separators.
type FillCmd struct {
	Parts []Doc
}

// IfBreakCmd selects BreakContents or FlatContents depending on the mode of
// the group named by GroupID, or the enclosing mode when GroupID is empty.
type IfBreakCmd struct {
	BreakContents Doc
	FlatContents  Doc
	GroupID       string
}

// IndentIfBreakCmd indents Contents when the referenced group is broken.
// Negate flips the condition.
type IndentIfBreakCmd struct {
	Contents Doc
	GroupID  string
	Negate   bool
}

// BreakParentCmd forces every enclosing group into break mode.
type BreakParentCmd struct{}

// LineMode selects the behavior of a [LineCmd].
type LineMode int

const (
	// LineAuto prints a space in flat mode and a newline in break mode.
	LineAuto LineMode = iota
	// LineSoft prints nothing in flat mode and a newline in break mode.
	LineSoft
	// LineHard always prints a newline followed by the indentation.
	LineHard
	// LineHardLiteral always prints a newline without indentation, or with
	// the marked root indentation when one is set.
	LineHardLiteral
)

// String returns the name of the line mode.
func (m LineMode) String() string {
	switch m {
	case LineAuto:
		return "line"
	case LineSoft:
		return "softline"
	case LineHard:
		return "hardline"
	case LineHardLiteral:
		return "literalline"
	default:
		return "unknown"
	}
}

// IsHard reports whether the line breaks regardless of the group mode.
func (m LineMode) IsHard() bool {
	return m == LineHard || m == LineHardLiteral
}

// LineCmd is a potential line break.
type LineCmd struct {
	Mode LineMode
}

// LineSuffixCmd defers Contents until just before the next newline.
type LineSuffixCmd struct {
	Contents Doc
}

// LineSuffixBoundaryCmd forces a newline if any line suffix is pending.
type LineSuffixBoundaryCmd struct{}

// IndentCmd indents Contents by one tab width.
type IndentCmd struct {
	Contents Doc
}

// AlignKind is the kind of an [AlignAmount].
type AlignKind int

const (
	// AlignSpaces adds a fixed number of spaces.
	AlignSpaces AlignKind = iota
	// AlignLiteral adds a literal string to the indentation.
	AlignLiteral
	// AlignDedent removes the innermost indentation level.
	AlignDedent
	// AlignDedentToRoot resets to the marked root indentation.
	AlignDedentToRoot
	// AlignRoot marks the current indentation as root.
	AlignRoot
)

// AlignAmount describes how an [AlignCmd] changes the indentation.
type AlignAmount struct {
	Kind    AlignKind
	Spaces  int
	Literal string
}

// Spaces returns an alignment of n spaces. A negative n dedents.
func Spaces(n int) AlignAmount {
	if n < 0 {
		return AlignAmount{Kind: AlignDedent}
	}
	return AlignAmount{Kind: AlignSpaces, Spaces: n}
}

// Literal returns an alignment that appends s to the indentation.
func Literal(s string) AlignAmount {
	return AlignAmount{Kind: AlignLiteral, Literal: s}
}

// AlignCmd changes the indentation of Contents by Amount.
type AlignCmd struct {
	Contents Doc
	Amount   AlignAmount
}

// TrimCmd removes trailing spaces and tabs from the current line.
type TrimCmd struct{}

// CursorCmd marks a caret position in the output.
type CursorCmd struct{}

func (Text) isDoc()                  {}
func (Children) isDoc()              {}
func (*GroupCmd) isDoc()             {}
func (FillCmd) isDoc()               {}
func (IfBreakCmd) isDoc()            {}
func (IndentIfBreakCmd) isDoc()      {}
func (BreakParentCmd) isDoc()        {}
func (LineCmd) isDoc()               {}
func (LineSuffixCmd) isDoc()         {}
func (LineSuffixBoundaryCmd) isDoc() {}
func (IndentCmd) isDoc()             {}
func (AlignCmd) isDoc()              {}
func (TrimCmd) isDoc()               {}
func (CursorCmd) isDoc()             {}
