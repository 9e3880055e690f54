package doc

import (
	"fmt"
	"strings"
)

// String returns s as an atomic text run.
func String(s string) Doc {
	return Text(s)
}

// Textf formats according to a format specifier and returns the result as text.
func Textf(format string, args ...any) Doc {
	return Text(fmt.Sprintf(format, args...))
}

// Verbatim returns s with every newline replaced by a literal line, so the
// text is reproduced without re-indentation.
func Verbatim(s string) Doc {
	lines := strings.Split(s, "\n")
	if len(lines) == 1 {
		return Text(s)
	}
	parts := make([]Doc, 0, len(lines)*2-1)
	for i, l := range lines {
		if i > 0 {
			parts = append(parts, LiteralLine())
		}
		if l != "" {
			parts = append(parts, Text(l))
		}
	}
	return Children(parts)
}

// Concat renders parts in order.
func Concat(parts ...Doc) Doc {
	return Children(parts)
}

// Join places sep between each pair of items.
func Join(items []Doc, sep Doc) Doc {
	return Children(JoinToSlice(items, sep))
}

// JoinToSlice interleaves sep between items and returns the flat slice, in
// the alternating content/separator shape expected by [Fill].
func JoinToSlice(items []Doc, sep Doc) []Doc {
	if len(items) == 0 {
		return nil
	}
	out := make([]Doc, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

// Group prints contents flat if they fit on the current line and in break
// mode otherwise.
func Group(contents Doc) Doc {
	return &GroupCmd{Contents: contents}
}

// GroupWithOptions is [Group] with explicit options.
func GroupWithOptions(contents Doc, opts GroupOptions) Doc {
	return &GroupCmd{Contents: contents, GroupOptions: opts}
}

// ConditionalGroup tries each state in order and prints the first one that
// fits. If none fits, the last state is printed in break mode. It panics if
// states is empty.
func ConditionalGroup(states []Doc, id string) Doc {
	if len(states) == 0 {
		panic("doc: ConditionalGroup requires at least one state")
	}
	return &GroupCmd{
		Contents: states[0],
		GroupOptions: GroupOptions{
			ID:             id,
			ExpandedStates: states,
		},
	}
}

// Fill packs parts onto lines greedily. parts alternates content and
// separators, usually lines.
func Fill(parts []Doc) Doc {
	return FillCmd{Parts: parts}
}

// Indent increases the indentation of contents by one level.
func Indent(contents Doc) Doc {
	return IndentCmd{Contents: contents}
}

// Align changes the indentation of contents by amount.
func Align(contents Doc, amount AlignAmount) Doc {
	return AlignCmd{Contents: contents, Amount: amount}
}

// Dedent removes the innermost indentation level for contents.
func Dedent(contents Doc) Doc {
	return AlignCmd{Contents: contents, Amount: AlignAmount{Kind: AlignDedent}}
}

// DedentToRoot prints contents at the marked root indentation, or at column
// zero when no root is marked.
func DedentToRoot(contents Doc) Doc {
	return AlignCmd{Contents: contents, Amount: AlignAmount{Kind: AlignDedentToRoot}}
}

// MarkAsRoot makes the current indentation the root for contents. Literal
// lines and [DedentToRoot] inside contents return to it.
func MarkAsRoot(contents Doc) Doc {
	return AlignCmd{Contents: contents, Amount: AlignAmount{Kind: AlignRoot}}
}

// Line is a space when the enclosing group is flat and a newline otherwise.
func Line() Doc {
	return LineCmd{Mode: LineAuto}
}

// SoftLine is nothing when the enclosing group is flat and a newline otherwise.
func SoftLine() Doc {
	return LineCmd{Mode: LineSoft}
}

// HardLine always breaks and forces enclosing groups to break.
func HardLine() Doc {
	return Children{LineCmd{Mode: LineHard}, BreakParentCmd{}}
}

// LiteralLine always breaks without indenting the next line, and forces
// enclosing groups to break.
func LiteralLine() Doc {
	return Children{LineCmd{Mode: LineHardLiteral}, BreakParentCmd{}}
}

// HardLineWithoutBreakParent breaks without affecting enclosing groups.
func HardLineWithoutBreakParent() Doc {
	return LineCmd{Mode: LineHard}
}

// LiteralLineWithoutBreakParent is a literal line that does not affect
// enclosing groups.
func LiteralLineWithoutBreakParent() Doc {
	return LineCmd{Mode: LineHardLiteral}
}

// LineSuffix defers contents until just before the next newline.
func LineSuffix(contents Doc) Doc {
	return LineSuffixCmd{Contents: contents}
}

// LineSuffixBoundary forces a newline when a line suffix is pending.
func LineSuffixBoundary() Doc {
	return LineSuffixBoundaryCmd{}
}

// IfBreak prints breakContents if the group named groupID is broken and
// flatContents otherwise. An empty groupID refers to the enclosing group.
func IfBreak(breakContents, flatContents Doc, groupID string) Doc {
	return IfBreakCmd{BreakContents: breakContents, FlatContents: flatContents, GroupID: groupID}
}

// IndentIfBreak indents contents if the group named groupID is broken. With
// negate set, contents are indented when the group is flat instead.
func IndentIfBreak(contents Doc, groupID string, negate bool) Doc {
	return IndentIfBreakCmd{Contents: contents, GroupID: groupID, Negate: negate}
}

// BreakParent forces all enclosing groups to break.
func BreakParent() Doc {
	return BreakParentCmd{}
}

// Trim removes trailing whitespace from the current line.
func Trim() Doc {
	return TrimCmd{}
}

// Cursor marks a position whose offset is reported after printing.
func Cursor() Doc {
	return CursorCmd{}
}
