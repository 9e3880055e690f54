package printer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/prettify/pkg/doc"
)

func items(n int, format string) []doc.Doc {
	out := make([]doc.Doc, n)
	for i := range out {
		out[i] = doc.Textf(format, i)
	}
	return out
}

func array(elems []doc.Doc) doc.Doc {
	return doc.Group(doc.Concat(
		doc.String("["),
		doc.Indent(doc.Concat(
			doc.SoftLine(),
			doc.Join(elems, doc.Concat(doc.String(","), doc.Line())),
			doc.IfBreak(doc.String(","), nil, ""),
		)),
		doc.SoftLine(),
		doc.String("]"),
	))
}

func TestPrint(t *testing.T) {
	huge := doc.String(strings.Repeat("x", 100))

	tests := []struct {
		name  string
		doc   doc.Doc
		width int
		want  string
	}{
		{name: "Empty", doc: nil, want: ""},
		{name: "Text", doc: doc.String("hello"), want: "hello"},
		{name: "LineAtRoot", doc: doc.Line(), want: "\n"},
		{name: "SoftLineAtRoot", doc: doc.SoftLine(), want: "\n"},
		{
			name: "GroupFlat",
			doc:  doc.Group(doc.Concat(doc.String("hello"), doc.Line(), doc.String("world"))),
			want: "hello world",
		},
		{
			name:  "GroupBreak",
			doc:   doc.Group(doc.Concat(doc.String("hello"), doc.Line(), doc.String("world"))),
			width: 10,
			want:  "hello\nworld",
		},
		{
			name: "GroupSoftLineFlat",
			doc:  doc.Group(doc.Concat(doc.String("hello "), doc.SoftLine(), doc.String("world"))),
			want: "hello world",
		},
		{
			name: "HardLine",
			doc:  doc.Concat(doc.String("hello"), doc.HardLine(), doc.String("world")),
			want: "hello\nworld",
		},
		{
			name: "LiteralLine",
			doc:  doc.Concat(doc.String("hello"), doc.LiteralLine(), doc.String("world")),
			want: "hello\nworld",
		},
		{
			name: "BreakParent",
			doc:  doc.Group(doc.Concat(doc.String("hello"), doc.Line(), doc.String("world"), doc.BreakParent())),
			want: "hello\nworld",
		},
		{
			name: "BreakParentPropagates",
			doc: doc.Group(doc.Concat(
				doc.String("hello"), doc.Line(),
				doc.Group(doc.Concat(doc.String("world,"), doc.Line(), doc.String("again"), doc.BreakParent())),
			)),
			want: "hello\nworld,\nagain",
		},
		{
			name: "BreakParentOutsideInnerGroup",
			doc: doc.Group(doc.Concat(
				doc.String("hello"), doc.Line(),
				doc.Group(doc.Concat(doc.String("world,"), doc.Line(), doc.String("again"))),
				doc.BreakParent(),
			)),
			want: "hello\nworld, again",
		},
		{
			name: "IfBreakUnknownIDBroken",
			doc:  doc.Concat(doc.String("hello"), doc.IfBreak(doc.String(" world"), doc.String(" again"), "doc_id")),
			want: "hello world",
		},
		{
			name: "IfBreakUnknownIDFlat",
			doc:  doc.Group(doc.Concat(doc.String("hello"), doc.IfBreak(doc.String(" world"), doc.String(" again"), "doc_id"))),
			want: "hello again",
		},
		{
			name: "IfBreakGroupBroken",
			doc: doc.Concat(
				doc.GroupWithOptions(doc.Concat(doc.String("a"), doc.Line(), doc.String("b")), doc.GroupOptions{ID: "g", ShouldBreak: true}),
				doc.IfBreak(doc.String("!"), doc.String("?"), "g"),
			),
			want: "a\nb!",
		},
		{
			name: "IfBreakGroupFlat",
			doc: doc.Concat(
				doc.GroupWithOptions(doc.Concat(doc.String("a"), doc.Line(), doc.String("b")), doc.GroupOptions{ID: "g"}),
				doc.IfBreak(doc.String("!"), doc.String("?"), "g"),
			),
			want: "a b?",
		},
		{
			name: "IndentIfBreak",
			doc: doc.Concat(
				doc.GroupWithOptions(doc.Concat(doc.String("["), doc.SoftLine(), doc.String("]")), doc.GroupOptions{ID: "g", ShouldBreak: true}),
				doc.IndentIfBreak(doc.Concat(doc.HardLine(), doc.String("x")), "g", false),
			),
			want: "[\n]\n    x",
		},
		{
			name: "IndentIfBreakNegate",
			doc: doc.Concat(
				doc.GroupWithOptions(doc.Concat(doc.String("["), doc.SoftLine(), doc.String("]")), doc.GroupOptions{ID: "g", ShouldBreak: true}),
				doc.IndentIfBreak(doc.Concat(doc.HardLine(), doc.String("x")), "g", true),
			),
			want: "[\n]\nx",
		},
		{
			name: "Indent",
			doc:  doc.Group(doc.Indent(doc.Concat(doc.HardLine(), doc.String("indented")))),
			want: "\n    indented",
		},
		{
			name: "ArrayBreaks",
			doc:  array(items(12, "item%d")),
			want: "[\n" + func() string {
				var sb strings.Builder
				for i := 0; i < 12; i++ {
					fmt.Fprintf(&sb, "    item%d,\n", i)
				}
				return sb.String()
			}() + "]",
		},
		{
			name: "ArrayFlat",
			doc:  array(items(5, "item%d")),
			want: "[item0, item1, item2, item3, item4]",
		},
		{
			name: "NestedArray",
			doc:  array([]doc.Doc{array(items(2, "a%d")), array(items(12, "item%d"))}),
			want: "[\n    [a0, a1],\n    [\n" + func() string {
				var sb strings.Builder
				for i := 0; i < 12; i++ {
					fmt.Fprintf(&sb, "        item%d,\n", i)
				}
				return sb.String()
			}() + "    ],\n]",
		},
		{
			name: "AlignSpaces",
			doc:  doc.Group(doc.Align(doc.Concat(doc.HardLine(), doc.String("aligned")), doc.Spaces(4))),
			want: "\n    aligned",
		},
		{
			name: "AlignLiteral",
			doc:  doc.Group(doc.Align(doc.Concat(doc.HardLine(), doc.String("aligned")), doc.Literal("----"))),
			want: "\n----aligned",
		},
		{
			name: "DedentAtRoot",
			doc:  doc.Dedent(doc.Concat(doc.HardLine(), doc.String("dedent"))),
			want: "\ndedent",
		},
		{
			name: "DedentInsideIndent",
			doc:  doc.Indent(doc.Dedent(doc.Concat(doc.HardLine(), doc.String("dedent")))),
			want: "\ndedent",
		},
		{
			name: "DedentOneLevel",
			doc:  doc.Indent(doc.Indent(doc.Dedent(doc.Concat(doc.HardLine(), doc.String("dedent"))))),
			want: "\n    dedent",
		},
		{
			name: "DedentToRoot",
			doc: doc.Indent(doc.Concat(
				doc.String("a"), doc.HardLine(),
				doc.DedentToRoot(doc.Concat(doc.String("b"), doc.HardLine(), doc.String("c"))),
			)),
			want: "a\n    b\nc",
		},
		{
			name: "LiteralLineIgnoresIndent",
			doc:  doc.Indent(doc.Concat(doc.String("a"), doc.LiteralLine(), doc.String("b"))),
			want: "a\nb",
		},
		{
			name: "LiteralLineUsesMarkedRoot",
			doc:  doc.Indent(doc.MarkAsRoot(doc.Concat(doc.String("a"), doc.LiteralLine(), doc.String("b")))),
			want: "a\n    b",
		},
		{
			name: "Trim",
			doc:  doc.Concat(doc.String("    hello    "), doc.Trim()),
			want: "    hello",
		},
		{
			name: "TrimAcrossChunks",
			doc:  doc.Concat(doc.String("a"), doc.String("  "), doc.String(" \t"), doc.Trim(), doc.String("b")),
			want: "ab",
		},
		{
			name:  "TabsCountTowardWidth",
			doc:   doc.Group(doc.Concat(doc.String("\t\t\t\t\t"), doc.String("12345678"), doc.Line(), doc.String("c"))),
			width: 10,
			want:  "\t\t\t\t\t12345678\nc",
		},
		{
			name: "TrimmedTabsGiveBackWidth",
			doc: doc.Concat(
				doc.String("a\t\t"), doc.Trim(),
				doc.Group(doc.Concat(doc.String("bbbbbbbb"), doc.Line(), doc.String("c"))),
			),
			width: 10,
			want:  "abbbbbbbb\nc",
		},
		{
			name: "TrimmedTabsThenFits",
			doc: doc.Concat(
				doc.String("a\t\t"), doc.Trim(),
				doc.Group(doc.Concat(doc.String("bbbbbbb"), doc.Line(), doc.String("c"))),
			),
			width: 10,
			want:  "abbbbbbb c",
		},
		{
			name: "TrailingWhitespaceBeforeNewline",
			doc:  doc.Concat(doc.String("a  "), doc.HardLine(), doc.String("b")),
			want: "a\nb",
		},
		{
			name: "LineSuffix",
			doc:  doc.Group(doc.Concat(doc.String("a"), doc.LineSuffix(doc.String(" // comment")), doc.String(";"), doc.HardLine())),
			want: "a; // comment\n",
		},
		{
			name: "LineSuffixOrder",
			doc: doc.Concat(
				doc.String("a"), doc.LineSuffix(doc.String(" //")), doc.LineSuffix(doc.String(" comment")),
				doc.String(";"), doc.HardLine(),
			),
			want: "a; // comment\n",
		},
		{
			name: "LineSuffixSeparated",
			doc: doc.Group(doc.Concat(
				doc.String("a"), doc.LineSuffix(doc.String(" //")), doc.String(";"),
				doc.LineSuffix(doc.String(" comment")), doc.HardLine(),
			)),
			want: "a; // comment\n",
		},
		{
			name: "LineSuffixBoundary",
			doc: doc.Group(doc.Concat(
				doc.String("{"), doc.LineSuffix(doc.String(" // comment")), doc.LineSuffixBoundary(),
				doc.String("}"), doc.HardLine(),
			)),
			want: "{ // comment\n}\n",
		},
		{
			name: "LineSuffixBoundaryAtEnd",
			doc:  doc.Group(doc.Concat(doc.String("{"), doc.LineSuffix(doc.String(" // comment")), doc.LineSuffixBoundary(), doc.String("}"))),
			want: "{ // comment\n}",
		},
		{
			name: "LineSuffixBoundaryWithoutSuffix",
			doc:  doc.Concat(doc.String("{"), doc.LineSuffixBoundary(), doc.String("}")),
			want: "{}",
		},
		{
			name: "LineSuffixFlushedAtEnd",
			doc:  doc.Concat(doc.String("a"), doc.LineSuffix(doc.String(" // c"))),
			want: "a // c",
		},
		{
			name: "ConditionalGroupFirstFitting",
			doc:  doc.ConditionalGroup([]doc.Doc{huge, huge, doc.String("short"), doc.String("other")}, "g"),
			want: "short",
		},
		{
			name: "ConditionalGroupFirstState",
			doc:  doc.ConditionalGroup([]doc.Doc{doc.String("first"), doc.String("second")}, ""),
			want: "first",
		},
		{
			name: "ConditionalGroupFallback",
			doc:  doc.ConditionalGroup([]doc.Doc{huge, doc.String(strings.Repeat("y", 100))}, ""),
			want: strings.Repeat("y", 100),
		},
		{
			name: "ConditionalGroupSingleState",
			doc:  doc.ConditionalGroup([]doc.Doc{huge}, ""),
			want: strings.Repeat("x", 100),
		},
		{
			name: "ConditionalGroupShouldBreak",
			doc: doc.GroupWithOptions(doc.String("a b"), doc.GroupOptions{
				ShouldBreak:    true,
				ExpandedStates: []doc.Doc{doc.String("a b"), doc.Concat(doc.String("b"), doc.Line(), doc.String("c"))},
			}),
			want: "b\nc",
		},
		{
			name:  "WideRunes",
			doc:   doc.Group(doc.Concat(doc.String("日本"), doc.Line(), doc.String("語"))),
			width: 6,
			want:  "日本\n語",
		},
		{
			name:  "WideRunesFit",
			doc:   doc.Group(doc.Concat(doc.String("日本"), doc.Line(), doc.String("語"))),
			width: 7,
			want:  "日本 語",
		},
		{
			name: "RemeasureAfterHardLine",
			doc: doc.ConditionalGroup([]doc.Doc{doc.Concat(
				doc.String("x"), doc.HardLineWithoutBreakParent(),
				doc.Group(doc.Concat(doc.String("aaaaa"), doc.Line(), doc.String("bbbbb"))),
			)}, ""),
			width: 10,
			want:  "x\naaaaa\nbbbbb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Print(tt.doc, Config{PrintWidth: tt.width})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Print() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFill(t *testing.T) {
	tests := []struct {
		name  string
		parts []doc.Doc
		width int
		want  string
	}{
		{name: "NoParts", parts: nil, want: ""},
		{name: "OneFits", parts: []doc.Doc{doc.String("abc")}, want: "abc"},
		{name: "OneTooLong", parts: []doc.Doc{doc.String("abcdef")}, width: 3, want: "abcdef"},
		{name: "TwoFlat", parts: []doc.Doc{doc.String("abc"), doc.Line()}, want: "abc "},
		{name: "TwoBreak", parts: []doc.Doc{doc.String("abc"), doc.Line()}, width: 2, want: "abc\n"},
		{name: "ThreePairFits", parts: []doc.Doc{doc.String("aaa"), doc.Line(), doc.String("bbb")}, width: 7, want: "aaa bbb"},
		{name: "ThreePairTooWide", parts: []doc.Doc{doc.String("aaa"), doc.Line(), doc.String("bbb")}, width: 6, want: "aaa\nbbb"},
		{
			name:  "FourTrailingSeparator",
			parts: []doc.Doc{doc.String("a"), doc.Line(), doc.String("b"), doc.Line()},
			want:  "a b ",
		},
		{
			name:  "FiveWrapsBetweenPairs",
			parts: []doc.Doc{doc.String("aaa"), doc.Line(), doc.String("bbb"), doc.Line(), doc.String("ccc")},
			width: 7,
			want:  "aaa bbb\nccc",
		},
		{
			name:  "ContentTooWide",
			parts: []doc.Doc{doc.String("aaaaaaaaaa"), doc.Line(), doc.String("b")},
			width: 5,
			want:  "aaaaaaaaaa\nb",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Print(doc.Fill(tt.parts), Config{PrintWidth: tt.width})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Print(Fill) mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFillWrapsBetweenItems(t *testing.T) {
	parts := doc.JoinToSlice(items(30, "item %d,"), doc.Line())
	got := Print(doc.Fill(parts), DefaultConfig)

	want := strings.Join([]string{
		"item 0, item 1, item 2, item 3, item 4, item 5, item 6, item 7, item 8, item 9,",
		"item 10, item 11, item 12, item 13, item 14, item 15, item 16, item 17, item 18,",
		"item 19, item 20, item 21, item 22, item 23, item 24, item 25, item 26, item 27,",
		"item 28, item 29,",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Print(Fill) mismatch (-want +got):\n%s", diff)
	}
}

func TestWidthRespected(t *testing.T) {
	var nested []doc.Doc
	for i := 0; i < 6; i++ {
		nested = append(nested, array(items(i*3, "%d")))
	}
	d := array(nested)

	for w := 20; w <= 80; w += 5 {
		out := Print(d, Config{PrintWidth: w})
		for _, line := range strings.Split(out, "\n") {
			if textWidth(line) > w {
				t.Errorf("width %d: line %q is %d columns", w, line, textWidth(line))
			}
		}
	}
}

func TestBreakParentNeverFlat(t *testing.T) {
	d := doc.Group(doc.Concat(doc.String("a"), doc.Line(), doc.Group(doc.Concat(doc.String("b"), doc.BreakParent()))))
	if got := Print(d, Config{PrintWidth: 1000}); got != "a\nb" {
		t.Errorf("Print() = %q, want %q", got, "a\nb")
	}
}

func TestRenderCursor(t *testing.T) {
	tests := []struct {
		name        string
		doc         doc.Doc
		wantText    string
		wantOffsets []int
	}{
		{
			name:        "Single",
			doc:         doc.Concat(doc.String("ab"), doc.Cursor(), doc.String("cd")),
			wantText:    "abcd",
			wantOffsets: []int{2},
		},
		{
			name:        "Multiple",
			doc:         doc.Concat(doc.Cursor(), doc.String("ab"), doc.HardLine(), doc.Cursor()),
			wantText:    "ab\n",
			wantOffsets: []int{0, 3},
		},
		{
			name:        "MovedByTrim",
			doc:         doc.Concat(doc.String("a "), doc.Cursor(), doc.String(" "), doc.Trim(), doc.String("b")),
			wantText:    "ab",
			wantOffsets: []int{1},
		},
		{
			name:     "None",
			doc:      doc.String("x"),
			wantText: "x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Render(tt.doc, DefaultConfig)
			if res.Formatted != tt.wantText {
				t.Errorf("Formatted = %q, want %q", res.Formatted, tt.wantText)
			}
			if diff := cmp.Diff(tt.wantOffsets, res.CursorOffsets); diff != "" {
				t.Errorf("CursorOffsets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeepDocument(t *testing.T) {
	var d doc.Doc = doc.String("x")
	for i := 0; i < 100000; i++ {
		d = doc.Concat(d)
	}
	if got := Print(d, DefaultConfig); got != "x" {
		t.Errorf("Print() = %q, want %q", got, "x")
	}
}

func TestConfigWithDefaults(t *testing.T) {
	tests := []struct {
		in   Config
		want Config
	}{
		{in: Config{}, want: DefaultConfig},
		{in: Config{PrintWidth: 100}, want: Config{PrintWidth: 100, TabWidth: DefaultTabWidth}},
		{in: Config{PrintWidth: -1, TabWidth: 2}, want: Config{PrintWidth: DefaultPrintWidth, TabWidth: 2}},
	}
	for _, tt := range tests {
		if got := tt.in.WithDefaults(); got != tt.want {
			t.Errorf("%+v.WithDefaults() = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
