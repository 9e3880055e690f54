package inspect

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/printer"
)

func bracket() doc.Doc {
	return doc.Group(doc.Concat(
		doc.Text("["),
		doc.Indent(doc.Concat(doc.SoftLine(), doc.Text("1"))),
		doc.SoftLine(),
		doc.Text("]"),
	))
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		d     doc.Doc
		width int
		want  string
	}{
		{
			name: "Flat",
			d:    bracket(),
			want: `group(["[", indent([softline, "1"]), softline, "]"])`,
		},
		{
			name:  "Broken",
			d:     bracket(),
			width: 40,
			want: strings.Join([]string{
				`group(`,
				`    [`,
				`        "[",`,
				`        indent([softline, "1"]),`,
				`        softline,`,
				`        "]"`,
				`    ]`,
				`)`,
			}, "\n"),
		},
		{
			name: "GroupOptions",
			d:    doc.GroupWithOptions(doc.Text("a"), doc.GroupOptions{ShouldBreak: true, ID: "g"}),
			want: `group("a", { shouldBreak: true, id: "g" })`,
		},
		{
			name: "HardLines",
			d:    doc.Concat(doc.Text("a"), doc.HardLine(), doc.LiteralLine(), doc.HardLineWithoutBreakParent()),
			want: `["a", hardline, literalline, hardlineWithoutBreakParent]`,
		},
		{
			name: "Lines",
			d:    doc.Concat(doc.Line(), doc.SoftLine(), doc.BreakParent(), doc.Trim(), doc.Cursor()),
			want: `[line, softline, breakParent, trim, cursor]`,
		},
		{
			name: "IfBreak",
			d:    doc.IfBreak(doc.Text(","), nil, "list"),
			want: `ifBreak(",", nil, { groupId: "list" })`,
		},
		{
			name: "Aligns",
			d: doc.Concat(
				doc.Align(doc.Text("a"), doc.Spaces(2)),
				doc.Align(doc.Text("b"), doc.Literal("> ")),
				doc.Dedent(doc.Text("c")),
				doc.MarkAsRoot(doc.Text("d")),
			),
			want: `[align(2, "a"), align("> ", "b"), dedent("c"), markAsRoot("d")]`,
		},
		{
			name: "ConditionalGroup",
			d:    doc.ConditionalGroup([]doc.Doc{doc.Text("a"), doc.Text("b")}, ""),
			want: `conditionalGroup(["a", "b"])`,
		},
		{
			name: "Fill",
			d:    doc.Fill([]doc.Doc{doc.Text("a"), doc.Line(), doc.Text("b")}),
			want: `fill(["a", line, "b"])`,
		},
		{
			name: "LineSuffix",
			d:    doc.Concat(doc.LineSuffix(doc.Text(" // c")), doc.LineSuffixBoundary()),
			want: `[lineSuffix(" // c"), lineSuffixBoundary]`,
		},
		{name: "Empty", d: doc.Concat(), want: `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.d, printer.Config{PrintWidth: tt.width})
			if diff := cmp.Diff(tt.want+"\n", got); diff != "" {
				t.Errorf("Text() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	d := doc.Concat(doc.Text("a"), doc.Group(doc.Concat(doc.Line(), doc.Text("b"))))
	want := Stats{Nodes: 6, Texts: 2, Groups: 1, Lines: 1, MaxDepth: 4}
	if diff := cmp.Diff(want, Collect(d)); diff != "" {
		t.Errorf("Collect() mismatch (-want +got):\n%s", diff)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(doc.Concat(doc.Text("a"), doc.GroupWithOptions(doc.Line(), doc.GroupOptions{ShouldBreak: true})))
	for _, want := range []string{
		"digraph Doc {",
		`n0 [label="concat"];`,
		`n0 -> n1 [label="0"];`,
		`n0 -> n2 [label="1"];`,
		`n1 [label="\"a\"", shape=plaintext];`,
		`n2 [label="group", shape=ellipse, style=filled, fillcolor=lightpink];`,
		`n2 -> n3 [label="0"];`,
		`n3 [label="line", fontcolor=grey30];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(bracket()))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("RenderSVG() did not produce SVG: %.80s", svg)
	}
}
