package markdown

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/printer"
)

func format(t *testing.T, src string, width int) string {
	t.Helper()
	d, err := Format(src)
	if err != nil {
		t.Fatalf("Format(%q) error = %v", src, err)
	}
	return printer.Print(d, printer.Config{PrintWidth: width})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		width int
		want  string
	}{
		{name: "Empty", src: "", want: ""},
		{name: "BlankOnly", src: "\n\n  \n", want: ""},
		{name: "Paragraph", src: "hello\n  world", want: "hello world\n"},
		{name: "ParagraphWraps", src: "one two three four five", width: 10, want: "one two\nthree four\nfive\n"},
		{name: "ATXHeading", src: "#   Title   #", want: "# Title\n"},
		{name: "ATXEmpty", src: "###", want: "###\n"},
		{name: "NotAHeading", src: "#hashtag", want: "#hashtag\n"},
		{name: "SetextLevel1", src: "hello\nworld\n===", want: "# hello world\n"},
		{name: "SetextLevel2", src: "Sub\n---", want: "## Sub\n"},
		{
			name: "SetextTooLong",
			src:  "this is an incredibly long header that will not fit on a single line, so this will need to be rendered as a setext heading\n===",
			want: "this is an incredibly long header that will not fit on a single line, so this\nwill need to be rendered as a setext heading\n============\n",
		},
		{name: "ThematicBreak", src: "***", want: "---\n"},
		{name: "ThematicBreakSpaced", src: "_ _ _", want: "---\n"},
		{name: "ThematicBreakDashes", src: "- - -", want: "---\n"},
		{name: "FencedCode", src: "```go\nfunc main() {}\n```", want: "```go\nfunc main() {}\n```\n"},
		{name: "FencedTildes", src: "~~~\n  code  \n~~~", want: "~~~\n  code  \n~~~\n"},
		{name: "FencedUnclosed", src: "```\ncode", want: "```\ncode\n```\n"},
		{name: "IndentedCode", src: "    hello world   ", want: "```\nhello world\n```\n"},
		{name: "IndentedCodeBlankLines", src: "    a\n      \n    b", want: "```\na\n\nb\n```\n"},
		{name: "IndentedCodeBackticks", src: "    ```\n    code", want: "````\n```\ncode\n````\n"},
		{name: "BlankLinesCollapse", src: "a\n\n\n\nb", want: "a\n\nb\n"},
		{name: "BulletList", src: "* one\n* two", want: "- one\n- two\n"},
		{name: "LooseList", src: "- one\n\n- two", want: "- one\n\n- two\n"},
		{name: "NestedList", src: "- a\n  - b\n  - c\n- d", want: "- a\n  - b\n  - c\n- d\n"},
		{name: "OrderedList", src: "3. x\n4. y", want: "3. x\n4. y\n"},
		{name: "OrderedRenumbered", src: "1) a\n1) b", want: "1) a\n2) b\n"},
		{name: "ListItemWraps", src: "- one two three four five six", width: 20, want: "- one two three four\n  five six\n"},
		{name: "ListLazyContinuation", src: "- one\ntwo", want: "- one two\n"},
		{name: "ListWithCode", src: "- a\n\n  ```\n  x\n  ```", want: "- a\n\n  ```\n  x\n  ```\n"},
		{name: "ListWithCodeBlankLine", src: "- item\n\n  ```\n  code\n\n  more\n  ```", want: "- item\n\n  ```\n  code\n\n  more\n  ```\n"},
		{name: "BlockQuoteCodeBlankLine", src: "> ```\n> a\n>\n> b\n> ```", want: "> ```\n> a\n>\n> b\n> ```\n"},
		{name: "ListThenParagraph", src: "- a\n\nb", want: "- a\n\nb\n"},
		{name: "EmptyItem", src: "-\n- b", want: "-\n- b\n"},
		{name: "BlockQuote", src: "> a\n>\n> b", want: "> a\n>\n> b\n"},
		{name: "BlockQuoteLazy", src: "> a\nb", want: "> a b\n"},
		{name: "BlockQuoteList", src: "> - a\n> - b", want: "> - a\n> - b\n"},
		{name: "HardBreak", src: "a  \nb", want: "a\\\nb\n"},
		{name: "HardBreakBackslash", src: "a\\\nb", want: "a\\\nb\n"},
		{name: "MarkerWordStaysInline", src: "aaaaaaa - b", width: 10, want: "aaaaaaa -\nb\n"},
		{name: "RawHTML", src: "<div>\n  hi  \n</div>", want: "<div>\n  hi\n</div>\n"},
		{name: "Table", src: "| a | b |\n|---|---|", want: "| a | b |\n|---|---|\n"},
		{name: "CRLF", src: "a\r\nb\r\n\r\nc", want: "a b\n\nc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, format(t, tt.src, tt.width)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	srcs := []string{
		"Title\n=====\n\nSome *text* that goes on\nfor a while.\n\n- a\n- b\n\n    code\n",
		"> quote with `code`\n\n1. first\n2. second\n\n***\n",
		strings.Repeat("word ", 60),
	}
	for _, src := range srcs {
		once := format(t, src, 40)
		twice := format(t, once, 40)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Format not idempotent for %q (-once +twice):\n%s", src, diff)
		}
	}
}

func TestFormatNoTrailingWhitespace(t *testing.T) {
	srcs := []string{
		"- item\n\n  ```\n  code\n\n  more\n  ```\n",
		"> ```\n> a\n>\n>\n> b\n> ```\n",
		"1. x\n\n   > ```\n   > a\n   >\n   > b\n   > ```\n",
	}
	for _, src := range srcs {
		for i, line := range strings.Split(format(t, src, 80), "\n") {
			if strings.TrimRight(line, " \t") != line {
				t.Errorf("line %d of %q has trailing whitespace: %q", i+1, src, line)
			}
		}
	}
}

func TestFormatInvalidUTF8(t *testing.T) {
	_, err := Format("a\xffb")
	if !errors.Is(err, errors.ErrCodeInvalidDocument) {
		t.Errorf("Format() error = %v, want INVALID_DOCUMENT", err)
	}
}
