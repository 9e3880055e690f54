package toml

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/printer"
)

func format(t *testing.T, src string) string {
	t.Helper()
	d, err := Format(src)
	if err != nil {
		t.Fatalf("Format(%q) error = %v", src, err)
	}
	return printer.Print(d, printer.DefaultConfig)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "Empty", src: "", want: ""},
		{name: "OnlyBlankLines", src: "\n\n  \n", want: ""},
		{name: "KeyValue", src: "a=1", want: "a = 1\n"},
		{name: "Spacing", src: "  key   =   \"value\"   #comment", want: "key = \"value\" # comment\n"},
		{name: "Comment", src: "#comment\n#   spaced  \n#", want: "# comment\n# spaced\n#\n"},
		{name: "Table", src: "[ a . b ]\nx = true", want: "[a.b]\nx = true\n"},
		{name: "ArrayOfTables", src: "[[ products ]]\nname = 'Hammer'", want: "[[products]]\nname = 'Hammer'\n"},
		{name: "DottedKey", src: "a . b.\"c d\" = 1", want: "a.b.\"c d\" = 1\n"},
		{name: "QuotedKey", src: "'my key' = false", want: "'my key' = false\n"},
		{name: "Integer", src: "n = -454356", want: "n = -454_356\n"},
		{name: "IntegerShort", src: "n = 1234", want: "n = 1_234\n"},
		{name: "IntegerUnderscored", src: "n = 1_0000", want: "n = 1_0000\n"},
		{name: "IntegerPlus", src: "n = +99", want: "n = 99\n"},
		{name: "Hex", src: "h = 0xDEAD_BEEF", want: "h = 0xdead_beef\n"},
		{name: "Octal", src: "o = 0o755", want: "o = 0o755\n"},
		{name: "Binary", src: "b = 0b1101", want: "b = 0b1101\n"},
		{name: "Float", src: "f = 3.14159", want: "f = 3.141_59\n"},
		{name: "FloatExponent", src: "f = 1e2", want: "f = 1.0e2\n"},
		{name: "FloatNegativeExponent", src: "f = -1.5E-3", want: "f = -1.5e-3\n"},
		{name: "FloatPositiveExponent", src: "f = 5e+22", want: "f = 5.0e22\n"},
		{name: "Infinity", src: "f = -inf", want: "f = -inf\n"},
		{name: "DateTime", src: "d = 1979-05-27t07:32:00z", want: "d = 1979-05-27T07:32:00Z\n"},
		{name: "DateTimeSpace", src: "d = 1979-05-27 07:32:00", want: "d = 1979-05-27 07:32:00\n"},
		{name: "DateTimeOffset", src: "d = 1979-05-27T00:32:00.999999-07:00", want: "d = 1979-05-27T00:32:00.999999-07:00\n"},
		{name: "LocalDate", src: "d = 1979-05-27", want: "d = 1979-05-27\n"},
		{name: "LocalTime", src: "t = 07:32:00", want: "t = 07:32:00\n"},
		{name: "ArrayFlat", src: "a = [ 1,2,3 ]", want: "a = [1, 2, 3]\n"},
		{name: "ArrayTrailingCommaFlat", src: "a = [1, 2,]", want: "a = [1, 2]\n"},
		{name: "ArrayEmpty", src: "a = [ ]", want: "a = []\n"},
		{
			name: "ArrayTooLong",
			src:  "a = [" + strings.Repeat(`"item", `, 19) + `"item"]`,
			want: "a = [\n" + strings.Repeat("    \"item\",\n", 20) + "]\n",
		},
		{name: "ArrayUserBreak", src: "a = [\n1, 2]", want: "a = [\n    1,\n    2,\n]\n"},
		{
			name: "ArrayComments",
			src:  "a = [\n  1, # one\n  # before two\n  2,\n  # end\n]",
			want: "a = [\n    1, # one\n    # before two\n    2,\n    # end\n]\n",
		},
		{name: "NestedArray", src: "a = [[1,2],[3]]", want: "a = [[1, 2], [3]]\n"},
		{name: "InlineTable", src: "p = {x=1,y = 2}", want: "p = { x = 1, y = 2 }\n"},
		{name: "InlineTableEmpty", src: "p = { }", want: "p = {}\n"},
		{name: "BlankLinesCollapse", src: "\n\na = 1\n\n\n\nb = 2\n\n", want: "a = 1\n\nb = 2\n"},
		{name: "CRLF", src: "a = 1\r\nb = 2\r\n", want: "a = 1\nb = 2\n"},
		{
			name: "MultilineString",
			src:  "s = \"\"\"\nline1\n  line2\"\"\"",
			want: "s = \"\"\"\nline1\n  line2\"\"\"\n",
		},
		{name: "MultilineLiteral", src: "s = '''a\nb'''", want: "s = '''a\nb'''\n"},
		{name: "EscapedQuote", src: `s = "a \"b\""`, want: "s = \"a \\\"b\\\"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, format(t, tt.src)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatIdempotent(t *testing.T) {
	src := strings.Join([]string{
		"# Config",
		"title   =   \"TOML Example\"",
		"",
		"[owner]",
		"name = \"Tom\"",
		"dob = 1979-05-27T07:32:00-08:00",
		"",
		"",
		"[database]",
		"ports = [ 8000, 8001, 8002 ]",
		"data = [ [\"delta\", \"phi\"], [3.14] ]",
		"temp_targets = { cpu = 79.5, case = 72.0 }",
		"big = 123456789",
	}, "\n")
	once := format(t, src)
	twice := format(t, once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Format not idempotent (-once +twice):\n%s", diff)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "MissingValue", src: "a = "},
		{name: "MissingEquals", src: "a 1"},
		{name: "MissingKey", src: "= 1"},
		{name: "UnclosedHeader", src: "[table"},
		{name: "ArrayMissingComma", src: "a = [1 2]"},
		{name: "UnterminatedString", src: "a = \"abc"},
		{name: "UnterminatedLiteral", src: "a = 'abc"},
		{name: "UnterminatedMultiline", src: "a = \"\"\"abc"},
		{name: "TrailingGarbage", src: "a = 1 b"},
		{name: "LeadingZero", src: "n = 0123"},
		{name: "BadValue", src: "a = yes"},
		{name: "UnclosedInlineTable", src: "a = { x = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.src)
			if !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("Format(%q) error = %v, want INVALID_DOCUMENT", tt.src, err)
			}
		})
	}
}
