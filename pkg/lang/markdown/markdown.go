// Package markdown formats CommonMark documents.
//
// Supported blocks are ATX and setext headings, paragraphs, thematic
// breaks, fenced and indented code blocks, bullet and ordered lists, block
// quotes and raw HTML or table blocks, which are kept as written.
// Paragraph text is re-wrapped to the print width. Setext headings are
// printed in ATX form when they fit on one line. Indented code blocks
// become fenced code blocks.
package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang"
)

// Language is the Markdown front-end.
var Language = &lang.Language{
	Name:       "markdown",
	Extensions: []string{".md", ".markdown"},
	Aliases:    []string{"md"},
	Format:     Format,
}

// Format parses src and returns its document.
func Format(src string) (doc.Doc, error) {
	if !utf8.ValidString(src) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "markdown source is not valid UTF-8")
	}
	src = strings.ReplaceAll(src, "\r\n", "\n")
	blocks := parseBlocks(strings.Split(src, "\n"))
	if len(blocks) == 0 {
		return doc.Concat(), nil
	}
	return doc.Concat(blocksDoc(blocks), doc.HardLine()), nil
}
