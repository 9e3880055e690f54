// Package lang defines the contract between language front-ends and the
// printer, plus helpers shared by the front-ends.
//
// A front-end parses source text into its own syntax tree and translates it
// into a [doc.Doc] using only the builders in package doc. It never prints:
// callers hand the result to the printer. On malformed input a front-end
// returns an INVALID_DOCUMENT error from package errors.
//
// Concrete front-ends live in subpackages (json, toml, markdown). The
// [languages] package collects them into a dispatch table keyed by file
// extension; it exists separately to avoid import cycles.
//
// [languages]: https://pkg.go.dev/github.com/matzehuels/prettify/pkg/lang/languages
package lang

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/prettify/pkg/doc"
)

// FormatFunc translates source text into a document.
type FormatFunc func(src string) (doc.Doc, error)

// Language describes a supported input language.
type Language struct {
	Name       string
	Extensions []string // with leading dot, lower case
	Aliases    []string
	Format     FormatFunc
}

// MatchesExtension reports whether filename has one of the language's
// extensions. The comparison is case-insensitive.
func (l *Language) MatchesExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && slices.Contains(l.Extensions, ext)
}

// HasName reports whether name is the language's name or one of its aliases.
func (l *Language) HasName(name string) bool {
	name = strings.ToLower(name)
	return name == l.Name || slices.Contains(l.Aliases, name)
}
