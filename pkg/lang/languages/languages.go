// Package languages provides the complete list of supported input languages.
//
// This package exists to break import cycles: the individual front-ends
// (json, toml, markdown) import pkg/lang, so pkg/lang cannot import them back.
// Instead, consumers that need the full language list import this package.
//
// Usage:
//
//	import "github.com/matzehuels/prettify/pkg/lang/languages"
//
//	l, err := languages.Detect("config.toml")
//	if err != nil {
//	    return err
//	}
//	d, err := l.Format(src)
package languages

import (
	"path/filepath"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang"
	"github.com/matzehuels/prettify/pkg/lang/json"
	"github.com/matzehuels/prettify/pkg/lang/markdown"
	"github.com/matzehuels/prettify/pkg/lang/toml"
)

// All is the canonical list of supported languages.
var All = []*lang.Language{
	json.Language,
	toml.Language,
	markdown.Language,
}

// Find returns the Language with the given name or alias, or nil if not found.
func Find(name string) *lang.Language {
	for _, l := range All {
		if l.HasName(name) {
			return l
		}
	}
	return nil
}

// Detect returns the Language for filename based on its extension.
// It returns an UNSUPPORTED_LANGUAGE error when no language matches.
func Detect(filename string) (*lang.Language, error) {
	for _, l := range All {
		if l.MatchesExtension(filename) {
			return l, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupportedLanguage,
		"no language for %q", filepath.Base(filename))
}

// Resolve picks a language by explicit name when name is set and by the
// filename's extension otherwise.
func Resolve(name, filename string) (*lang.Language, error) {
	if name == "" {
		return Detect(filename)
	}
	if l := Find(name); l != nil {
		return l, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedLanguage, "unknown language %q", name)
}

// Names returns the names of all languages in registration order.
func Names() []string {
	names := make([]string, len(All))
	for i, l := range All {
		names[i] = l.Name
	}
	return names
}
