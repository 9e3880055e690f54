// Package config loads formatter settings from project configuration files.
//
// A configuration file is named .prettifyrc.toml, .prettifyrc.yaml,
// .prettifyrc.yml or .prettifyrc.json. The nearest one found walking up from
// a file's directory applies to that file:
//
//	print_width = 100
//	tab_width = 2
//	ignore = ["testdata/**", "*.min.json"]
//
//	[overrides.markdown]
//	print_width = 72
//
// Unknown keys are rejected so that typos surface as INVALID_CONFIG errors
// instead of being silently ignored.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang/languages"
	"github.com/matzehuels/prettify/pkg/printer"
)

// FileNames lists the recognised configuration file names in lookup order.
var FileNames = []string{
	".prettifyrc.toml",
	".prettifyrc.yaml",
	".prettifyrc.yml",
	".prettifyrc.json",
}

// Overrides replaces the base settings for one language. Zero fields keep
// the base value.
type Overrides struct {
	PrintWidth int `toml:"print_width" yaml:"print_width" json:"print_width"`
	TabWidth   int `toml:"tab_width" yaml:"tab_width" json:"tab_width"`
}

// File is a parsed configuration file.
type File struct {
	PrintWidth int                  `toml:"print_width" yaml:"print_width" json:"print_width"`
	TabWidth   int                  `toml:"tab_width" yaml:"tab_width" json:"tab_width"`
	Overrides  map[string]Overrides `toml:"overrides" yaml:"overrides" json:"overrides"`
	Ignore     []string             `toml:"ignore" yaml:"ignore" json:"ignore"`

	// Path is the file the settings were loaded from; empty for defaults.
	Path string `toml:"-" yaml:"-" json:"-"`
}

// Default returns an empty configuration: printer defaults, nothing ignored.
func Default() *File {
	return &File{}
}

// Load reads and validates the configuration file at path. The format is
// chosen by extension.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config %s", path)
	}
	f.Path = path
	return f, nil
}

// Parse decodes data in the format named by ext (".toml", ".yaml", ".yml"
// or ".json") and validates it.
func Parse(data []byte, ext string) (*File, error) {
	f := &File{}
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && err != io.EOF {
			return nil, err
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks widths, override language names and ignore patterns.
func (f *File) Validate() error {
	if err := errors.ValidatePrintWidth(f.PrintWidth); err != nil {
		return err
	}
	if err := errors.ValidateTabWidth(f.TabWidth); err != nil {
		return err
	}
	names := make([]string, 0, len(f.Overrides))
	for name := range f.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if languages.Find(name) == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "override for unknown language %q", name)
		}
		o := f.Overrides[name]
		if err := errors.ValidatePrintWidth(o.PrintWidth); err != nil {
			return err
		}
		if err := errors.ValidateTabWidth(o.TabWidth); err != nil {
			return err
		}
	}
	for _, pattern := range f.Ignore {
		if err := errors.ValidateGlob(pattern); err != nil {
			return err
		}
	}
	return nil
}

// For returns the printer settings for language: base values, then the
// language's overrides, then printer defaults for anything left unset.
// Overrides may be keyed by the language name or one of its aliases.
func (f *File) For(language string) printer.Config {
	cfg := printer.Config{PrintWidth: f.PrintWidth, TabWidth: f.TabWidth}
	l := languages.Find(language)
	for name, o := range f.Overrides {
		if name != language && (l == nil || !l.HasName(name)) {
			continue
		}
		if o.PrintWidth > 0 {
			cfg.PrintWidth = o.PrintWidth
		}
		if o.TabWidth > 0 {
			cfg.TabWidth = o.TabWidth
		}
	}
	return cfg.WithDefaults()
}

// Ignored reports whether path matches one of the ignore patterns. Patterns
// are matched against the path relative to the configuration file's
// directory, against the base name, and against every leading directory,
// so "vendor" ignores everything below a vendor directory. A "/**" suffix
// matches a directory and everything below it.
func (f *File) Ignored(path string) bool {
	if len(f.Ignore) == 0 {
		return false
	}
	rel := filepath.ToSlash(path)
	if f.Path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(filepath.Dir(f.Path), abs); err == nil {
				rel = filepath.ToSlash(r)
			}
		}
	}

	var candidates []string
	parts := strings.Split(rel, "/")
	for i := range parts {
		candidates = append(candidates, strings.Join(parts[:i+1], "/"))
	}
	candidates = append(candidates, parts[len(parts)-1])

	for _, pattern := range f.Ignore {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/**")
		if slices.ContainsFunc(candidates, func(c string) bool {
			ok, _ := filepath.Match(pattern, c)
			return ok
		}) {
			return true
		}
	}
	return false
}

// Find walks up from dir and returns the path of the first configuration
// file found, or "" when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the nearest configuration file above dir, or returns
// Default when there is none.
func Discover(dir string) (*File, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
