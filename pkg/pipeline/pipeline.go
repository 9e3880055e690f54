// Package pipeline provides the formatting pipeline shared by the CLI and
// the format service.
//
// A run has two stages:
//
//  1. Parse: a language front-end turns source text into a document
//  2. Print: the printer lays the document out for the configured width
//
// Results are cached by source hash, language and printer settings, so
// formatting an unchanged file costs one hash and one cache lookup.
//
// # Usage
//
// Format a single source:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Format(ctx, src, pipeline.Options{Filename: "config.toml"})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(res.Formatted)
//
// Format a tree of files in place:
//
//	summary, err := runner.FormatFiles(ctx, []string{"."}, pipeline.FileOptions{Write: true})
package pipeline

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettify/pkg/buildinfo"
	"github.com/matzehuels/prettify/pkg/cache"
	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/printer"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCacheTTL is how long formatted output stays cached.
	DefaultCacheTTL = 30 * 24 * time.Hour

	// MaxSourceSize is the largest source accepted, in bytes.
	MaxSourceSize = 16 << 20
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures formatting of one source.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Language names the input language. When empty it is detected from
	// Filename.
	Language string `json:"language,omitempty"`
	Filename string `json:"filename,omitempty"`

	// Printer settings; zero values use the printer defaults.
	PrintWidth int `json:"print_width,omitempty"`
	TabWidth   int `json:"tab_width,omitempty"`

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Validate checks that a language can be chosen and that the printer
// settings are in range.
func (o *Options) Validate() error {
	if o.Language == "" && o.Filename == "" {
		return errors.New(errors.ErrCodeInvalidInput, "language or filename is required")
	}
	if o.Filename != "" {
		if err := errors.ValidateFilename(filepath.Base(o.Filename)); err != nil {
			return err
		}
	}
	if err := errors.ValidatePrintWidth(o.PrintWidth); err != nil {
		return err
	}
	return errors.ValidateTabWidth(o.TabWidth)
}

// PrinterConfig returns the printer settings with defaults applied.
func (o *Options) PrinterConfig() printer.Config {
	return printer.Config{PrintWidth: o.PrintWidth, TabWidth: o.TabWidth}.WithDefaults()
}

// KeyOpts returns cache key options for the printer settings.
func (o *Options) KeyOpts() cache.FormatKeyOpts {
	cfg := o.PrinterConfig()
	return cache.FormatKeyOpts{
		PrintWidth: cfg.PrintWidth,
		TabWidth:   cfg.TabWidth,
		Version:    buildinfo.CacheVersion(),
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the output of formatting one source.
type Result struct {
	// Language is the name of the language used.
	Language string

	// Formatted is the printed document.
	Formatted string

	// Changed reports whether Formatted differs from the source.
	Changed bool

	// CacheHit reports whether Formatted came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics. Parse and print times are
// zero on a cache hit.
type Stats struct {
	InputBytes  int
	OutputBytes int
	ParseTime   time.Duration
	PrintTime   time.Duration
}
