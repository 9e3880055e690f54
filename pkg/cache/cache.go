// Package cache stores formatted output keyed by source content and
// printer settings.
//
// Two layers are provided:
//
//   - [Cache] is the byte-level backend: [FileCache] for the CLI,
//     [RedisCache] for a format service shared by several replicas,
//     [MemoryCache] for a single service process and [NullCache] to
//     disable caching.
//   - [Keyer] derives cache keys. [DefaultKeyer] hashes the language, the
//     source and the printer settings; [ScopedKeyer] adds a namespace.
//
// Backends treat a missing or expired entry as a miss, never as an error.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-level key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// FormatKeyOpts are the settings that change formatted output.
type FormatKeyOpts struct {
	PrintWidth int    `json:"print_width"`
	TabWidth   int    `json:"tab_width"`
	Version    string `json:"version,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// FormatKey returns the key for formatting source as language.
	FormatKey(language string, source []byte, opts FormatKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FormatKey returns "format:<sha256>" over the language, the source digest
// and opts.
func (DefaultKeyer) FormatKey(language string, source []byte, opts FormatKeyOpts) string {
	return formatKey("format", language, source, opts)
}
