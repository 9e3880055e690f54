package cache

// ScopedKeyer wraps a Keyer with a prefix so that several services can
// share one backend without seeing each other's entries.
//
// Example usage:
//
//	// Keys for the staging deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FormatKey generates a prefixed key for formatted output.
func (k *ScopedKeyer) FormatKey(language string, source []byte, opts FormatKeyOpts) string {
	return k.prefix + k.inner.FormatKey(language, source, opts)
}
