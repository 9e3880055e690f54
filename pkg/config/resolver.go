package config

import (
	"path/filepath"
	"sync"
)

// Resolver finds the configuration for many files, loading each
// configuration file once. It is safe for concurrent use.
type Resolver struct {
	// Fixed, when set, applies to every file and disables discovery.
	Fixed *File

	mu    sync.Mutex
	byDir map[string]*File
}

// NewResolver returns a Resolver that discovers configuration files.
func NewResolver() *Resolver {
	return &Resolver{byDir: make(map[string]*File)}
}

// NewFixedResolver returns a Resolver that always returns f.
func NewFixedResolver(f *File) *Resolver {
	return &Resolver{Fixed: f}
}

// Resolve returns the configuration that applies to the file at path.
func (r *Resolver) Resolve(path string) (*File, error) {
	if r.Fixed != nil {
		return r.Fixed, nil
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.byDir[dir]; ok {
		return f, nil
	}
	f, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	r.byDir[dir] = f
	return f, nil
}
