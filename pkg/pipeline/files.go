package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/prettify/pkg/config"
	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang/languages"
)

// FileOptions configures FormatFiles.
type FileOptions struct {
	// Write replaces files whose formatted output differs.
	Write bool

	// Check reports files that are not formatted without writing them.
	// A check run returns a NOT_FORMATTED error when any file would change.
	Check bool

	// Concurrency bounds the number of files formatted at once.
	// Zero means runtime.NumCPU().
	Concurrency int

	// Language forces a language for every file instead of detecting it.
	Language string

	// PrintWidth and TabWidth, when set, override configuration files.
	PrintWidth int
	TabWidth   int

	// Refresh skips cache lookups.
	Refresh bool

	// Resolver finds per-file configuration. Nil discovers configuration
	// files next to each input.
	Resolver *config.Resolver
}

// FileResult describes one formatted file.
type FileResult struct {
	Path     string
	Language string
	Changed  bool
	Written  bool
	CacheHit bool
	Duration time.Duration
	Err      error
}

// Summary collects the outcome of FormatFiles. Files are in natural path
// order regardless of completion order.
type Summary struct {
	RunID   string
	Files   []FileResult
	Elapsed time.Duration
}

// Changed returns the number of files whose formatting differs.
func (s *Summary) Changed() int {
	n := 0
	for _, f := range s.Files {
		if f.Err == nil && f.Changed {
			n++
		}
	}
	return n
}

// Failed returns the number of files that could not be formatted.
func (s *Summary) Failed() int {
	n := 0
	for _, f := range s.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// FormatFiles formats every supported file found under paths. Directories
// are walked recursively, skipping hidden entries and files matched by
// a configuration file's ignore list. Explicitly named files are always
// formatted.
//
// Per-file failures do not stop the run; they are recorded in the summary
// and returned combined into one error.
func (r *Runner) FormatFiles(ctx context.Context, paths []string, opts FileOptions) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	logger := r.Logger.With("run", summary.RunID[:8])

	resolver := opts.Resolver
	if resolver == nil {
		resolver = config.NewResolver()
	}
	files, err := CollectFiles(paths, resolver, opts.Language != "")
	if err != nil {
		return nil, err
	}
	logger.Debug("collected files", "count", len(files))

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	summary.Files = make([]FileResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			summary.Files[i] = r.formatFile(ctx, path, resolver, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	summary.Elapsed = time.Since(start)

	var combined error
	for _, f := range summary.Files {
		if f.Err != nil {
			combined = multierr.Append(combined, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	if opts.Check && combined == nil {
		if n := summary.Changed(); n > 0 {
			combined = errors.New(errors.ErrCodeNotFormatted, "%d file(s) not formatted", n)
		}
	}

	logger.Info("formatted files",
		"files", len(summary.Files),
		"changed", summary.Changed(),
		"failed", summary.Failed(),
		"duration", summary.Elapsed)
	return summary, combined
}

func (r *Runner) formatFile(ctx context.Context, path string, resolver *config.Resolver, opts FileOptions) (res FileResult) {
	start := time.Now()
	res = FileResult{Path: path}
	defer func() { res.Duration = time.Since(start) }()

	cfg, err := resolver.Resolve(path)
	if err != nil {
		res.Err = err
		return res
	}
	info, err := os.Stat(path)
	if err != nil {
		res.Err = errors.Wrap(errors.ErrCodeFileNotFound, err, "stat %s", path)
		return res
	}
	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}

	lang, err := languages.Resolve(opts.Language, path)
	if err != nil {
		res.Err = err
		return res
	}
	pc := cfg.For(lang.Name)
	if opts.PrintWidth > 0 {
		pc.PrintWidth = opts.PrintWidth
	}
	if opts.TabWidth > 0 {
		pc.TabWidth = opts.TabWidth
	}

	out, err := r.Format(ctx, src, Options{
		Language:   lang.Name,
		Filename:   path,
		PrintWidth: pc.PrintWidth,
		TabWidth:   pc.TabWidth,
		Refresh:    opts.Refresh,
	})
	if err != nil {
		res.Err = err
		return res
	}
	res.Language = out.Language
	res.Changed = out.Changed
	res.CacheHit = out.CacheHit

	if out.Changed && opts.Write && !opts.Check {
		if err := os.WriteFile(path, []byte(out.Formatted), info.Mode().Perm()); err != nil {
			res.Err = fmt.Errorf("write: %w", err)
			return res
		}
		res.Written = true
	}
	return res
}

// CollectFiles expands paths into the list of files to format, in natural
// order without duplicates. Files inside directories are included when a
// language matches their extension, or always when anyLanguage is set.
func CollectFiles(paths []string, resolver *config.Resolver, anyLanguage bool) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		if err := errors.ValidatePath(root); err != nil {
			return nil, err
		}
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			hidden := path != root && strings.HasPrefix(d.Name(), ".")
			if d.IsDir() {
				if hidden {
					return filepath.SkipDir
				}
				return nil
			}
			if hidden {
				return nil
			}
			if !anyLanguage {
				if _, err := languages.Detect(path); err != nil {
					return nil
				}
			}
			cfg, err := resolver.Resolve(path)
			if err != nil {
				return err
			}
			if cfg.Ignored(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Sort(natural.StringSlice(files))
	return files, nil
}
