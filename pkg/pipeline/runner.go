package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/prettify/pkg/cache"
	"github.com/matzehuels/prettify/pkg/doc"
	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/lang"
	"github.com/matzehuels/prettify/pkg/lang/languages"
	"github.com/matzehuels/prettify/pkg/observability"
	"github.com/matzehuels/prettify/pkg/printer"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and format service use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    DefaultCacheTTL,
	}
}

// Format formats src according to opts, consulting the cache first.
// Cache failures are logged and reported to the cache hooks but never fail
// the call.
func (r *Runner) Format(ctx context.Context, src []byte, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(src) > MaxSourceSize {
		return nil, errors.New(errors.ErrCodeTooLarge, "source too large (%d bytes, max %d)", len(src), MaxSourceSize)
	}
	l, err := languages.Resolve(opts.Language, opts.Filename)
	if err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	hooks := observability.Cache()

	key := r.Keyer.FormatKey(l.Name, src, opts.KeyOpts())
	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			hooks.OnCacheError(ctx, "get", err)
			logger.Warn("cache lookup failed", "err", err)
		case hit:
			hooks.OnCacheHit(ctx, l.Name)
			logger.Debug("cache hit", "language", l.Name, "file", opts.Filename)
			formatted := string(data)
			return &Result{
				Language:  l.Name,
				Formatted: formatted,
				Changed:   formatted != string(src),
				CacheHit:  true,
				Stats:     Stats{InputBytes: len(src), OutputBytes: len(data)},
			}, nil
		default:
			hooks.OnCacheMiss(ctx, l.Name)
		}
	}

	res, err := r.format(ctx, l, src, opts)
	if err != nil {
		return nil, err
	}

	if err := r.Cache.Set(ctx, key, []byte(res.Formatted), r.TTL); err != nil {
		hooks.OnCacheError(ctx, "set", err)
		logger.Warn("cache store failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, l.Name, len(res.Formatted))
	}

	logger.Debug("formatted",
		"language", l.Name,
		"file", opts.Filename,
		"parse", res.Stats.ParseTime,
		"print", res.Stats.PrintTime)
	return res, nil
}

func (r *Runner) format(ctx context.Context, l *lang.Language, src []byte, opts Options) (*Result, error) {
	hooks := observability.Format()
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "format cancelled")
	}

	parseStart := time.Now()
	hooks.OnParseStart(ctx, l.Name, len(src))
	d, err := l.Format(string(src))
	parseTime := time.Since(parseStart)
	hooks.OnParseComplete(ctx, l.Name, parseTime, err)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "format cancelled")
	}

	printStart := time.Now()
	hooks.OnPrintStart(ctx, l.Name)
	out := printer.Print(d, opts.PrinterConfig())
	printTime := time.Since(printStart)
	hooks.OnPrintComplete(ctx, l.Name, len(out), printTime)

	return &Result{
		Language:  l.Name,
		Formatted: out,
		Changed:   out != string(src),
		Stats: Stats{
			InputBytes:  len(src),
			OutputBytes: len(out),
			ParseTime:   parseTime,
			PrintTime:   printTime,
		},
	}, nil
}

// Document parses src into a document without printing it. It never
// uses the cache.
func (r *Runner) Document(src []byte, opts Options) (doc.Doc, *lang.Language, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	l, err := languages.Resolve(opts.Language, opts.Filename)
	if err != nil {
		return nil, nil, err
	}
	d, err := l.Format(string(src))
	if err != nil {
		return nil, l, err
	}
	return d, l, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
