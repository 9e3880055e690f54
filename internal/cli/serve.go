package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettify/pkg/cache"
	"github.com/matzehuels/prettify/pkg/pipeline"
	"github.com/matzehuels/prettify/pkg/server"
)

// defaultMemoryEntries bounds the in-process cache of the format service.
const defaultMemoryEntries = 4096

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr          string
	redisAddr     string
	memoryEntries int
	noCache       bool
	maxBodyBytes  int64
}

// serveCommand creates the serve command that runs the format service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:          defaultAddr,
		memoryEntries: defaultMemoryEntries,
		maxBodyBytes:  server.DefaultMaxBodyBytes,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP format service",
		Long: `Run the HTTP format service.

Routes:
  POST /v1/format?language=json    format the request body
  GET  /v1/languages               list supported languages
  GET  /healthz                    liveness probe

Results are cached in process memory, or in Redis when --redis is given so
that several instances share one cache. The Redis address is host:port or a
redis:// URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for a shared cache")
	cmd.Flags().IntVar(&opts.memoryEntries, "memory-entries", opts.memoryEntries, "in-memory cache size when Redis is not used")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", opts.maxBodyBytes, "largest accepted request body")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	srv.MaxBodyBytes = opts.maxBodyBytes

	printInfo("Listening on %s", StyleHighlight.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the cache backend for the format service.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisAddr != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	default:
		return cache.NewMemoryCache(opts.memoryEntries), nil
	}
}
