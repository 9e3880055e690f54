package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prettify/pkg/config"
	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/pipeline"
)

// formatOpts holds the command-line flags for the format command.
type formatOpts struct {
	write         bool
	check         bool
	printWidth    int
	tabWidth      int
	noCache       bool
	concurrency   int
	stdinLanguage string
	configPath    string
}

// formatCommand creates the format command.
func (c *CLI) formatCommand() *cobra.Command {
	opts := formatOpts{write: true}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format JSON, TOML and Markdown files",
		Long: `Format JSON, TOML and Markdown files.

Directories are walked recursively and every file with a known extension is
formatted in place. Hidden files and directories are skipped, as are paths
matched by the "ignore" list of a .prettifyrc file. Glob patterns such as
"docs/*.md" are expanded.

Settings come from the nearest .prettifyrc.toml, .prettifyrc.yaml or
.prettifyrc.json above each file; --print-width and --tab-width override
them.

Use "-" as the only path to format standard input to standard output. The
language must then be given with --stdin-language.

Results are cached locally, keyed by file content and settings.`,
		Example: `  prettify format
  prettify format --check docs/ package.json
  cat Cargo.toml | prettify format --stdin-language toml -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] == "-" {
				return c.runFormatStdin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
			}
			return c.runFormat(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.write, "write", "w", opts.write, "write formatted output back to files")
	cmd.Flags().BoolVar(&opts.check, "check", false, "report unformatted files and exit non-zero without writing")
	cmd.Flags().IntVar(&opts.printWidth, "print-width", 0, "line width to fit output to (default from config, else 80)")
	cmd.Flags().IntVar(&opts.tabWidth, "tab-width", 0, "indentation width (default from config, else 4)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", 0, "files formatted in parallel (default: number of CPUs)")
	cmd.Flags().StringVar(&opts.stdinLanguage, "stdin-language", "", "language of standard input, or of every file when paths are given")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "use this config file instead of discovering one")

	return cmd
}

// runFormat formats files and directories in place.
func (c *CLI) runFormat(ctx context.Context, args []string, opts formatOpts) error {
	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	var resolver *config.Resolver
	if opts.configPath != "" {
		f, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		resolver = config.NewFixedResolver(f)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var spinner *Spinner
	if c.Logger.GetLevel() > log.DebugLevel {
		spinner = newSpinner(ctx, os.Stderr, "Formatting...")
		spinner.Start()
	}

	summary, err := runner.FormatFiles(ctx, paths, pipeline.FileOptions{
		Write:       opts.write && !opts.check,
		Check:       opts.check,
		Concurrency: opts.concurrency,
		Language:    opts.stdinLanguage,
		PrintWidth:  opts.printWidth,
		TabWidth:    opts.tabWidth,
		Resolver:    resolver,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if summary == nil {
		return err
	}

	printSummary(summary, opts)
	return err
}

// printSummary reports per-file results and totals.
func printSummary(summary *pipeline.Summary, opts formatOpts) {
	listOnly := opts.check || !opts.write
	for _, f := range summary.Files {
		switch {
		case f.Err != nil:
			printError("%s: %s", f.Path, errors.UserMessage(f.Err))
		case listOnly:
			if f.Changed {
				printWarning("%s", f.Path)
			}
		default:
			printFileStatus(f.Path, f.Changed, f.CacheHit, f.Duration)
		}
	}

	total, changed, failed := len(summary.Files), summary.Changed(), summary.Failed()
	switch {
	case failed > 0:
		printError("%d of %d files failed", failed, total)
	case listOnly && changed > 0:
		printWarning("%d of %d files are not formatted", changed, total)
	case listOnly:
		printSuccess("All %d files are formatted", total)
	default:
		printSuccess("Formatted %d files in %s", total, elapsedString(summary.Elapsed))
		printDetail("%d changed", changed)
	}
}

// runFormatStdin formats standard input to standard output. With --check it
// writes nothing and fails when the input is not formatted.
func (c *CLI) runFormatStdin(ctx context.Context, in io.Reader, out io.Writer, opts formatOpts) error {
	if opts.stdinLanguage == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--stdin-language is required when formatting standard input")
	}

	src, err := io.ReadAll(io.LimitReader(in, pipeline.MaxSourceSize+1))
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	cfg, err := loadConfig(opts.configPath, ".")
	if err != nil {
		return err
	}
	pc := cfg.For(opts.stdinLanguage)
	if opts.printWidth > 0 {
		pc.PrintWidth = opts.printWidth
	}
	if opts.tabWidth > 0 {
		pc.TabWidth = opts.tabWidth
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Format(ctx, src, pipeline.Options{
		Language:   opts.stdinLanguage,
		PrintWidth: pc.PrintWidth,
		TabWidth:   pc.TabWidth,
		Logger:     loggerFromContext(ctx),
	})
	if err != nil {
		return err
	}
	if opts.check {
		if res.Changed {
			return errors.New(errors.ErrCodeNotFormatted, "standard input is not formatted")
		}
		return nil
	}
	_, err = io.WriteString(out, res.Formatted)
	return err
}

// loadConfig loads path when set, otherwise discovers the configuration
// nearest to dir.
func loadConfig(path, dir string) (*config.File, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(dir)
}

// expandGlobs replaces arguments containing glob metacharacters with their
// matches. A pattern without matches is an error, like a missing file.
func expandGlobs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			paths = append(paths, arg)
			continue
		}
		if err := errors.ValidateGlob(arg); err != nil {
			return nil, err
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid pattern %q", arg)
		}
		if len(matches) == 0 {
			return nil, errors.New(errors.ErrCodeFileNotFound, "no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
