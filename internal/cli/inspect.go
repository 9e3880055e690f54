package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prettify/pkg/errors"
	"github.com/matzehuels/prettify/pkg/inspect"
	"github.com/matzehuels/prettify/pkg/pipeline"
	"github.com/matzehuels/prettify/pkg/printer"
)

const (
	inspectText = "text"
	inspectDOT  = "dot"
	inspectSVG  = "svg"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format     string
	output     string
	language   string
	printWidth int
}

// inspectCommand creates the inspect command for debugging documents.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{format: inspectText}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the document a file is parsed into",
		Long: `Show the document a file is parsed into, before it is printed.

Formats:
  text  builder calls, e.g. group(["[", indent([softline, "1"]), "]"])
  dot   Graphviz DOT source of the document tree
  svg   the DOT graph rendered to SVG

Use "-" to read standard input; --language is then required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case inspectText, inspectDOT, inspectSVG:
			default:
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text, dot or svg)", opts.format)
			}
			return c.runInspect(cmd.Context(), args[0], cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "input language (default: from file extension)")
	cmd.Flags().IntVar(&opts.printWidth, "print-width", 0, "line width for text output")

	return cmd
}

// runInspect parses input and writes the requested rendering of its document.
func (c *CLI) runInspect(ctx context.Context, input string, stdin io.Reader, stdout io.Writer, opts inspectOpts) error {
	var (
		src []byte
		err error
	)
	popts := pipeline.Options{Language: opts.language}
	if input == "-" {
		src, err = io.ReadAll(io.LimitReader(stdin, pipeline.MaxSourceSize+1))
	} else {
		popts.Filename = filepath.Base(input)
		src, err = os.ReadFile(input)
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", input)
		}
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	d, l, err := runner.Document(src, popts)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var out []byte
	switch opts.format {
	case inspectText:
		out = []byte(inspect.Text(d, printer.Config{PrintWidth: opts.printWidth}))
	case inspectDOT:
		out = []byte(inspect.ToDOT(d))
	case inspectSVG:
		out, err = inspect.RenderSVG(ctx, inspect.ToDOT(d))
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
	}

	if opts.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Inspected %s document", l.Name))

	s := inspect.Collect(d)
	printSuccess("Wrote %s", opts.format)
	printFile(opts.output)
	printDetail("%d nodes · %d groups · %d lines · depth %d", s.Nodes, s.Groups, s.Lines, s.MaxDepth)
	return nil
}
