package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jacoelho/jpq/internal/config"
	"github.com/jacoelho/jpq/internal/document"
	"github.com/jacoelho/jpq/internal/exit"
	"github.com/jacoelho/jpq/internal/jsonpath"
	"github.com/jacoelho/jpq/internal/output"
	"github.com/jacoelho/jpq/internal/results"
)

// Runner evaluates one query against every input document.
type Runner struct {
	config    *config.Config
	formatter *output.Formatter
	logger    *slog.Logger
	input     io.Reader
	errOutput io.Writer
}

// New creates a new Runner with the provided configuration.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config) (*Runner, *exit.Result) {
	if cfg == nil {
		return nil, exit.Errorf("Error creating runner: no configuration\n")
	}

	return &Runner{
		config:    cfg,
		formatter: output.New(cfg.Output, cfg.Color),
		logger:    slog.New(slog.DiscardHandler),
		input:     os.Stdin,
		errOutput: os.Stderr,
	}, nil
}

// SetOutput redirects formatted nodes. Colour auto-detection follows w.
func (r *Runner) SetOutput(w io.Writer) {
	r.formatter = output.NewWithWriter(w, r.config.Output, r.config.Color.Enabled(w))
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

// SetInput replaces stdin.
func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetLogger(logger *slog.Logger) {
	r.logger = logger
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOutput, format, args...)
}

// Run evaluates the query and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	query, err := jsonpath.Parse(r.config.Query)
	if err != nil {
		r.logf("Error: invalid query: %v\n", err)
		return exit.CodeError
	}

	opts := r.config.Options()
	opts.Logger = r.logger

	summary := results.NewSummary()
	start := time.Now()

	sources := r.config.Files
	if len(sources) == 0 {
		sources = []string{config.Stdin}
	}

	for _, source := range sources {
		if err := r.runSource(ctx, query, opts, source, summary); err != nil {
			r.logf("Error: %v\n", err)
			var limit *jsonpath.LimitError
			if errors.As(err, &limit) {
				return exit.CodeTruncated
			}
			return exit.CodeError
		}
	}

	summary.SetTotalDuration(time.Since(start))
	r.logger.Debug("run complete", "query", r.config.Query, "summary", summary)

	return summary.ExitCode()
}

// runSource evaluates every document of one source, formatting as it goes.
func (r *Runner) runSource(ctx context.Context, query *jsonpath.Query, opts jsonpath.Options, source string, summary *results.Summary) error {
	in, closeInput, err := r.open(source)
	if err != nil {
		return err
	}
	defer closeInput()

	format := document.FormatFor(source, r.config.Input)
	dec := document.NewDecoder(in, format)
	r.logger.Debug("reading documents", "source", source, "format", format.String())

	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("interrupted: %w", err)
		}

		doc, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: document %d: %w", source, index, err)
		}

		res, err := jsonpath.Evaluate(query, doc, opts)
		if err != nil {
			return fmt.Errorf("%s: document %d: %w", source, index, err)
		}

		if err := r.formatter.Format(res.Nodes); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		result := results.NewDocumentResultBuilder(source, index).
			WithNodes(len(res.Nodes)).
			WithVisited(res.Visited).
			WithLimit(res.Limit)
		summary.Add(result)

		if res.Truncated {
			r.logf("Warning: %s: document %d: result truncated: %v\n", source, index, res.Limit)
		}
		r.logger.Debug("document evaluated", "document", result.Build())
	}
}

func (r *Runner) open(source string) (io.Reader, func(), error) {
	if source == config.Stdin {
		return r.input, func() {}, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", source, err)
	}
	return f, func() { _ = f.Close() }, nil
}
