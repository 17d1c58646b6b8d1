package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"ecomdash/internal/config"
	"ecomdash/internal/dataprocessing"
	"ecomdash/internal/infrastructure"
	"ecomdash/internal/services"
)

// options are the command line flags of one summarize run
type options struct {
	in      string
	sheet   string
	summary string
	format  string
	sort    string
	order   string
	limit   int
	out     string
}

func main() {
	var opts options
	flag.StringVar(&opts.in, "in", "", "transactions file (.csv or .xlsx, defaults to the configured dataset)")
	flag.StringVar(&opts.sheet, "sheet", "", "worksheet of an .xlsx input (defaults to the first sheet)")
	flag.StringVar(&opts.summary, "summary", "categories", "summary to write: categories, reviews or tiers")
	flag.StringVar(&opts.format, "format", "csv", "output format: csv or xlsx")
	flag.StringVar(&opts.sort, "sort", "", "sort key: revenue or items (default keeps category order)")
	flag.StringVar(&opts.order, "order", "", "sort order: asc or desc (default desc)")
	flag.IntVar(&opts.limit, "limit", 0, "maximum rows, 0 for all")
	flag.StringVar(&opts.out, "out", "", "output file (defaults to stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// stdout may carry the export, so logs go to stderr
	logger, err := infrastructure.NewLogger(cfg.Logging, os.Stderr)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	if opts.in == "" {
		opts.in = cfg.Dataset.Source
		if opts.sheet == "" {
			opts.sheet = cfg.Dataset.Sheet
		}
	}

	if err := writeExport(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Error("Summarize failed", "error", err)
		os.Exit(1)
	}
}

// writeExport runs one export into opts.out, or into stdout when no file is
// named. A failed run removes the partial output file.
func writeExport(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	if opts.out == "" {
		return run(ctx, opts, stdout, logger)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", opts.out, err)
	}

	if err := run(ctx, opts, f, logger); err != nil {
		_ = f.Close()
		if rmErr := os.Remove(opts.out); rmErr != nil {
			logger.Warn("Failed to remove partial output file", "path", opts.out, "error", rmErr)
		}
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", opts.out, err)
	}
	return nil
}

// run loads the dataset and writes one summary export to out
func run(ctx context.Context, opts options, out io.Writer, logger *slog.Logger) error {
	ds, err := dataprocessing.LoadTransactions(ctx, opts.in, dataprocessing.LoaderOptions{
		Sheet:  opts.sheet,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", opts.in, err)
	}

	svc := services.NewDashboardService(ds, nil, logger)
	return svc.Export(ctx, out, services.ExportRequest{
		Summary: opts.summary,
		Format:  opts.format,
		Query: services.SummaryQuery{
			Sort:  opts.sort,
			Order: opts.order,
			Limit: opts.limit,
		},
	})
}
