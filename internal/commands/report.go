package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"github.com/maxonary/LLM-Invoice-Sorter/internal/cache"
	"github.com/maxonary/LLM-Invoice-Sorter/internal/calendar"
	"github.com/maxonary/LLM-Invoice-Sorter/internal/inference"
	"github.com/maxonary/LLM-Invoice-Sorter/internal/pdftext"
	"github.com/maxonary/LLM-Invoice-Sorter/internal/report"
	"github.com/maxonary/LLM-Invoice-Sorter/internal/sinks"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/config"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/logging"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Process the sorted invoices and write the yearly expense report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runReport(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.Int("year", 0, "report year (required unless INVOICE_SORTER_YEAR is set)")
	flags.String("sorted-dir", "", "directory holding the Travel/ and Food/ subdirectories")
	flags.String("reports-dir", "", "directory finished reports are written to")
	flags.String("language", "", "report language (en or de)")
	flags.Bool("force-include", false, "keep undated or wrong-year documents under the fallback date")
	flags.Bool("parallel", false, "process documents with a worker pool")
	flags.Int("workers", 0, "worker pool size")
	flags.Bool("cache", false, "consult the inference cache before calling the model")
	flags.String("cache-path", "", "inference cache database file")
	flags.String("calendar", "", "YAML file mapping dates to event labels")
	flags.String("sink", "", "report sink (see 'invoice-sorter sinks')")

	return cmd
}

// applyFlagOverrides layers explicitly set flags over the environment
// configuration. Unset flags never clobber environment values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("year") {
		cfg.Year, _ = flags.GetInt("year")
	}
	if flags.Changed("sorted-dir") {
		cfg.SortedDir, _ = flags.GetString("sorted-dir")
	}
	if flags.Changed("reports-dir") {
		cfg.ReportsDir, _ = flags.GetString("reports-dir")
	}
	if flags.Changed("language") {
		cfg.Language, _ = flags.GetString("language")
	}
	if flags.Changed("force-include") {
		cfg.ForceInclude, _ = flags.GetBool("force-include")
	}
	if flags.Changed("parallel") {
		cfg.Parallel, _ = flags.GetBool("parallel")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("cache") {
		cfg.CacheEnabled, _ = flags.GetBool("cache")
	}
	if flags.Changed("cache-path") {
		cfg.CachePath, _ = flags.GetString("cache-path")
	}
	if flags.Changed("calendar") {
		cfg.CalendarPath, _ = flags.GetString("calendar")
	}
	if flags.Changed("sink") {
		cfg.Sink, _ = flags.GetString("sink")
	}
}

func runReport(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	logger := logging.Setup(logging.DefaultConfig())

	inferencer, err := buildInferencer(ctx, cfg.Inference)
	if err != nil {
		return err
	}

	if cfg.CacheEnabled {
		store, err := cache.OpenSQLite(ctx, cfg.CachePath)
		if err != nil {
			return fmt.Errorf("opening inference cache: %w", err)
		}
		defer store.Close()
		inferencer = cache.NewGate(store, inferencer, logger)
	}

	cal, err := calendar.Load(cfg.CalendarPath)
	if err != nil {
		return fmt.Errorf("loading calendar: %w", err)
	}

	sink, target, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return err
	}

	pipeline := &report.Pipeline{
		Runner: &report.Runner{
			Proc: &report.Processor{
				Year:           cfg.Year,
				ForceInclude:   cfg.ForceInclude,
				ReportLanguage: cfg.Language,
				Extractor:      pdftext.New(api.ExcerptLimit),
				Inferencer:     inferencer,
				Calendar:       cal,
				Logger:         logger,
			},
			Parallel: cfg.Parallel,
			Workers:  cfg.Workers,
			Logger:   logger,
		},
		Sink:     sink,
		Language: cfg.Language,
		Logger:   logger,
	}

	summary, err := pipeline.Run(ctx, cfg.SortedDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d processed, %d skipped)\n",
		target, summary.Processed, summary.Skipped)
	return nil
}

func buildInferencer(ctx context.Context, cfg config.InferenceConfig) (api.Inferencer, error) {
	switch cfg.Backend {
	case "openai":
		return &inference.OpenAIClient{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
		}, nil
	case "gemini":
		return inference.NewGeminiClient(ctx, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown inference backend %q (want \"openai\" or \"gemini\")", cfg.Backend)
	}
}

// buildSink creates the configured sink and returns it with a human-readable
// target description for the final status line.
func buildSink(ctx context.Context, cfg config.Config, logger *slog.Logger) (api.RowSink, string, error) {
	opts := sinks.Options{
		SheetTitle: cfg.SheetTitle,
		SheetID:    cfg.SheetID,
		Postgres:   cfg.Postgres,
		ReportYear: cfg.Year,
		Language:   cfg.Language,
		Logger:     logger,
	}

	target := cfg.Sink
	if ext := sinks.Ext(cfg.Sink); ext != "" {
		if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
			return nil, "", fmt.Errorf("creating reports directory: %w", err)
		}
		opts.Path = filepath.Join(cfg.ReportsDir, report.Filename(cfg.Year, cfg.Language)+ext)
		target = opts.Path
	}

	if cfg.Sink == "sheets" {
		// Application default credentials; the interactive OAuth flow is
		// out of scope.
		httpClient, err := google.DefaultClient(ctx, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, "", fmt.Errorf("building sheets client: %w", err)
		}
		opts.HTTPClient = httpClient
	}

	sink, err := sinks.NewRegistry().Create(ctx, cfg.Sink, opts)
	if err != nil {
		return nil, "", err
	}
	return sink, target, nil
}
