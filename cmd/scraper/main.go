// Command scraper downloads the BVRD daily consolidated bulletins for a
// date range, extracts the requested sheets, and optionally persists the
// results in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"bvrdcli/internal/config"
	"bvrdcli/internal/infrastructure"
	"bvrdcli/internal/pipeline"
	"bvrdcli/internal/store"
	"bvrdcli/pkg/contracts/domain"
)

func main() {
	fromStr := flag.String("from", "", "start date (YYYY-MM-DD), required")
	toStr := flag.String("to", "", "end date (YYYY-MM-DD); defaults to --from")
	sheetsStr := flag.String("sheets", "", "comma-separated sheet names; defaults to all sheets")
	dsn := flag.String("dsn", "", "PostgreSQL DSN; overrides config, empty disables storage")
	flag.Parse()

	if *fromStr == "" {
		fmt.Fprintln(os.Stderr, "Error: --from is required")
		flag.Usage()
		os.Exit(2)
	}
	if *toStr == "" {
		*toStr = *fromStr
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	sheetNames := cfg.Scrape.Sheets
	if *sheetsStr != "" {
		sheetNames = strings.Split(*sheetsStr, ",")
	}
	sheets, err := parseSheets(sheetNames)
	if err != nil {
		logger.Error("invalid sheet selection", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(pipeline.Config{
		BaseURL:  cfg.Scrape.BaseURL,
		Timeout:  cfg.Scrape.Timeout,
		Throttle: cfg.Scrape.Throttle,
		Sheets:   sheets,
	}, logger, nil)

	result, err := p.Run(ctx, *fromStr, *toStr)
	if err != nil {
		logger.Error("extraction failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, s := range result.Report.DatesSkipped {
		logger.Info("date without bulletin",
			slog.String("date", s.Date.Format("2006-01-02")),
			slog.String("reason", string(s.Reason)))
	}

	if *dsn == "" {
		*dsn = cfg.Database.DSN
	}
	if *dsn != "" {
		if err := persist(ctx, *dsn, result, logger); err != nil {
			logger.Error("failed to persist results", slog.String("error", err.Error()))
			os.Exit(1)
		}
	} else {
		logger.Info("no database configured, results not persisted")
	}

	total := 0
	for _, records := range result.Batches {
		total += len(records)
	}
	logger.Info("scraper finished",
		slog.Int("dates_processed", result.Report.DatesProcessed),
		slog.Int("dates_skipped", len(result.Report.DatesSkipped)),
		slog.Int("sheets_skipped", len(result.Report.SheetsSkipped)),
		slog.Int("records", total))
}

// parseSheets resolves sheet names from the flag or config into sheet
// types. An empty selection means all sheets.
func parseSheets(names []string) ([]domain.SheetType, error) {
	if len(names) == 0 {
		return nil, nil
	}
	sheets := make([]domain.SheetType, 0, len(names))
	for _, name := range names {
		sheet, err := domain.ParseSheetType(name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// persist writes every extracted batch to PostgreSQL, the wide market
// summary through its own repository and everything else row by row.
func persist(ctx context.Context, dsn string, result *pipeline.Result, logger *slog.Logger) error {
	pool, err := store.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	summaries := store.NewSummaryRepo(pool)
	records := store.NewRecordsRepo(pool)

	if err := summaries.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := records.EnsureSchema(ctx); err != nil {
		return err
	}

	for sheet, batch := range result.Batches {
		if sheet == domain.SheetResumenGeneralMercado {
			wide := make([]domain.MarketSummary, 0, len(batch))
			for _, r := range batch {
				wide = append(wide, domain.SummaryFromRecord(r))
			}
			if err := summaries.Save(ctx, wide); err != nil {
				return err
			}
		} else {
			if err := records.Save(ctx, sheet, batch); err != nil {
				return err
			}
		}
		logger.Info("batch stored",
			slog.String("sheet", string(sheet)),
			slog.Int("records", len(batch)))
	}
	return nil
}
