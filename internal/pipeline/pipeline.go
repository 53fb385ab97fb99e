// Package pipeline orchestrates the document-dated extraction run: generate
// the date range, locate and fetch each day's bulletin, resolve the
// requested sheets, and project them into per-sheet-type record batches.
// Failures local to one date or sheet never abort the remainder of the
// range; only malformed range input is fatal.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"bvrdcli/internal/daterange"
	"bvrdcli/internal/fetch"
	"bvrdcli/internal/transform"
	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

// DefaultThrottle is the politeness pause between successive bulletin
// fetches. Not a correctness requirement.
const DefaultThrottle = 500 * time.Millisecond

// Config holds the run parameters consumed by the pipeline.
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Throttle time.Duration
	Sheets   []domain.SheetType // nil means all known sheet types
}

// SkippedDate records one bulletin that could not be retrieved.
type SkippedDate struct {
	Date       time.Time
	Reason     fetch.UnavailableReason
	StatusCode int
}

// SkippedSheet records one sheet that could not be extracted for a date.
type SkippedSheet struct {
	Date   time.Time
	Sheet  domain.SheetType
	Reason string
}

// Report summarizes what a run skipped, for operational visibility.
type Report struct {
	DatesProcessed int
	DatesSkipped   []SkippedDate
	SheetsSkipped  []SkippedSheet
}

// Result is the outcome of a run: one batch of records per logical sheet
// type, accumulated across the whole date range, plus the skip report.
type Result struct {
	Batches map[domain.SheetType][]domain.Record
	Report  Report
}

// Pipeline wires the locator, fetcher, and projectors into a sequential
// per-date run. Processing is single-threaded: dates one at a time, sheets
// within a date one at a time.
type Pipeline struct {
	locator fetch.Locator
	fetcher *fetch.Fetcher
	limiter *rate.Limiter
	sheets  []domain.SheetType
	logger  *slog.Logger
	metrics *Metrics
}

// New builds a Pipeline from cfg. A nil metrics registers on the default
// prometheus registerer.
func New(cfg Config, logger *slog.Logger, metrics *Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	throttle := cfg.Throttle
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	sheets := cfg.Sheets
	if len(sheets) == 0 {
		sheets = domain.AllSheetTypes()
	}

	return &Pipeline{
		locator: fetch.NewLocator(cfg.BaseURL),
		fetcher: fetch.NewFetcher(cfg.Timeout, logger),
		limiter: rate.NewLimiter(rate.Every(throttle), 1),
		sheets:  sheets,
		logger:  logger,
		metrics: metrics,
	}
}

// Run extracts the requested sheets for every date in [start, end]. The
// returned error is non-nil only for invalid range input; everything else
// degrades to entries in the Result's report.
func (p *Pipeline) Run(ctx context.Context, start, end string) (*Result, error) {
	dates, err := daterange.Generate(start, end)
	if err != nil {
		return nil, err
	}

	p.logger.Info("starting bulletin extraction",
		slog.String("from", start),
		slog.String("to", end),
		slog.Int("dates", len(dates)),
		slog.Int("sheets", len(p.sheets)))

	result := &Result{Batches: make(map[domain.SheetType][]domain.Record)}

	for _, date := range dates {
		if err := p.limiter.Wait(ctx); err != nil {
			return result, err
		}
		if err := p.processDate(ctx, date, result); err != nil {
			return result, err
		}
	}

	p.logger.Info("bulletin extraction finished",
		slog.Int("dates_processed", result.Report.DatesProcessed),
		slog.Int("dates_skipped", len(result.Report.DatesSkipped)),
		slog.Int("sheets_skipped", len(result.Report.SheetsSkipped)))

	return result, nil
}

func (p *Pipeline) processDate(ctx context.Context, date time.Time, result *Result) error {
	dateStr := date.Format(daterange.Layout)

	url, err := p.locator.BulletinURL(date)
	if err != nil {
		// Defensive only; cannot happen for dates produced by Generate.
		p.logger.Error("failed to build bulletin URL",
			slog.String("date", dateStr),
			slog.String("error", err.Error()))
		return err
	}

	doc, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		u, _ := fetch.AsUnavailable(err)
		result.Report.DatesSkipped = append(result.Report.DatesSkipped, SkippedDate{
			Date:       date,
			Reason:     u.Reason,
			StatusCode: u.StatusCode,
		})
		p.metrics.FetchFailures.WithLabelValues(string(u.Reason)).Inc()
		p.logger.Warn("bulletin skipped",
			slog.String("date", dateStr),
			slog.String("reason", string(u.Reason)))
		return nil
	}

	wb, err := workbook.Open(doc.Body)
	if err != nil {
		result.Report.DatesSkipped = append(result.Report.DatesSkipped, SkippedDate{
			Date:   date,
			Reason: fetch.ReasonContentKind,
		})
		p.metrics.FetchFailures.WithLabelValues(string(fetch.ReasonContentKind)).Inc()
		p.logger.Warn("bulletin body is not a readable workbook",
			slog.String("date", dateStr),
			slog.String("error", err.Error()))
		return nil
	}
	defer wb.Close()

	for _, sheet := range p.sheets {
		p.processSheet(wb, sheet, date, result)
	}

	result.Report.DatesProcessed++
	p.metrics.DatesProcessed.Inc()
	return nil
}

func (p *Pipeline) processSheet(wb *workbook.Workbook, sheet domain.SheetType, date time.Time, result *Result) {
	dateStr := date.Format(daterange.Layout)

	projector, ok := transform.ProjectorFor(sheet)
	if !ok {
		p.skipSheet(result, date, sheet, "no projector registered")
		return
	}

	grid, err := wb.ResolveSheet(sheet.RequestedName())
	if err != nil {
		p.skipSheet(result, date, sheet, err.Error())
		return
	}

	records, err := projector.Project(grid, date, p.logger)
	if err != nil {
		// AnchorNotFound or a corrupt sheet; skip the sheet, keep the date.
		p.skipSheet(result, date, sheet, err.Error())
		return
	}

	result.Batches[sheet] = append(result.Batches[sheet], records...)
	p.metrics.RecordsExtracted.WithLabelValues(string(sheet)).Add(float64(len(records)))
	p.logger.Debug("sheet extracted",
		slog.String("date", dateStr),
		slog.String("sheet", string(sheet)),
		slog.Int("records", len(records)))
}

func (p *Pipeline) skipSheet(result *Result, date time.Time, sheet domain.SheetType, reason string) {
	result.Report.SheetsSkipped = append(result.Report.SheetsSkipped, SkippedSheet{
		Date:   date,
		Sheet:  sheet,
		Reason: reason,
	})
	p.metrics.SheetsSkipped.WithLabelValues(string(sheet)).Inc()
	p.logger.Warn("sheet skipped",
		slog.String("date", date.Format(daterange.Layout)),
		slog.String("sheet", string(sheet)),
		slog.String("reason", reason))
}
