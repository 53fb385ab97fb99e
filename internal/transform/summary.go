package transform

import (
	"log/slog"
	"strings"
	"time"

	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

const (
	// summaryAnchorPattern marks the start of the daily-operations block in
	// the ResumenGeneralMercado sheet.
	summaryAnchorPattern = "Operaciones del Día"

	// summaryLabelColumn holds the market names inside that block.
	summaryLabelColumn = 2

	// summaryLookahead bounds the scan below the anchor.
	summaryLookahead = 20
)

// Measure column positions within a matched market row.
const (
	colUSD         = 3
	colUSDEquivDOP = 5
	colDOP         = 6
	colTotalDOP    = 7
)

// measures are the four monetary amounts of one market row.
type measures struct {
	usd         float64
	usdEquivDOP float64
	dop         float64
	totalDOP    float64
}

// marketCategory classifies a row label against the textual variants seen in
// real bulletins; exact spacing and case are not reliable in the source.
type marketCategory struct {
	name     string
	patterns []string
	assign   func(*domain.MarketSummary, measures)
}

// marketCategories is the classification table, in fixed priority order.
// The first matching category wins for a given row.
var marketCategories = []marketCategory{
	{
		name:     "mdo_secundario_rf",
		patterns: []string{"Mdo. Secundario RF", "Secundario RF", "MDO SECUNDARIO RF"},
		assign: func(m *domain.MarketSummary, v measures) {
			m.MdoSecundarioRFUSD = v.usd
			m.MdoSecundarioRFUSDEquivDOP = v.usdEquivDOP
			m.MdoSecundarioRFDOP = v.dop
			m.MdoSecundarioRFTotalDOP = v.totalDOP
		},
	},
	{
		name:     "mdo_primario_rf",
		patterns: []string{"Mdo. Primario RF", "Primario RF", "MDO PRIMARIO RF"},
		assign: func(m *domain.MarketSummary, v measures) {
			m.MdoPrimarioRFUSD = v.usd
			m.MdoPrimarioRFUSDEquivDOP = v.usdEquivDOP
			m.MdoPrimarioRFDOP = v.dop
			m.MdoPrimarioRFTotalDOP = v.totalDOP
		},
	},
	{
		name:     "mdo_secundario_rv",
		patterns: []string{"Mdo. Secundario RV", "Secundario RV", "MDO SECUNDARIO RV"},
		assign: func(m *domain.MarketSummary, v measures) {
			m.MdoSecundarioRVUSD = v.usd
			m.MdoSecundarioRVUSDEquivDOP = v.usdEquivDOP
			m.MdoSecundarioRVDOP = v.dop
			m.MdoSecundarioRVTotalDOP = v.totalDOP
		},
	},
	{
		name:     "mdo_primario_rv",
		patterns: []string{"Mdo. Primario RV", "Primario RV", "MDO PRIMARIO RV"},
		assign: func(m *domain.MarketSummary, v measures) {
			m.MdoPrimarioRVUSD = v.usd
			m.MdoPrimarioRVUSDEquivDOP = v.usdEquivDOP
			m.MdoPrimarioRVDOP = v.dop
			m.MdoPrimarioRVTotalDOP = v.totalDOP
		},
	},
}

func (c marketCategory) matches(label string) bool {
	lower := strings.ToLower(label)
	for _, p := range c.patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// AggregateMarketSummary extracts the consolidated daily metrics from a
// ResumenGeneralMercado grid. One record is always emitted per date: when
// the anchor is missing, or a market never appears inside the lookahead
// window, the affected fields keep their zero defaults. A market matched
// more than once keeps the last match (the source document occasionally
// repeats section headers; last write wins until the data owner confirms a
// stronger invariant).
func AggregateMarketSummary(g workbook.Grid, date time.Time, logger *slog.Logger) domain.MarketSummary {
	if logger == nil {
		logger = slog.Default()
	}
	summary := domain.MarketSummary{Fecha: date}

	anchorRow, found := findSummaryAnchor(g)
	if !found {
		logger.Warn("daily operations anchor not found, emitting zeroed summary",
			slog.String("date", date.Format("2006-01-02")))
		return summary
	}

	end := anchorRow + 1 + summaryLookahead
	if end > g.RowCount() {
		end = g.RowCount()
	}

	matched := 0
	for row := anchorRow + 1; row < end; row++ {
		label := g.AsText(row, summaryLabelColumn)
		if label == "" {
			continue
		}
		for _, cat := range marketCategories {
			if !cat.matches(label) {
				continue
			}
			cat.assign(&summary, measures{
				usd:         g.AsNumber(row, colUSD),
				usdEquivDOP: g.AsNumber(row, colUSDEquivDOP),
				dop:         g.AsNumber(row, colDOP),
				totalDOP:    g.AsNumber(row, colTotalDOP),
			})
			matched++
			logger.Debug("market row classified",
				slog.String("date", date.Format("2006-01-02")),
				slog.Int("row", row),
				slog.String("category", cat.name))
			break
		}
	}

	logger.Debug("market summary aggregated",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("rows_matched", matched))
	return summary
}

// findSummaryAnchor scans every column: the anchor cell drifts between
// columns across bulletin revisions.
func findSummaryAnchor(g workbook.Grid) (int, bool) {
	pattern := strings.ToLower(summaryAnchorPattern)
	for row := 0; row < g.RowCount(); row++ {
		for col := range g.Row(row) {
			if strings.Contains(strings.ToLower(g.AsText(row, col)), pattern) {
				return row, true
			}
		}
	}
	return -1, false
}

// summaryProjector adapts AggregateMarketSummary to the SectionProjector
// interface used by the registry.
type summaryProjector struct{}

func (summaryProjector) SheetType() domain.SheetType {
	return domain.SheetResumenGeneralMercado
}

func (summaryProjector) Project(g workbook.Grid, date time.Time, logger *slog.Logger) ([]domain.Record, error) {
	return []domain.Record{AggregateMarketSummary(g, date, logger).Record()}, nil
}
