package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

// resumenGrid builds a ResumenGeneralMercado-shaped grid: preamble rows,
// the daily-operations anchor, then market rows with the label in column 2
// and measures in columns 3, 5, 6, 7.
func resumenGrid(marketRows [][]string) workbook.Grid {
	rows := [][]string{
		{"BOLSA DE VALORES DE LA REPÚBLICA DOMINICANA"},
		{"", "", "Resumen General del Mercado"},
		{"", "", "Operaciones del Día", "", "", "", "", ""},
	}
	return workbook.NewGrid(append(rows, marketRows...))
}

func TestAggregateMarketSummaryClassification(t *testing.T) {
	g := resumenGrid([][]string{
		{"", "", "Mdo. Secundario RF - Bonos", "1,000.00", "", "56,000.00", "2,500.00", "58,500.00"},
		{"", "", "Mdo. Primario RF", "200.00", "", "11,200.00", "800.00", "12,000.00"},
		{"", "", "Mdo. Secundario RV", "0", "", "0", "350.00", "350.00"},
		{"", "", "fila sin clasificar", "9,999.00", "", "9,999.00", "9,999.00", "9,999.00"},
		{"", "", "Mdo. Primario RV", "50.00", "", "2,800.00", "100.00", "2,900.00"},
	})

	m := AggregateMarketSummary(g, testDate, nil)

	assert.Equal(t, testDate, m.Fecha)
	// Trailing text after the category pattern must not affect classification.
	assert.InDelta(t, 1000.0, m.MdoSecundarioRFUSD, 1e-9)
	assert.InDelta(t, 56000.0, m.MdoSecundarioRFUSDEquivDOP, 1e-9)
	assert.InDelta(t, 2500.0, m.MdoSecundarioRFDOP, 1e-9)
	assert.InDelta(t, 58500.0, m.MdoSecundarioRFTotalDOP, 1e-9)

	assert.InDelta(t, 200.0, m.MdoPrimarioRFUSD, 1e-9)
	assert.InDelta(t, 350.0, m.MdoSecundarioRVTotalDOP, 1e-9)
	assert.InDelta(t, 2900.0, m.MdoPrimarioRVTotalDOP, 1e-9)
}

func TestAggregateMarketSummaryZeroDefaults(t *testing.T) {
	// Only one market present; the other twelve fields stay zero.
	g := resumenGrid([][]string{
		{"", "", "Mdo. Primario RF", "200.00", "", "11,200.00", "800.00", "12,000.00"},
	})

	m := AggregateMarketSummary(g, testDate, nil)
	assert.InDelta(t, 12000.0, m.MdoPrimarioRFTotalDOP, 1e-9)
	assert.Zero(t, m.MdoSecundarioRFUSD)
	assert.Zero(t, m.MdoSecundarioRVTotalDOP)
	assert.Zero(t, m.MdoPrimarioRVUSD)
}

func TestAggregateMarketSummaryAnchorMissing(t *testing.T) {
	g := workbook.NewGrid([][]string{
		{"hoja sin bloque de operaciones"},
		{"", "", "Mdo. Primario RF", "200.00", "", "1.00", "2.00", "3.00"},
	})

	// Record still emitted, all sixteen fields at their defaults.
	m := AggregateMarketSummary(g, testDate, nil)
	assert.Equal(t, testDate, m.Fecha)
	assert.Zero(t, m.TotalUSD())
	assert.Zero(t, m.TotalDOP())
}

func TestAggregateMarketSummaryLastWriteWins(t *testing.T) {
	g := resumenGrid([][]string{
		{"", "", "Mdo. Secundario RF", "100.00", "", "1.00", "2.00", "3.00"},
		{"", "", "Mdo. Secundario RF", "900.00", "", "9.00", "8.00", "7.00"},
	})

	m := AggregateMarketSummary(g, testDate, nil)
	assert.InDelta(t, 900.0, m.MdoSecundarioRFUSD, 1e-9)
	assert.InDelta(t, 7.0, m.MdoSecundarioRFTotalDOP, 1e-9)
}

func TestAggregateMarketSummaryLookaheadWindow(t *testing.T) {
	// A market row past the 20-row window must not be picked up.
	var marketRows [][]string
	for i := 0; i < summaryLookahead; i++ {
		marketRows = append(marketRows, []string{"", "", "relleno"})
	}
	marketRows = append(marketRows,
		[]string{"", "", "Mdo. Primario RV", "77.00", "", "1.00", "2.00", "3.00"})

	m := AggregateMarketSummary(resumenGrid(marketRows), testDate, nil)
	assert.Zero(t, m.MdoPrimarioRVUSD)
}

func TestAggregateMarketSummaryTolerantNumbers(t *testing.T) {
	g := resumenGrid([][]string{
		{"", "", "MDO SECUNDARIO RF", "1,234.50", "", "N/A", "", "(500)"},
	})

	m := AggregateMarketSummary(g, testDate, nil)
	assert.InDelta(t, 1234.50, m.MdoSecundarioRFUSD, 1e-9)
	assert.Zero(t, m.MdoSecundarioRFUSDEquivDOP)
	assert.Zero(t, m.MdoSecundarioRFDOP)
	assert.InDelta(t, -500.0, m.MdoSecundarioRFTotalDOP, 1e-9)
}

func TestSummaryRoundTrip(t *testing.T) {
	g := resumenGrid([][]string{
		{"", "", "Mdo. Secundario RF", "10.00", "", "560.00", "25.00", "585.00"},
		{"", "", "Mdo. Primario RV", "5.00", "", "280.00", "10.00", "290.00"},
	})

	m := AggregateMarketSummary(g, testDate, nil)

	// The summed per-category totals equal the sum of the raw matched totals.
	assert.InDelta(t, 585.0+290.0, m.TotalDOP(), 1e-9)
	assert.InDelta(t, 15.0, m.TotalUSD(), 1e-9)

	// Flattening to a Record and back preserves every field.
	rebuilt := domain.SummaryFromRecord(m.Record())
	assert.Equal(t, m, rebuilt)
}

func TestSummaryProjectorEmitsSingleRecord(t *testing.T) {
	p, ok := ProjectorFor(domain.SheetResumenGeneralMercado)
	require.True(t, ok)
	assert.Equal(t, domain.SheetResumenGeneralMercado, p.SheetType())

	g := resumenGrid([][]string{
		{"", "", "Mdo. Primario RF", "200.00", "", "11,200.00", "800.00", "12,000.00"},
	})

	date := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	records, err := p.Project(g, date, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, date, records[0].Date)
	assert.InDelta(t, 12000.0, records[0].Number("mdo_primario_rf_total_dop"), 1e-9)
}
