package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

var testDate = time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)

func puestoBolsaProjector() FieldProjector {
	p, _ := ProjectorFor(domain.SheetRFVTransPuestoBolsaMP)
	return p.(FieldProjector)
}

func TestFieldProjectorProjectsRows(t *testing.T) {
	g := workbook.NewGrid([][]string{
		{"Boletín Diario BVRD"},
		{"Puesto de Bolsa", "Monto Transado", "Cantidad", "Participación"},
		{"PARVAL", "1,500,000.00", "12", "45.5%"},
		{"CCI", "980,250.75", "8", "29.7%"},
	})

	records, err := puestoBolsaProjector().Project(g, testDate, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, domain.SheetRFVTransPuestoBolsaMP, first.Sheet)
	assert.Equal(t, testDate, first.Date)
	assert.Equal(t, "PARVAL", first.Text("participante"))
	assert.InDelta(t, 1500000.0, first.Number("monto_transado"), 1e-6)
	assert.InDelta(t, 12.0, first.Number("cantidad_operaciones"), 1e-9)
	assert.InDelta(t, 0.455, first.Number("participacion"), 1e-9)
}

func TestFieldProjectorDropsCriticalMisses(t *testing.T) {
	g := workbook.NewGrid([][]string{
		{"Puesto de Bolsa", "Monto Transado"},
		{"PARVAL", "1,000.00"},
		{"", "500.00"},       // missing participante
		{"CCI", ""},          // missing monto_transado
		{"ALPHA", "sin dato"}, // unparseable monto_transado degrades to invalid
		{"UC", "250.00"},
	})

	records, err := puestoBolsaProjector().Project(g, testDate, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "PARVAL", records[0].Text("participante"))
	assert.Equal(t, "UC", records[1].Text("participante"))
}

func TestFieldProjectorSkipsEmptyRows(t *testing.T) {
	g := workbook.NewGrid([][]string{
		{"Puesto de Bolsa"},
		{"", "", "", ""},
		{},
		{"PARVAL", "100.00"},
	})

	records, err := puestoBolsaProjector().Project(g, testDate, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestFieldProjectorAnchorNotFound(t *testing.T) {
	g := workbook.NewGrid([][]string{
		{"hoja sin encabezado reconocible"},
		{"PARVAL", "100.00"},
	})

	_, err := puestoBolsaProjector().Project(g, testDate, nil)
	require.Error(t, err)

	var notFound *workbook.AnchorNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestFieldProjectorWithoutAnchorUsesWholeGrid(t *testing.T) {
	p := FieldProjector{
		Sheet: domain.SheetRFVTransPuestoBolsaMP,
		Columns: []Column{
			{Index: 0, Name: "participante", Type: domain.FieldText, Critical: true},
		},
	}
	g := workbook.NewGrid([][]string{{"PARVAL"}, {"CCI"}})

	records, err := p.Project(g, testDate, nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// operDiaRow builds a row with the published 18-column shape: raw column 5
// carries no data, the dated and monetary fields sit one position to the
// right of it.
func operDiaRow(numero, precio, valor string) []string {
	return []string{
		numero, "RF", "BPD01", "DO1234567890", "BPD", "",
		"15-08-2027", "Semestral", "10.50%", "1,000.00", "5,000,000.00",
		precio, valor, "11.20%", "dop", "4,937,500.00", "16-06-2025", "794",
	}
}

func operDiaTotalsRow(valor string) []string {
	row := make([]string, 18)
	row[0] = "Total General"
	row[12] = valor
	return row
}

func TestOperDiaProjection(t *testing.T) {
	p, ok := ProjectorFor(domain.SheetRFMPOperDia)
	require.True(t, ok)

	g := workbook.NewGrid([][]string{
		{"BOLSA DE VALORES DE LA REPÚBLICA DOMINICANA"},
		{"Número Operación", "Rueda", "Cod Local", "ISIN", "Emisor", "", "Venc", "Frec", "Cupón", "Nominal", "Negociado", "Precio", "Transado", "Rend", "Mon", "Equiv DOP", "Liq", "Días"},
		operDiaRow("20250613-001", "99.50", "1,000.00"),
		operDiaTotalsRow("1,000.00"),
	})

	records, err := p.Project(g, testDate, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "20250613-001", r.Text("numero_operacion"))
	assert.InDelta(t, 0.105, r.Number("tasa_cupon"), 1e-9)
	assert.InDelta(t, 99.50, r.Number("precio"), 1e-9)
	assert.InDelta(t, 1000.0, r.Number("valor_transado"), 1e-6)
	assert.InDelta(t, 0.112, r.Number("rend_equiv"), 1e-9)
	assert.InDelta(t, 4937500.0, r.Number("equiv_en_dop"), 1e-6)
	assert.Equal(t, "DOP", r.Text("mon"), "currency is uppercased")

	venc := r.Field("fecha_venc")
	assert.True(t, venc.Valid)
	assert.Equal(t, time.Date(2027, 8, 15, 0, 0, 0, 0, time.UTC), venc.Date)
	liq := r.Field("fecha_liq")
	assert.True(t, liq.Valid)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), liq.Date)
	assert.InDelta(t, 794.0, r.Number("dias_venc"), 1e-9)
}

func TestOperDiaTrailingTotalsRowDropped(t *testing.T) {
	p, ok := ProjectorFor(domain.SheetRFMPOperDiaFirme)
	require.True(t, ok)

	// The totals row carries text in column 0 and an amount in the
	// valor position, so only the trailing trim keeps it out.
	g := workbook.NewGrid([][]string{
		{"Número Operación", "Rueda"},
		operDiaRow("20250613-001", "99.50", "1,000.00"),
		operDiaRow("20250613-002", "101.25", "2,500.00"),
		operDiaTotalsRow("3,500.00"),
	})

	records, err := p.Project(g, testDate, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "20250613-001", records[0].Text("numero_operacion"))
	assert.Equal(t, "20250613-002", records[1].Text("numero_operacion"))
	for _, r := range records {
		assert.NotEqual(t, "Total General", r.Text("numero_operacion"))
	}
}

func TestOperDiaSectionOnlyTotalsRow(t *testing.T) {
	p, ok := ProjectorFor(domain.SheetRFMPOperDia)
	require.True(t, ok)

	g := workbook.NewGrid([][]string{
		{"Número Operación", "Rueda"},
		operDiaTotalsRow("0.00"),
	})

	records, err := p.Project(g, testDate, nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
