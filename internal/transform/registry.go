package transform

import (
	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

// operDiaColumns is the positional layout shared by the primary-market
// operation sheets (spot and firm). Raw column 5 carries no data in the
// published sheet and is skipped.
var operDiaColumns = []Column{
	{Index: 0, Name: "numero_operacion", Type: domain.FieldText, Critical: true},
	{Index: 1, Name: "rueda", Type: domain.FieldText},
	{Index: 2, Name: "cod_local", Type: domain.FieldText},
	{Index: 3, Name: "cod_isin", Type: domain.FieldText},
	{Index: 4, Name: "cod_emisor", Type: domain.FieldText},
	{Index: 6, Name: "fecha_venc", Type: domain.FieldDate},
	{Index: 7, Name: "frec_pago", Type: domain.FieldText},
	{Index: 8, Name: "tasa_cupon", Type: domain.FieldPercent},
	{Index: 9, Name: "nom_unit", Type: domain.FieldNumeric},
	{Index: 10, Name: "valor_negociado", Type: domain.FieldNumeric},
	{Index: 11, Name: "precio", Type: domain.FieldNumeric},
	{Index: 12, Name: "valor_transado", Type: domain.FieldNumeric, Critical: true},
	{Index: 13, Name: "rend_equiv", Type: domain.FieldPercent},
	{Index: 14, Name: "mon", Type: domain.FieldCategorical},
	{Index: 15, Name: "equiv_en_dop", Type: domain.FieldNumeric},
	{Index: 16, Name: "fecha_liq", Type: domain.FieldDate},
	{Index: 17, Name: "dias_venc", Type: domain.FieldNumeric},
}

// registry is the static mapping from logical sheet type to its projector.
// A closed, compile-time table: the supported sheet set is small and known,
// so dynamic dispatch by sheet name adds risk without benefit.
var registry = map[domain.SheetType]SectionProjector{
	domain.SheetResumenGeneralMercado: summaryProjector{},

	domain.SheetRFMPOperDia: FieldProjector{
		Sheet:        domain.SheetRFMPOperDia,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Número Operación", Occurrence: 1},
		TrimTrailing: 1, // sheet always ends in a totals row
		Columns:      operDiaColumns,
	},

	domain.SheetRFMPOperDiaFirme: FieldProjector{
		Sheet:        domain.SheetRFMPOperDiaFirme,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Número Operación", Occurrence: 1},
		TrimTrailing: 1,
		Columns:      operDiaColumns,
	},

	domain.SheetRFMSOperDia: FieldProjector{
		Sheet:        domain.SheetRFMSOperDia,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Emisor", Occurrence: 1},
		Columns: []Column{
			{Index: 0, Name: "emisor", Type: domain.FieldText, Critical: true},
			{Index: 1, Name: "codigo", Type: domain.FieldText, Critical: true},
			{Index: 2, Name: "instrumento", Type: domain.FieldText},
			{Index: 3, Name: "fecha_emision", Type: domain.FieldDate},
			{Index: 4, Name: "fecha_vencimiento", Type: domain.FieldDate},
			{Index: 5, Name: "moneda", Type: domain.FieldCategorical},
			{Index: 6, Name: "valor_nominal", Type: domain.FieldNumeric},
			{Index: 7, Name: "tasa_interes", Type: domain.FieldPercent},
			{Index: 8, Name: "precio", Type: domain.FieldNumeric},
			{Index: 9, Name: "rendimiento", Type: domain.FieldPercent},
			{Index: 10, Name: "valor_transado", Type: domain.FieldNumeric, Critical: true},
			{Index: 11, Name: "cantidad_operaciones", Type: domain.FieldNumeric},
			{Index: 12, Name: "tipo_operacion", Type: domain.FieldCategorical, Critical: true},
			{Index: 13, Name: "modalidad", Type: domain.FieldCategorical, Critical: true},
		},
	},

	domain.SheetRFMSOperPlazos: FieldProjector{
		Sheet:        domain.SheetRFMSOperPlazos,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Emisor", Occurrence: 1},
		Columns: []Column{
			{Index: 0, Name: "emisor", Type: domain.FieldText, Critical: true},
			{Index: 1, Name: "codigo", Type: domain.FieldText, Critical: true},
			{Index: 2, Name: "instrumento", Type: domain.FieldText},
			{Index: 3, Name: "fecha_emision", Type: domain.FieldDate},
			{Index: 4, Name: "fecha_vencimiento", Type: domain.FieldDate},
			{Index: 5, Name: "moneda", Type: domain.FieldCategorical},
			{Index: 6, Name: "valor_nominal", Type: domain.FieldNumeric},
			{Index: 7, Name: "tasa_interes", Type: domain.FieldPercent},
			{Index: 8, Name: "precio", Type: domain.FieldNumeric},
			{Index: 9, Name: "rendimiento", Type: domain.FieldPercent},
			{Index: 10, Name: "valor_transado", Type: domain.FieldNumeric, Critical: true},
			{Index: 11, Name: "cantidad_operaciones", Type: domain.FieldNumeric},
			{Index: 12, Name: "plazo", Type: domain.FieldNumeric, Critical: true},
			{Index: 13, Name: "fecha_inicio", Type: domain.FieldDate},
			{Index: 14, Name: "fecha_termino", Type: domain.FieldDate},
			{Index: 15, Name: "modalidad", Type: domain.FieldCategorical, Critical: true},
		},
	},

	domain.SheetRFVTransPuestoBolsaMP: FieldProjector{
		Sheet:        domain.SheetRFVTransPuestoBolsaMP,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Puesto de Bolsa", Occurrence: 1},
		Columns: []Column{
			{Index: 0, Name: "participante", Type: domain.FieldText, Critical: true},
			{Index: 1, Name: "monto_transado", Type: domain.FieldNumeric, Critical: true},
			{Index: 2, Name: "cantidad_operaciones", Type: domain.FieldNumeric},
			{Index: 3, Name: "participacion", Type: domain.FieldPercent},
		},
	},

	domain.SheetRentaFijaOperacionesFuturasA: FieldProjector{
		Sheet:        domain.SheetRentaFijaOperacionesFuturasA,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Emisor", Occurrence: 1},
		Columns: []Column{
			{Index: 0, Name: "emisor", Type: domain.FieldText, Critical: true},
			{Index: 1, Name: "codigo", Type: domain.FieldText, Critical: true},
			{Index: 2, Name: "instrumento", Type: domain.FieldText},
			{Index: 3, Name: "fecha_emision", Type: domain.FieldDate},
			{Index: 4, Name: "fecha_vencimiento", Type: domain.FieldDate},
			{Index: 5, Name: "moneda", Type: domain.FieldCategorical},
			{Index: 6, Name: "valor_nominal", Type: domain.FieldNumeric},
			{Index: 7, Name: "tasa_interes", Type: domain.FieldPercent},
			{Index: 8, Name: "fecha_operacion", Type: domain.FieldDate, Critical: true},
			{Index: 9, Name: "fecha_liquidacion", Type: domain.FieldDate, Critical: true},
			{Index: 10, Name: "precio", Type: domain.FieldNumeric},
			{Index: 11, Name: "rendimiento", Type: domain.FieldPercent},
			{Index: 12, Name: "valor_transado", Type: domain.FieldNumeric, Critical: true},
			{Index: 13, Name: "cantidad_operaciones", Type: domain.FieldNumeric},
		},
	},

	domain.SheetRFEmisionesCorpV: FieldProjector{
		Sheet:        domain.SheetRFEmisionesCorpV,
		AnchorColumn: 0,
		StartAnchor:  workbook.Anchor{Pattern: "Emisor", Occurrence: 1},
		Columns: []Column{
			{Index: 0, Name: "emisor", Type: domain.FieldText, Critical: true},
			{Index: 1, Name: "codigo", Type: domain.FieldText, Critical: true},
			{Index: 2, Name: "instrumento", Type: domain.FieldText},
			{Index: 3, Name: "fecha_emision", Type: domain.FieldDate},
			{Index: 4, Name: "fecha_vencimiento", Type: domain.FieldDate},
			{Index: 5, Name: "moneda", Type: domain.FieldCategorical},
			{Index: 6, Name: "valor_nominal", Type: domain.FieldNumeric},
			{Index: 7, Name: "tasa_interes", Type: domain.FieldPercent},
			{Index: 8, Name: "precio", Type: domain.FieldNumeric},
			{Index: 9, Name: "rendimiento", Type: domain.FieldPercent},
			{Index: 10, Name: "valor_transado", Type: domain.FieldNumeric, Critical: true},
			{Index: 11, Name: "cantidad_operaciones", Type: domain.FieldNumeric},
			{Index: 12, Name: "sector", Type: domain.FieldCategorical, Critical: true},
			{Index: 13, Name: "calificacion", Type: domain.FieldCategorical, Critical: true},
			{Index: 14, Name: "garantia", Type: domain.FieldCategorical},
		},
	},
}

// ProjectorFor returns the projector registered for the given sheet type.
func ProjectorFor(t domain.SheetType) (SectionProjector, bool) {
	p, ok := registry[t]
	return p, ok
}

// ColumnsFor returns the positional layout of a sheet backed by a field
// projector. The market summary sheet has no positional layout.
func ColumnsFor(t domain.SheetType) ([]Column, bool) {
	fp, ok := registry[t].(FieldProjector)
	if !ok {
		return nil, false
	}
	return fp.Columns, true
}
