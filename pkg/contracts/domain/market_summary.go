package domain

import (
	"time"
)

// MarketSummary is the consolidated daily-metrics record extracted from the
// "Operaciones del Día" block of the ResumenGeneralMercado sheet: one row per
// bulletin date, sixteen monetary measures across the four BVRD markets
// (secondary/primary fixed income, secondary/primary equity). Markets absent
// from the bulletin keep their zero defaults.
type MarketSummary struct {
	Fecha time.Time `json:"fecha" db:"fecha" validate:"required"`

	MdoSecundarioRFUSD         float64 `json:"mdo_secundario_rf_usd" db:"mdo_secundario_rf_usd"`
	MdoSecundarioRFUSDEquivDOP float64 `json:"mdo_secundario_rf_usd_equiv_dop" db:"mdo_secundario_rf_usd_equiv_dop"`
	MdoSecundarioRFDOP         float64 `json:"mdo_secundario_rf_dop" db:"mdo_secundario_rf_dop"`
	MdoSecundarioRFTotalDOP    float64 `json:"mdo_secundario_rf_total_dop" db:"mdo_secundario_rf_total_dop"`

	MdoPrimarioRFUSD         float64 `json:"mdo_primario_rf_usd" db:"mdo_primario_rf_usd"`
	MdoPrimarioRFUSDEquivDOP float64 `json:"mdo_primario_rf_usd_equiv_dop" db:"mdo_primario_rf_usd_equiv_dop"`
	MdoPrimarioRFDOP         float64 `json:"mdo_primario_rf_dop" db:"mdo_primario_rf_dop"`
	MdoPrimarioRFTotalDOP    float64 `json:"mdo_primario_rf_total_dop" db:"mdo_primario_rf_total_dop"`

	MdoSecundarioRVUSD         float64 `json:"mdo_secundario_rv_usd" db:"mdo_secundario_rv_usd"`
	MdoSecundarioRVUSDEquivDOP float64 `json:"mdo_secundario_rv_usd_equiv_dop" db:"mdo_secundario_rv_usd_equiv_dop"`
	MdoSecundarioRVDOP         float64 `json:"mdo_secundario_rv_dop" db:"mdo_secundario_rv_dop"`
	MdoSecundarioRVTotalDOP    float64 `json:"mdo_secundario_rv_total_dop" db:"mdo_secundario_rv_total_dop"`

	MdoPrimarioRVUSD         float64 `json:"mdo_primario_rv_usd" db:"mdo_primario_rv_usd"`
	MdoPrimarioRVUSDEquivDOP float64 `json:"mdo_primario_rv_usd_equiv_dop" db:"mdo_primario_rv_usd_equiv_dop"`
	MdoPrimarioRVDOP         float64 `json:"mdo_primario_rv_dop" db:"mdo_primario_rv_dop"`
	MdoPrimarioRVTotalDOP    float64 `json:"mdo_primario_rv_total_dop" db:"mdo_primario_rv_total_dop"`
}

// TotalUSD sums the four per-market USD amounts.
func (m MarketSummary) TotalUSD() float64 {
	return m.MdoSecundarioRFUSD + m.MdoPrimarioRFUSD + m.MdoSecundarioRVUSD + m.MdoPrimarioRVUSD
}

// TotalDOP sums the four per-market total DOP amounts.
func (m MarketSummary) TotalDOP() float64 {
	return m.MdoSecundarioRFTotalDOP + m.MdoPrimarioRFTotalDOP + m.MdoSecundarioRVTotalDOP + m.MdoPrimarioRVTotalDOP
}

// Record flattens the summary into the generic Record shape handed to the
// persistence layer.
func (m MarketSummary) Record() Record {
	num := func(v float64) Value { return NumberValue(FieldNumeric, v, true) }
	return Record{
		Sheet: SheetResumenGeneralMercado,
		Date:  m.Fecha,
		Fields: map[string]Value{
			"mdo_secundario_rf_usd":           num(m.MdoSecundarioRFUSD),
			"mdo_secundario_rf_usd_equiv_dop": num(m.MdoSecundarioRFUSDEquivDOP),
			"mdo_secundario_rf_dop":           num(m.MdoSecundarioRFDOP),
			"mdo_secundario_rf_total_dop":     num(m.MdoSecundarioRFTotalDOP),
			"mdo_primario_rf_usd":             num(m.MdoPrimarioRFUSD),
			"mdo_primario_rf_usd_equiv_dop":   num(m.MdoPrimarioRFUSDEquivDOP),
			"mdo_primario_rf_dop":             num(m.MdoPrimarioRFDOP),
			"mdo_primario_rf_total_dop":       num(m.MdoPrimarioRFTotalDOP),
			"mdo_secundario_rv_usd":           num(m.MdoSecundarioRVUSD),
			"mdo_secundario_rv_usd_equiv_dop": num(m.MdoSecundarioRVUSDEquivDOP),
			"mdo_secundario_rv_dop":           num(m.MdoSecundarioRVDOP),
			"mdo_secundario_rv_total_dop":     num(m.MdoSecundarioRVTotalDOP),
			"mdo_primario_rv_usd":             num(m.MdoPrimarioRVUSD),
			"mdo_primario_rv_usd_equiv_dop":   num(m.MdoPrimarioRVUSDEquivDOP),
			"mdo_primario_rv_dop":             num(m.MdoPrimarioRVDOP),
			"mdo_primario_rv_total_dop":       num(m.MdoPrimarioRVTotalDOP),
		},
	}
}

// SummaryFromRecord rebuilds a MarketSummary from its flattened Record form.
func SummaryFromRecord(r Record) MarketSummary {
	return MarketSummary{
		Fecha:                      r.Date,
		MdoSecundarioRFUSD:         r.Number("mdo_secundario_rf_usd"),
		MdoSecundarioRFUSDEquivDOP: r.Number("mdo_secundario_rf_usd_equiv_dop"),
		MdoSecundarioRFDOP:         r.Number("mdo_secundario_rf_dop"),
		MdoSecundarioRFTotalDOP:    r.Number("mdo_secundario_rf_total_dop"),
		MdoPrimarioRFUSD:           r.Number("mdo_primario_rf_usd"),
		MdoPrimarioRFUSDEquivDOP:   r.Number("mdo_primario_rf_usd_equiv_dop"),
		MdoPrimarioRFDOP:           r.Number("mdo_primario_rf_dop"),
		MdoPrimarioRFTotalDOP:      r.Number("mdo_primario_rf_total_dop"),
		MdoSecundarioRVUSD:         r.Number("mdo_secundario_rv_usd"),
		MdoSecundarioRVUSDEquivDOP: r.Number("mdo_secundario_rv_usd_equiv_dop"),
		MdoSecundarioRVDOP:         r.Number("mdo_secundario_rv_dop"),
		MdoSecundarioRVTotalDOP:    r.Number("mdo_secundario_rv_total_dop"),
		MdoPrimarioRVUSD:           r.Number("mdo_primario_rv_usd"),
		MdoPrimarioRVUSDEquivDOP:   r.Number("mdo_primario_rv_usd_equiv_dop"),
		MdoPrimarioRVDOP:           r.Number("mdo_primario_rv_dop"),
		MdoPrimarioRVTotalDOP:      r.Number("mdo_primario_rv_total_dop"),
	}
}
