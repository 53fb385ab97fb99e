// Package transform projects sliced bulletin sections into normalized, typed
// records: positional field projection for the operation sheets and the
// market-category aggregation for the consolidated daily summary.
package transform

import (
	"strings"
	"time"

	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

// dateLayouts are tried in order for best-effort date coercion. Bulletins
// mix day-first forms with ISO dates depending on the sheet.
var dateLayouts = []string{
	"02-01-2006",
	"2006-01-02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01-02-06",
}

// coerceValue converts raw cell text to the target field type. Failures
// degrade: numerics to zero, dates to an absent value, never an error. The
// bool reports whether the cell held text that could not be coerced, so the
// caller can log it as a data-quality signal.
func coerceValue(t domain.FieldType, raw string) (domain.Value, bool) {
	trimmed := strings.TrimSpace(raw)

	switch t {
	case domain.FieldNumeric:
		n, ok := parseNumeric(trimmed)
		return domain.NumberValue(t, n, ok && trimmed != ""), !ok

	case domain.FieldPercent:
		n, ok := parseNumeric(trimmed)
		return domain.NumberValue(t, n/100, ok && trimmed != ""), !ok

	case domain.FieldDate:
		if trimmed == "" {
			return domain.DateValue(time.Time{}, false), false
		}
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, trimmed); err == nil {
				return domain.DateValue(d, true), false
			}
		}
		return domain.DateValue(time.Time{}, false), true

	case domain.FieldCategorical:
		return domain.TextValue(t, strings.ToUpper(trimmed)), false

	default:
		return domain.TextValue(domain.FieldText, trimmed), false
	}
}

// parseNumeric extends the grid number parser with the percent and unit
// suffixes the transformers strip before conversion.
func parseNumeric(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(s, "%", "")
	cleaned = strings.ReplaceAll(cleaned, "días", "")
	cleaned = strings.ReplaceAll(cleaned, "Días", "")
	return workbook.ParseNumber(strings.TrimSpace(cleaned))
}
