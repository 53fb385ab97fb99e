// Package fetch builds per-date bulletin URLs and retrieves the binary
// documents behind them. Retrieval failures are reported as Unavailable
// values so a missing publication (a market holiday, say) never halts the
// rest of a date range.
package fetch

import (
	"fmt"
	"time"
)

// DefaultBaseURL is the publisher's bulletin origin.
const DefaultBaseURL = "https://boletin.bvrd.com.do"

// spanishMonths maps time.Month (1-based) to the localized names the
// publisher embeds in the bulletin path.
var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Locator derives the fully qualified bulletin URL for a calendar date.
// The path contract is fixed by the publisher:
//
//	{base}/BOLETINES+Y+PRECIOS+{year}/Boletin+Consolidado/{m}.+{MonthName}/{dd}-{mm}-{year}-Boletin+BVRD+Consolidado+excel.xlsx
//
// with an unpadded month number before the month name and zero-padded day
// and month in the file name.
type Locator struct {
	BaseURL string
}

// NewLocator returns a Locator for the given origin, defaulting to the
// production publisher when empty.
func NewLocator(baseURL string) Locator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Locator{BaseURL: baseURL}
}

// BulletinURL returns the bulletin URL for date. The month bound check
// cannot fire for a real time.Time but guards against zero values.
func (l Locator) BulletinURL(date time.Time) (string, error) {
	month := int(date.Month())
	if month < 1 || month > 12 {
		return "", fmt.Errorf("unknown month %d for date %s", month, date.Format("2006-01-02"))
	}

	return fmt.Sprintf(
		"%s/BOLETINES+Y+PRECIOS+%d/Boletin+Consolidado/%d.+%s/%02d-%02d-%d-Boletin+BVRD+Consolidado+excel.xlsx",
		l.BaseURL,
		date.Year(),
		month,
		spanishMonths[month-1],
		date.Day(),
		month,
		date.Year(),
	), nil
}
