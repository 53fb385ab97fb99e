package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the operational outcomes of a run so skipped work is
// auditable rather than silently dropped.
type Metrics struct {
	DatesProcessed   prometheus.Counter
	FetchFailures    *prometheus.CounterVec
	SheetsSkipped    *prometheus.CounterVec
	RecordsExtracted *prometheus.CounterVec
}

// NewMetrics registers the pipeline counters on reg. Pass a fresh registry
// in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		DatesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "bvrd_dates_processed_total",
			Help: "Bulletin dates fetched and extracted successfully.",
		}),
		FetchFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bvrd_fetch_failures_total",
			Help: "Bulletin downloads skipped, by failure reason.",
		}, []string{"reason"}),
		SheetsSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bvrd_sheets_skipped_total",
			Help: "Sheets skipped during extraction, by sheet type.",
		}, []string{"sheet"}),
		RecordsExtracted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bvrd_records_extracted_total",
			Help: "Normalized records extracted, by sheet type.",
		}, []string{"sheet"}),
	}
}
