package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bvrdcli/pkg/contracts/domain"
)

const summaryTable = "resumen_general_mercado"

// summaryColumns is the insert order of the sixteen measure columns. The
// names match the Record field names so values can be pulled by name.
var summaryColumns = []string{
	"mdo_secundario_rf_usd",
	"mdo_secundario_rf_usd_equiv_dop",
	"mdo_secundario_rf_dop",
	"mdo_secundario_rf_total_dop",
	"mdo_primario_rf_usd",
	"mdo_primario_rf_usd_equiv_dop",
	"mdo_primario_rf_dop",
	"mdo_primario_rf_total_dop",
	"mdo_secundario_rv_usd",
	"mdo_secundario_rv_usd_equiv_dop",
	"mdo_secundario_rv_dop",
	"mdo_secundario_rv_total_dop",
	"mdo_primario_rv_usd",
	"mdo_primario_rv_usd_equiv_dop",
	"mdo_primario_rv_dop",
	"mdo_primario_rv_total_dop",
}

// SummaryRepo stores the wide per-date market summary, keyed by fecha.
type SummaryRepo struct {
	pool *pgxpool.Pool
}

func NewSummaryRepo(pool *pgxpool.Pool) *SummaryRepo {
	return &SummaryRepo{pool: pool}
}

// EnsureSchema creates the summary table if it does not exist.
func (r *SummaryRepo) EnsureSchema(ctx context.Context) error {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", summaryTable)
	b.WriteString("\tfecha date PRIMARY KEY")
	for _, col := range summaryColumns {
		fmt.Fprintf(&b, ",\n\t%s double precision NOT NULL DEFAULT 0", col)
	}
	b.WriteString(",\n\tupdated_at timestamptz NOT NULL DEFAULT now()\n)")

	if _, err := r.pool.Exec(ctx, b.String()); err != nil {
		return fmt.Errorf("failed to create %s: %w", summaryTable, err)
	}
	return nil
}

// Save upserts one row per summary, keyed by fecha. Re-running a date
// replaces that date's measures.
func (r *SummaryRepo) Save(ctx context.Context, summaries []domain.MarketSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	query := buildUpsert(summaryTable, append([]string{"fecha"}, summaryColumns...), []string{"fecha"})

	batch := &pgx.Batch{}
	for _, s := range summaries {
		args := make([]any, 0, len(summaryColumns)+1)
		args = append(args, s.Fecha)
		record := s.Record()
		for _, col := range summaryColumns {
			args = append(args, record.Number(col))
		}
		batch.Queue(query, args...)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save market summaries: %w", err)
	}
	return nil
}
