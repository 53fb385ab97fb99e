package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bvrdcli/internal/transform"
	"bvrdcli/pkg/contracts/domain"
)

// recordTables maps each positional sheet type to its table name.
var recordTables = map[domain.SheetType]string{
	domain.SheetRFVTransPuestoBolsaMP:        "rfv_trans_puesto_bolsa_mp",
	domain.SheetRFMPOperDia:                  "rfmp_oper_dia",
	domain.SheetRFMPOperDiaFirme:             "rfmp_oper_dia_firme",
	domain.SheetRFMSOperDia:                  "rfms_oper_dia",
	domain.SheetRFMSOperPlazos:               "rfms_oper_plazos",
	domain.SheetRentaFijaOperacionesFuturasA: "renta_fija_operaciones_futuras",
	domain.SheetRFEmisionesCorpV:             "rf_emisiones_corp_v",
}

// recordKeys maps each positional sheet type to the natural key its rows
// are upserted on. fecha is always part of the key.
var recordKeys = map[domain.SheetType][]string{
	domain.SheetRFVTransPuestoBolsaMP:        {"participante", "fecha"},
	domain.SheetRFMPOperDia:                  {"numero_operacion", "fecha"},
	domain.SheetRFMPOperDiaFirme:             {"numero_operacion", "fecha"},
	domain.SheetRFMSOperDia:                  {"codigo", "tipo_operacion", "modalidad", "fecha"},
	domain.SheetRFMSOperPlazos:               {"codigo", "plazo", "modalidad", "fecha"},
	domain.SheetRentaFijaOperacionesFuturasA: {"codigo", "fecha_operacion", "fecha"},
	domain.SheetRFEmisionesCorpV:             {"codigo", "fecha"},
}

// tableSpec is the derived per-sheet write plan: table, column layout, and
// conflict key.
type tableSpec struct {
	table   string
	columns []transform.Column
	keys    []string
}

func specFor(sheet domain.SheetType) (tableSpec, error) {
	table, ok := recordTables[sheet]
	if !ok {
		return tableSpec{}, fmt.Errorf("no table registered for sheet %s", sheet)
	}
	columns, ok := transform.ColumnsFor(sheet)
	if !ok {
		return tableSpec{}, fmt.Errorf("no positional layout for sheet %s", sheet)
	}
	return tableSpec{table: table, columns: columns, keys: recordKeys[sheet]}, nil
}

// RecordsRepo stores normalized per-row records for the positional sheets.
type RecordsRepo struct {
	pool *pgxpool.Pool
}

func NewRecordsRepo(pool *pgxpool.Pool) *RecordsRepo {
	return &RecordsRepo{pool: pool}
}

// EnsureSchema creates the table for every positional sheet type if it
// does not exist.
func (r *RecordsRepo) EnsureSchema(ctx context.Context) error {
	for sheet := range recordTables {
		spec, err := specFor(sheet)
		if err != nil {
			return err
		}
		if _, err := r.pool.Exec(ctx, buildCreateTable(spec)); err != nil {
			return fmt.Errorf("failed to create %s: %w", spec.table, err)
		}
	}
	return nil
}

// Save upserts the records of one sheet type, keyed by the sheet's
// natural key so re-runs replace rather than duplicate.
func (r *RecordsRepo) Save(ctx context.Context, sheet domain.SheetType, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	spec, err := specFor(sheet)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(spec.columns)+1)
	names = append(names, "fecha")
	for _, col := range spec.columns {
		names = append(names, col.Name)
	}
	query := buildUpsert(spec.table, names, spec.keys)

	batch := &pgx.Batch{}
	for _, rec := range records {
		args := make([]any, 0, len(names))
		args = append(args, rec.Date)
		for _, col := range spec.columns {
			args = append(args, fieldArg(rec.Field(col.Name)))
		}
		batch.Queue(query, args...)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save %s records: %w", sheet, err)
	}
	return nil
}

// fieldArg converts a field value to its SQL argument. Absent values map
// to NULL.
func fieldArg(v domain.Value) any {
	if !v.Valid {
		return nil
	}
	switch v.Type {
	case domain.FieldDate:
		return v.Date
	case domain.FieldNumeric, domain.FieldPercent:
		return v.Number
	default:
		return v.Text
	}
}

// buildUpsert renders an INSERT ... ON CONFLICT ... DO UPDATE statement
// updating every non-key column from the excluded row.
func buildUpsert(table string, columns, keys []string) string {
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	var updates []string
	for _, col := range columns {
		if keySet[col] {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(keys, ", "),
		strings.Join(updates, ", "),
	)
}

func buildCreateTable(spec tableSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", spec.table)
	b.WriteString("\tfecha date NOT NULL")
	for _, col := range spec.columns {
		fmt.Fprintf(&b, ",\n\t%s %s", col.Name, sqlType(col.Type))
	}
	fmt.Fprintf(&b, ",\n\tUNIQUE (%s)\n)", strings.Join(spec.keys, ", "))
	return b.String()
}

func sqlType(t domain.FieldType) string {
	switch t {
	case domain.FieldDate:
		return "date"
	case domain.FieldNumeric, domain.FieldPercent:
		return "double precision"
	default:
		return "text"
	}
}
