package transform

import (
	"log/slog"
	"time"

	"bvrdcli/internal/workbook"
	"bvrdcli/pkg/contracts/domain"
)

// SectionProjector turns one sheet's grid into normalized records for one
// bulletin date. The set of projectors is closed and resolved at build time
// through the registry; there is no dynamic discovery.
type SectionProjector interface {
	SheetType() domain.SheetType
	Project(g workbook.Grid, date time.Time, logger *slog.Logger) ([]domain.Record, error)
}

// Column maps one source column position to a canonical output field.
// Critical columns drop the whole row when their value is missing.
type Column struct {
	Index    int
	Name     string
	Type     domain.FieldType
	Critical bool
}

// FieldProjector projects a fixed subset of columns, by position, out of an
// anchor-bounded section. It performs no I/O and is deterministic given its
// section and directives. TrimTrailing cuts that many rows off the end of
// the section, for sheets that close with a totals row.
type FieldProjector struct {
	Sheet        domain.SheetType
	AnchorColumn int
	StartAnchor  workbook.Anchor
	EndAnchor    *workbook.Anchor
	TrimTrailing int
	Columns      []Column
}

// SheetType implements SectionProjector.
func (p FieldProjector) SheetType() domain.SheetType {
	return p.Sheet
}

// Project slices the section behind the projector's anchors and coerces each
// row into a Record. Rows with every configured cell empty are skipped; rows
// missing a critical field are dropped and logged.
func (p FieldProjector) Project(g workbook.Grid, date time.Time, logger *slog.Logger) ([]domain.Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	section := workbook.Section{Start: 0, End: g.RowCount()}
	if p.StartAnchor.Pattern != "" {
		var err error
		section, err = workbook.Slice(g, p.AnchorColumn, p.StartAnchor, p.EndAnchor)
		if err != nil {
			return nil, err
		}
	}
	if p.TrimTrailing > 0 {
		section.End -= p.TrimTrailing
		if section.End < section.Start {
			section.End = section.Start
		}
	}

	var records []domain.Record
	for row := section.Start; row < section.End; row++ {
		fields, empty, dropped := p.projectRow(g, row, date, logger)
		if empty {
			continue
		}
		if dropped {
			logger.Debug("row dropped, missing critical field",
				slog.String("sheet", string(p.Sheet)),
				slog.String("date", date.Format("2006-01-02")),
				slog.Int("row", row))
			continue
		}
		records = append(records, domain.Record{Sheet: p.Sheet, Date: date, Fields: fields})
	}

	return records, nil
}

func (p FieldProjector) projectRow(g workbook.Grid, row int, date time.Time, logger *slog.Logger) (fields map[string]domain.Value, empty, dropped bool) {
	fields = make(map[string]domain.Value, len(p.Columns))
	empty = true

	for _, col := range p.Columns {
		raw := g.AsText(row, col.Index)
		if raw != "" {
			empty = false
		}

		value, failed := coerceValue(col.Type, raw)
		if failed {
			logger.Warn("field coercion failure, value degraded",
				slog.String("sheet", string(p.Sheet)),
				slog.String("date", date.Format("2006-01-02")),
				slog.Int("row", row),
				slog.String("field", col.Name),
				slog.String("raw", raw))
		}
		if col.Critical && !value.Valid {
			dropped = true
		}
		fields[col.Name] = value
	}

	if empty {
		return nil, true, false
	}
	return fields, false, dropped
}
