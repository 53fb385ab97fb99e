package domain

import (
	"time"
)

// FieldType is the target type a projected field is coerced to.
type FieldType string

const (
	FieldDate        FieldType = "date"
	FieldNumeric     FieldType = "numeric"
	FieldPercent     FieldType = "percent"     // numeric, stored as a fraction
	FieldText        FieldType = "text"
	FieldCategorical FieldType = "categorical" // text, trimmed and uppercased
)

// Value is one typed cell value inside a Record. Valid is false when the
// source cell was empty or could not be coerced; numeric values degrade to
// zero and date values to the zero time rather than failing the row.
type Value struct {
	Type   FieldType `json:"type"`
	Text   string    `json:"text,omitempty"`
	Number float64   `json:"number,omitempty"`
	Date   time.Time `json:"date,omitempty"`
	Valid  bool      `json:"valid"`
}

// TextValue builds a valid text or categorical value.
func TextValue(t FieldType, s string) Value {
	return Value{Type: t, Text: s, Valid: s != ""}
}

// NumberValue builds a numeric or percent value.
func NumberValue(t FieldType, n float64, valid bool) Value {
	return Value{Type: t, Number: n, Valid: valid}
}

// DateValue builds a date value.
func DateValue(d time.Time, valid bool) Value {
	return Value{Type: FieldDate, Date: d, Valid: valid}
}

// Record is one normalized row extracted from a bulletin sheet, tagged with
// its source date and logical sheet type. Fields are keyed by canonical
// column name.
type Record struct {
	Sheet  SheetType        `json:"sheet" validate:"required"`
	Date   time.Time        `json:"date" validate:"required"`
	Fields map[string]Value `json:"fields" validate:"required"`
}

// Field returns the named value, or an invalid zero Value when absent.
func (r Record) Field(name string) Value {
	if v, ok := r.Fields[name]; ok {
		return v
	}
	return Value{}
}

// Number returns the named field as a float64, zero when absent or invalid.
func (r Record) Number(name string) float64 {
	return r.Fields[name].Number
}

// Text returns the named field as a string, empty when absent.
func (r Record) Text(name string) string {
	return r.Fields[name].Text
}
