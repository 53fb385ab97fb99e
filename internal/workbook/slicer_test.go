package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anchorGrid places the start pattern in column 0 at rows 2, 7 and 15.
func anchorGrid() Grid {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"", "dato"}
	}
	rows[2][0] = "Número Operación"
	rows[7][0] = "número operación repetido"
	rows[15][0] = "cierre Número Operación final"
	rows[18][0] = "Total General"
	return NewGrid(rows)
}

func TestSliceOccurrenceSelection(t *testing.T) {
	g := anchorGrid()

	tests := []struct {
		name       string
		occurrence int
		wantStart  int
	}{
		{"first occurrence", 1, 3},
		{"second occurrence", 2, 8},
		{"third occurrence", 3, 16},
		{"zero treated as first", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec, err := Slice(g, 0, Anchor{Pattern: "Número Operación", Occurrence: tt.occurrence}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, sec.Start)
			assert.Equal(t, g.RowCount(), sec.End, "open-ended section runs to the final row")
		})
	}
}

func TestSliceMissingOccurrence(t *testing.T) {
	g := anchorGrid()

	_, err := Slice(g, 0, Anchor{Pattern: "Número Operación", Occurrence: 4}, nil)
	require.Error(t, err)

	var notFound *AnchorNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 4, notFound.Occurrence)
	assert.Equal(t, 3, notFound.Matches)
}

func TestSliceWithEndAnchor(t *testing.T) {
	g := anchorGrid()

	end := Anchor{Pattern: "Total General", Occurrence: 1}
	sec, err := Slice(g, 0, Anchor{Pattern: "Número Operación", Occurrence: 2}, &end)
	require.NoError(t, err)

	// Strictly after row 7 and strictly before row 18.
	assert.Equal(t, 8, sec.Start)
	assert.Equal(t, 18, sec.End)
	assert.Equal(t, 10, sec.Len())
}

func TestSliceEndAnchorMissing(t *testing.T) {
	g := anchorGrid()

	end := Anchor{Pattern: "No Existe", Occurrence: 1}
	_, err := Slice(g, 0, Anchor{Pattern: "Número Operación"}, &end)

	var notFound *AnchorNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "No Existe", notFound.Pattern)
}

func TestSliceCaseInsensitive(t *testing.T) {
	g := NewGrid([][]string{
		{"encabezado"},
		{"NÚMERO OPERACIÓN"},
		{"fila de datos"},
	})

	sec, err := Slice(g, 0, Anchor{Pattern: "número operación"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, sec.Start)
}

func TestSectionLenNeverNegative(t *testing.T) {
	assert.Zero(t, Section{Start: 5, End: 3}.Len())
}
