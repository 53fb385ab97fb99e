package workbook

import (
	"fmt"
	"strings"
)

// Anchor locates one specific row in a grid by case-insensitive substring
// match on a designated column. Occurrence is 1-based; zero is read as the
// first occurrence. Occurrence counting runs over the whole grid and is not
// reset by any structural boundary.
type Anchor struct {
	Pattern    string
	Occurrence int
}

// AnchorNotFoundError reports that the grid holds fewer occurrences of a
// pattern than requested. Non-fatal per section.
type AnchorNotFoundError struct {
	Pattern    string
	Occurrence int
	Matches    int
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("anchor %q occurrence %d not found (%d matches)",
		e.Pattern, e.Occurrence, e.Matches)
}

// Section is a contiguous row range [Start, End) of a parent grid. It owns
// no cells, only bounds.
type Section struct {
	Start int
	End   int
}

// Len returns the number of rows in the section.
func (s Section) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// findAnchor returns the row index of the n-th occurrence of the anchor
// pattern in the designated column.
func findAnchor(g Grid, col int, a Anchor) (int, error) {
	occurrence := a.Occurrence
	if occurrence < 1 {
		occurrence = 1
	}

	pattern := strings.ToLower(a.Pattern)
	matches := 0
	for row := 0; row < g.RowCount(); row++ {
		if !strings.Contains(strings.ToLower(g.AsText(row, col)), pattern) {
			continue
		}
		matches++
		if matches == occurrence {
			return row, nil
		}
	}
	return -1, &AnchorNotFoundError{Pattern: a.Pattern, Occurrence: occurrence, Matches: matches}
}

// Slice returns the section strictly between the start anchor and the
// optional end anchor: the start anchor's row is excluded, and the end
// anchor's row (when given) is excluded too. Without an end anchor the
// section runs to the final row. Callers that need "first occurrence after
// row X" semantics must slice twice.
func Slice(g Grid, col int, start Anchor, end *Anchor) (Section, error) {
	startRow, err := findAnchor(g, col, start)
	if err != nil {
		return Section{}, err
	}

	endRow := g.RowCount()
	if end != nil {
		endRow, err = findAnchor(g, col, *end)
		if err != nil {
			return Section{}, err
		}
	}

	return Section{Start: startRow + 1, End: endRow}, nil
}
