package workbook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"bvrdcli/pkg/contracts/domain"
)

// SheetNotFoundError reports that a requested logical sheet has no match in
// the workbook. Non-fatal: callers log and skip the sheet.
type SheetNotFoundError struct {
	Requested string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)",
		e.Requested, strings.Join(e.Available, ", "))
}

// Workbook is an open bulletin document.
type Workbook struct {
	file *excelize.File
}

// Open parses an in-memory bulletin body into a Workbook.
func Open(body []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames enumerates the sheet names actually present in the document.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ResolveSheet resolves a requested logical sheet name to its grid. The
// on-file name is matched exactly first, then with the fixed "BB_" prefix
// stripped from the request. The grid is keyed downstream by the requested
// name regardless of which spelling matched.
func (w *Workbook) ResolveSheet(requested string) (Grid, error) {
	candidates := []string{requested}
	if stripped := strings.TrimPrefix(requested, domain.SheetNamePrefix); stripped != requested {
		candidates = append(candidates, stripped)
	}

	available := w.SheetNames()
	for _, name := range candidates {
		for _, present := range available {
			if present != name {
				continue
			}
			rows, err := w.file.GetRows(name)
			if err != nil {
				return Grid{}, fmt.Errorf("failed to read sheet %q: %w", name, err)
			}
			return NewGrid(rows), nil
		}
	}

	return Grid{}, &SheetNotFoundError{Requested: requested, Available: available}
}
