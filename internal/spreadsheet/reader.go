// Package spreadsheet reads workbook files into raw cell grids. Callers get
// untyped string cells; interpreting them is the importer's problem.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var ErrParse = errors.New("malformed spreadsheet")

// Parse reads the first sheet of an xlsx/xls workbook into a 2D array of
// cell values. Row 0 is the header row. Any reader or workbook failure
// surfaces as a single ErrParse-wrapped error.
func Parse(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return rows, nil
}
