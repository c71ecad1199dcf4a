package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return buf.Bytes()
}

func TestParse(t *testing.T) {
	t.Run("reads the first sheet", func(t *testing.T) {
		data := workbookBytes(t, [][]any{
			{"WSIN", "Consumer Name", "Location"},
			{"4", "Juan Dela Cruz", "CENTRAL"},
		})

		rows, err := Parse(bytes.NewReader(data))
		assert.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, []string{"WSIN", "Consumer Name", "Location"}, rows[0])
		assert.Equal(t, []string{"4", "Juan Dela Cruz", "CENTRAL"}, rows[1])
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, err := Parse(strings.NewReader("plain text, not a workbook"))
		assert.ErrorIs(t, err, ErrParse)
	})
}
