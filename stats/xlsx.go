package stats

import (
	"github.com/360EntSecGroup-Skylar/excelize/v2"
)

const (
	ClearSheet   = "clearBC"
	UnclearSheet = "unclearBC"
)

// WriteXLSX saves both tables as sheets of one workbook.
func (t *Table) WriteXLSX(path string) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", ClearSheet)
	f.NewSheet(UnclearSheet)

	if err := setRow(f, ClearSheet, 1, []interface{}{"Barcode", "Correct reads", "Corrected reads"}); err != nil {
		return err
	}
	for i, row := range t.Clear() {
		if err := setRow(f, ClearSheet, i+2, []interface{}{row.Code, row.Exact, row.Corrected}); err != nil {
			return err
		}
	}

	if err := setRow(f, UnclearSheet, 1, []interface{}{"Barcode", "Unclear reads"}); err != nil {
		return err
	}
	for i, row := range t.Unclear() {
		if err := setRow(f, UnclearSheet, i+2, []interface{}{row.Code, row.Count}); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	axis, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, axis, &values)
}
