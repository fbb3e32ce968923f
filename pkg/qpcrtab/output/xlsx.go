package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/analysis"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// WriteDatasetsXLSX writes datasets to a workbook, one sheet per
// assay, with the standard Name/Ct column layout.
func WriteDatasetsXLSX(path string, datasets []models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, d := range datasets {
		sheet := d.ID
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}

		f.SetCellValue(sheet, "A1", "Name")
		f.SetCellValue(sheet, "B1", "Ct")
		for row, r := range d.Replicates {
			nameRef, _ := excelize.CoordinatesToCellName(1, row+2)
			ctRef, _ := excelize.CoordinatesToCellName(2, row+2)
			f.SetCellValue(sheet, nameRef, r.Label)
			switch {
			case r.Raw != "":
				f.SetCellValue(sheet, ctRef, r.Raw)
			case !r.Missing():
				f.SetCellValue(sheet, ctRef, r.Ct)
			}
		}
	}
	return f.SaveAs(path)
}

// WriteResultsXLSX writes analysis results as one combined sheet:
// replicate labels in column A, one value column per result.
func WriteResultsXLSX(path string, results []analysis.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to write")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "Name")
	for col, res := range results {
		ref, _ := excelize.CoordinatesToCellName(col+2, 1)
		f.SetCellValue(sheet, ref, res.ID)
	}
	for i, label := range results[0].Labels {
		ref, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetCellValue(sheet, ref, label)
		for col, res := range results {
			if i >= len(res.Values) {
				continue
			}
			valRef, _ := excelize.CoordinatesToCellName(col+2, i+2)
			f.SetCellValue(sheet, valRef, res.Values[i])
		}
	}
	return f.SaveAs(path)
}
