package grid

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DetectDelimiter returns the CSV delimiter for the given content,
// distinguishing semicolon-separated csv2 files from comma-separated
// ones.
func DetectDelimiter(content string) rune {
	if strings.Contains(content, ";") {
		return ';'
	}
	return ','
}

// LoadCSV reads CSV content into a grid. A zero delimiter triggers
// delimiter detection.
func LoadCSV(r io.Reader, delimiter rune) (*Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	content := string(raw)
	if delimiter == 0 {
		delimiter = DetectDelimiter(content)
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	return New(rows), nil
}

// LoadCSVFile reads a CSV file into a grid, detecting the delimiter
// from the file content.
func LoadCSVFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()
	return LoadCSV(f, 0)
}

// LoadXLSX reads one sheet of an open workbook into a grid. An empty
// sheet name selects the first sheet.
func LoadXLSX(f *excelize.File, sheet string) (*Grid, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableSource, sheet, err)
	}
	return New(rows), nil
}

// LoadXLSXFile reads one sheet of a workbook file into a grid.
func LoadXLSXFile(path, sheet string) (*Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()
	return LoadXLSX(f, sheet)
}

// SheetNames returns the sheet names of a workbook file in workbook
// order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

// IsSpreadsheet reports whether the file path looks like an Excel
// workbook rather than a delimited text file.
func IsSpreadsheet(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}
