package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/analysis"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// WriteDatasetCSV writes one dataset as a two-column CSV table. Missing
// Ct values become empty cells; non-numeric source text is written
// verbatim.
func WriteDatasetCSV(w io.Writer, d models.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Ct"}); err != nil {
		return err
	}
	for _, r := range d.Replicates {
		ct := ""
		switch {
		case r.Raw != "":
			ct = r.Raw
		case !r.Missing():
			ct = strconv.FormatFloat(r.Ct, 'g', -1, 64)
		}
		if err := cw.Write([]string{r.Label, ct}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveDatasets writes each dataset to its own CSV file in the given
// directory, named after the assay (e.g. "ActinB.csv"). The directory
// is created if needed.
func SaveDatasets(dir string, datasets []models.Dataset) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, d := range datasets {
		path := filepath.Join(dir, d.ID+".csv")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteDatasetCSV(f, d); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// WriteResultsCSV writes analysis results as one combined table:
// replicate labels in the first column, one value column per result.
// All results must share the replicate count of the first.
func WriteResultsCSV(w io.Writer, results []analysis.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to write")
	}
	n := len(results[0].Values)
	for _, res := range results[1:] {
		if len(res.Values) != n {
			return fmt.Errorf("result %q has %d values, expected %d", res.ID, len(res.Values), n)
		}
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(results)+1)
	header = append(header, "Name")
	for _, res := range results {
		header = append(header, res.ID)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		row := make([]string, 0, len(results)+1)
		row = append(row, results[0].Labels[i])
		for _, res := range results {
			row = append(row, strconv.FormatFloat(res.Values[i], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
