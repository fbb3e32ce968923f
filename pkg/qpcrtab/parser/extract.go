package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// Default column labels for replicate identifiers and Ct values.
const (
	DefaultIDLabel = "Name"
	DefaultCtLabel = "Ct"
)

// ParseCt coerces a cell value to a Ct measurement. Blank and
// non-numeric cells yield NaN; non-numeric text is additionally kept
// verbatim so downstream coercion can decide its fate. The extractor
// locates data, it does not filter it.
func ParseCt(value string) (ct float64, raw string) {
	s := strings.TrimSpace(value)
	if s == "" {
		return math.NaN(), ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, ""
	}
	return math.NaN(), s
}

// Extract slices one dataset out of the grid for every header match.
// For each header it finds the id/Ct label row at most two rows below
// the header, then collects contiguous (identifier, Ct) pairs until a
// blank separator row, the next header's position, or the grid edge --
// whichever comes first. That boundary rule lets multiple datasets
// stack in one sheet without explicit delimiters.
func Extract(g *grid.Grid, headers []HeaderMatch, idLabel, ctLabel string) ([]models.Dataset, error) {
	if idLabel == "" {
		idLabel = DefaultIDLabel
	}
	if ctLabel == "" {
		ctLabel = DefaultCtLabel
	}

	datasets := make([]models.Dataset, 0, len(headers))
	for i, h := range headers {
		bound := g.NumRows()
		if i+1 < len(headers) {
			bound = headers[i+1].Row
		}

		idCol, ctCol, labelRow, err := findLabelColumns(g, h, idLabel, ctLabel)
		if err != nil {
			return nil, err
		}

		ds := models.NewDataset(h.Name)
		for r := labelRow + 1; r < bound; r++ {
			id := g.Value(r, idCol)
			if strings.TrimSpace(id) == "" {
				break
			}
			ct, raw := ParseCt(g.Value(r, ctCol))
			ds.Replicates = append(ds.Replicates, models.Replicate{
				Label: strings.TrimSpace(id),
				Ct:    ct,
				Raw:   raw,
			})
		}
		datasets = append(datasets, ds)
	}
	return datasets, nil
}

// findLabelColumns locates the id and Ct label cells for one assay
// block. The labels normally sit in the row directly below the assay
// header; a single spacer row between header and labels is tolerated.
func findLabelColumns(g *grid.Grid, h HeaderMatch, idLabel, ctLabel string) (idCol, ctCol, labelRow int, err error) {
	for offset := 1; offset <= 2; offset++ {
		row := h.Row + offset
		idCol, ctCol = -1, -1
		for c := 0; c < g.NumCols(); c++ {
			switch strings.TrimSpace(g.Value(row, c)) {
			case idLabel:
				idCol = c
			case ctLabel:
				ctCol = c
			}
		}
		if idCol >= 0 && ctCol >= 0 {
			return idCol, ctCol, row, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("%w: assay %q expects labels %q and %q below its header", ErrLabelsNotFound, h.Name, idLabel, ctLabel)
}

// FilterByName reduces an extraction result to the single dataset with
// the given identifier.
func FilterByName(datasets []models.Dataset, name string) (models.Dataset, error) {
	ds, ok := lo.Find(datasets, func(d models.Dataset) bool { return d.ID == name })
	if !ok {
		available := lo.Map(datasets, func(d models.Dataset, _ int) string { return d.ID })
		return models.Dataset{}, fmt.Errorf("%w: %q (available: %s)", ErrAssayNotFound, name, strings.Join(available, ", "))
	}
	return ds, nil
}
