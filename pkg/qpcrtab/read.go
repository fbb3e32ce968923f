package qpcrtab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/parser"
)

// Read extracts a single dataset from a datafile. Regular two-column
// files are read directly; irregular files fall back to header
// location via the assay pattern. Files holding more than one dataset
// fail with ErrMultipleDatasets unless Options.Assay selects one.
func Read(path string, opts Options) (models.Dataset, error) {
	g, err := loadGrid(path, opts)
	if err != nil {
		return models.Dataset{}, err
	}

	if ds, ok := simpleRead(g, path, opts); ok {
		return ds, nil
	}

	part, err := extractIrregular(g, opts)
	if err != nil {
		return models.Dataset{}, err
	}
	datasets := append(part.Assays, part.Normalisers...)

	switch {
	case len(datasets) == 0:
		return models.Dataset{}, fmt.Errorf("%w: %s", ErrNoDatasets, path)
	case opts.Assay != "":
		return parser.FilterByName(datasets, opts.Assay)
	case len(datasets) > 1:
		return models.Dataset{}, fmt.Errorf("%w: %s holds %d datasets", ErrMultipleDatasets, path, len(datasets))
	}
	return datasets[0], nil
}

// ReadMulti extracts all datasets from a datafile and partitions them
// by role. Without role decorators every dataset lands in the assay
// list. Options.Kind switches to the big-table extractors.
func ReadMulti(path string, opts Options) (models.Partition, error) {
	switch opts.Kind {
	case models.LayoutVertical, models.LayoutHorizontal:
		return ReadBigTable(path, opts)
	}

	g, err := loadGrid(path, opts)
	if err != nil {
		return models.Partition{}, err
	}
	return extractIrregular(g, opts)
}

// ReadBigTable extracts datasets from a single flat table, split
// vertically by an assay column or horizontally by decorated replicate
// column groups.
func ReadBigTable(path string, opts Options) (models.Partition, error) {
	g, err := loadGrid(path, opts)
	if err != nil {
		return models.Partition{}, err
	}

	switch opts.Kind {
	case models.LayoutVertical:
		datasets, roles, err := parser.ExtractVertical(g, opts.AssayCol, opts.IDCol, opts.CtCol)
		if err != nil {
			return models.Partition{}, err
		}
		return parser.Classify(datasets, roles), nil
	case models.LayoutHorizontal:
		idLabel := opts.IDCol
		if idLabel == "" {
			idLabel = opts.IDLabel
		}
		datasets, roles, err := parser.ExtractHorizontal(g, idLabel, opts.Replicates, opts.Names)
		if err != nil {
			return models.Partition{}, err
		}
		return parser.ClassifyOrdered(datasets, roles), nil
	}
	return models.Partition{}, fmt.Errorf("unknown big table kind %q", opts.Kind)
}

// ReadAllSheets runs ReadMulti over every sheet of a workbook and
// merges the partitions. Sheets that cannot be parsed are skipped with
// a warning rather than failing the whole read.
func ReadAllSheets(path string, opts Options) (models.Partition, error) {
	sheets, err := grid.SheetNames(path)
	if err != nil {
		return models.Partition{}, err
	}

	var merged models.Partition
	for _, sheet := range sheets {
		sheetOpts := opts
		sheetOpts.Sheet = sheet
		part, err := ReadMulti(path, sheetOpts)
		if err != nil {
			opts.logger().Warn("skipping unreadable sheet", "file", path, "sheet", sheet, "error", err)
			continue
		}
		merged.Merge(part)
	}
	if merged.Total() == 0 {
		return models.Partition{}, fmt.Errorf("%w: no sheet of %s yielded datasets", ErrNoDatasets, path)
	}
	return merged, nil
}

// loadGrid reads the datafile into a grid, dispatching on the file
// suffix and applying the transpose option.
func loadGrid(path string, opts Options) (*grid.Grid, error) {
	var g *grid.Grid
	var err error
	if grid.IsSpreadsheet(path) {
		g, err = grid.LoadXLSXFile(path, opts.Sheet)
	} else {
		if opts.Delimiter != 0 {
			g, err = loadCSVWithDelimiter(path, opts.Delimiter)
		} else {
			g, err = grid.LoadCSVFile(path)
		}
	}
	if err != nil {
		return nil, err
	}
	if opts.Transpose {
		g = g.Transpose()
	}
	return g, nil
}

func loadCSVWithDelimiter(path string, delimiter rune) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()
	return grid.LoadCSV(f, delimiter)
}

// simpleRead handles the trivial regular-table case: the id and Ct
// labels sit in the first row, replicates follow directly. The dataset
// is named by the assay option or, failing that, the file stem.
func simpleRead(g *grid.Grid, path string, opts Options) (models.Dataset, bool) {
	idCol, ctCol := -1, -1
	for c := 0; c < g.NumCols(); c++ {
		switch strings.TrimSpace(g.Value(0, c)) {
		case opts.IDLabel:
			idCol = c
		case opts.CtLabel:
			ctCol = c
		}
	}
	if idCol < 0 || ctCol < 0 {
		return models.Dataset{}, false
	}

	name := opts.Assay
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ds := models.NewDataset(name)
	for r := 1; r < g.NumRows(); r++ {
		id := strings.TrimSpace(g.Value(r, idCol))
		if id == "" {
			break
		}
		ct, raw := parser.ParseCt(g.Value(r, ctCol))
		ds.Replicates = append(ds.Replicates, models.Replicate{Label: id, Ct: ct, Raw: raw})
	}
	if len(ds.Replicates) == 0 {
		return models.Dataset{}, false
	}
	return ds, true
}

// extractIrregular locates assay headers by pattern or by decorator
// anchors, slices the datasets out, and classifies them by role.
func extractIrregular(g *grid.Grid, opts Options) (models.Partition, error) {
	pattern, err := parser.ResolvePattern(opts.pattern())
	if err != nil {
		return models.Partition{}, err
	}

	decorators := parser.Scan(g, parser.DefaultNamespace)

	var headers []parser.HeaderMatch
	if opts.Decorator {
		keys := []string{parser.KeyAssay, parser.KeyNormaliser}
		if opts.DecoratorKey != "" {
			keys = []string{opts.DecoratorKey}
		}
		anchors := parser.FilterByKey(decorators, keys...)
		headers, err = parser.LocateByDecorators(g, anchors, pattern)
		if err != nil {
			return models.Partition{}, err
		}
		// non-decorated assays are ignored in this mode; surface a
		// count for diagnostics
		if n := len(parser.LocateByPattern(g, pattern, opts.Col)) - len(headers); n > 0 {
			opts.logger().Debug("ignoring undecorated datasets", "count", n)
		}
	} else {
		headers = parser.LocateByPattern(g, pattern, opts.Col)
	}

	datasets, err := parser.Extract(g, headers, opts.IDLabel, opts.CtLabel)
	if err != nil {
		return models.Partition{}, err
	}
	roles := parser.RolesByHeader(headers, decorators)
	return parser.Classify(datasets, roles), nil
}
