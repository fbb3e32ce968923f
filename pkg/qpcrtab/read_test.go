package qpcrtab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const stackedCSV = `Quantitative analysis of Cycling A.Green (ActB),
Name,Ct
ctrl1,24.5
ctrl2,24.7
,
Quantitative analysis of Cycling A.Green (HNRNPL),
Name,Ct
ctrl1,25.1
ctrl2,25.3
,
Quantitative analysis of Cycling A.Green (SRSF11),
Name,Ct
ctrl1,26.0
ctrl2,26.1
`

const decoratedCSV = `'@qpcr:normaliser,
Quantitative analysis of Cycling A.Green (ActB),
Name,Ct
ctrl1,24.5
ctrl2,24.7
,
Quantitative analysis of Cycling A.Green (HNRNPL),
Name,Ct
ctrl1,25.1
ctrl2,25.3
,
Quantitative analysis of Cycling A.Green (SRSF11),
Name,Ct
ctrl1,26.0
ctrl2,26.1
`

func TestReadRegularCSV(t *testing.T) {
	path := writeFile(t, "simple.csv", "Name,Ct\nctrl1,24.5\nctrl2,24.7\n")

	ds, err := Read(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "simple", ds.ID)
	require.Equal(t, 2, ds.N())
	assert.Equal(t, "ctrl1", ds.Replicates[0].Label)
	assert.InDelta(t, 24.5, ds.Replicates[0].Ct, 1e-9)
}

func TestReadSemicolonCSV(t *testing.T) {
	path := writeFile(t, "simple.csv", "Name;Ct\nctrl1;24.5\nctrl2;24.7\n")

	ds, err := Read(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, ds.N())
	assert.InDelta(t, 24.5, ds.Replicates[0].Ct, 1e-9)
}

func TestReadIrregularSingleAssay(t *testing.T) {
	content := "Quantitative analysis of Cycling A.Green (ActB),\nName,Ct\nctrl1,24.5\nctrl2,24.7\n"
	path := writeFile(t, "single.csv", content)

	ds, err := Read(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "ActB", ds.ID)
	assert.Equal(t, 2, ds.N())
}

func TestReadMultipleDatasetsFails(t *testing.T) {
	path := writeFile(t, "stacked.csv", stackedCSV)

	_, err := Read(path, DefaultOptions())
	require.ErrorIs(t, err, ErrMultipleDatasets)
}

func TestReadAssayFilter(t *testing.T) {
	path := writeFile(t, "stacked.csv", stackedCSV)

	opts := DefaultOptions()
	opts.Assay = "HNRNPL"
	ds, err := Read(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "HNRNPL", ds.ID)

	opts.Assay = "GAPDH"
	_, err = Read(path, opts)
	require.ErrorIs(t, err, ErrAssayNotFound)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	require.ErrorIs(t, err, ErrUnreadableSource)
}

func TestReadNoDatasets(t *testing.T) {
	path := writeFile(t, "empty.csv", "foo,bar\nbaz,qux\n")
	_, err := Read(path, DefaultOptions())
	require.ErrorIs(t, err, ErrNoDatasets)
}

func TestReadMultiAllAssays(t *testing.T) {
	path := writeFile(t, "stacked.csv", stackedCSV)

	part, err := ReadMulti(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, part.Assays, 3)
	assert.Empty(t, part.Normalisers)
	assert.Equal(t, "ActB", part.Assays[0].ID)
	assert.Equal(t, "HNRNPL", part.Assays[1].ID)
	assert.Equal(t, "SRSF11", part.Assays[2].ID)
}

func TestReadMultiWithNormaliserDecorator(t *testing.T) {
	path := writeFile(t, "decorated.csv", decoratedCSV)

	part, err := ReadMulti(path, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, part.Assays, 2)
	require.Len(t, part.Normalisers, 1)
	assert.Equal(t, "ActB", part.Normalisers[0].ID)
	assert.Equal(t, "HNRNPL", part.Assays[0].ID)
	assert.Equal(t, "SRSF11", part.Assays[1].ID)
}

func TestReadMultiDecoratorModeExcludesUndecorated(t *testing.T) {
	path := writeFile(t, "decorated.csv", decoratedCSV)

	opts := DefaultOptions()
	opts.Decorator = true
	part, err := ReadMulti(path, opts)
	require.NoError(t, err)
	// only the decorated dataset survives
	assert.Equal(t, 1, part.Total())
	require.Len(t, part.Normalisers, 1)
	assert.Equal(t, "ActB", part.Normalisers[0].ID)
}

func TestReadMultiIdempotent(t *testing.T) {
	path := writeFile(t, "decorated.csv", decoratedCSV)

	first, err := ReadMulti(path, DefaultOptions())
	require.NoError(t, err)
	second, err := ReadMulti(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestReadTransposed(t *testing.T) {
	content := "Quantitative analysis of Cycling A.Green (ActB),Name,ctrl1,ctrl2\n,Ct,24.5,24.7\n"
	path := writeFile(t, "wide.csv", content)

	opts := DefaultOptions()
	opts.Transpose = true
	ds, err := Read(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "ActB", ds.ID)
	require.Equal(t, 2, ds.N())
	assert.Equal(t, "ctrl2", ds.Replicates[1].Label)
}

func TestReadBigTableVertical(t *testing.T) {
	content := `Assay,Name,Ct,@qpcr
28S,ctrl,7.65,normaliser
28S,ctrl,7.74,normaliser
28S,kd,7.86,normaliser
ActB,ctrl,11.67,assay
ActB,ctrl,11.54,assay
ActB,kd,11.43,assay
`
	path := writeFile(t, "vertical.csv", content)

	opts := DefaultOptions()
	opts.Kind = models.LayoutVertical
	opts.AssayCol = "Assay"
	opts.IDCol = "Name"
	opts.CtCol = "Ct"

	part, err := ReadMulti(path, opts)
	require.NoError(t, err)
	require.Len(t, part.Assays, 1)
	require.Len(t, part.Normalisers, 1)
	assert.Equal(t, "ActB", part.Assays[0].ID)
	assert.Equal(t, "28S", part.Normalisers[0].ID)
	// row order preserved within each group
	assert.Equal(t, []string{"ctrl", "ctrl", "kd"}, part.Normalisers[0].Labels())
}

func TestReadBigTableHorizontal(t *testing.T) {
	content := `,@qpcr:group,,,@qpcr:normaliser,,
id,r1,r2,r3,n1,n2,n3
ctrl,7.5,7.6,7.4,11.5,11.6,11.4
kd,8.5,8.6,8.4,12.5,12.6,12.4
`
	path := writeFile(t, "horizontal.csv", content)

	opts := DefaultOptions()
	opts.Kind = models.LayoutHorizontal
	opts.IDCol = "id"
	opts.Replicates = 3
	opts.Names = []string{"Target", "28S"}

	part, err := ReadMulti(path, opts)
	require.NoError(t, err)
	require.Len(t, part.Assays, 1)
	require.Len(t, part.Normalisers, 1)
	assert.Equal(t, "Target", part.Assays[0].ID)
	assert.Equal(t, "28S", part.Normalisers[0].ID)
	assert.Equal(t, 6, part.Assays[0].N())
}

func TestReadBigTableHorizontalReplicateMismatch(t *testing.T) {
	content := `,@qpcr:group,,,@qpcr:group,,
id,r1,r2,r3,n1,n2,n3
ctrl,7.5,7.6,7.4,11.5,11.6,11.4
`
	path := writeFile(t, "horizontal.csv", content)

	opts := DefaultOptions()
	opts.Kind = models.LayoutHorizontal
	opts.IDCol = "id"
	opts.Replicates = 4

	_, err := ReadMulti(path, opts)
	require.ErrorIs(t, err, ErrReplicateCountMismatch)
}

func buildWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, ref, v))
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSXSheetSelection(t *testing.T) {
	path := buildWorkbook(t, map[string][][]any{
		"Run1": {
			{"Quantitative analysis of Cycling A.Green (ActB)"},
			{"Name", "Ct"},
			{"ctrl1", 24.5},
			{"ctrl2", 24.7},
		},
	})

	opts := DefaultOptions()
	opts.Sheet = "Run1"
	ds, err := Read(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "ActB", ds.ID)
	require.Equal(t, 2, ds.N())
	assert.InDelta(t, 24.7, ds.Replicates[1].Ct, 1e-9)
}

func TestReadAllSheets(t *testing.T) {
	path := buildWorkbook(t, map[string][][]any{
		"Sheet1": {
			{"Quantitative analysis of Cycling A.Green (ActB)"},
			{"Name", "Ct"},
			{"ctrl1", 24.5},
		},
		"Sheet2": {
			{"'@qpcr:normaliser"},
			{"Quantitative analysis of Cycling A.Green (28S)"},
			{"Name", "Ct"},
			{"ctrl1", 7.65},
		},
	})

	part, err := ReadAllSheets(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, part.Total())
	require.Len(t, part.Normalisers, 1)
	assert.Equal(t, "28S", part.Normalisers[0].ID)
}
