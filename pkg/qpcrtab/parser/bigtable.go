package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// Default column labels for big tables.
const (
	DefaultAssayLabel = "assay"
	DefaultBigIDLabel = "id"
	DefaultBigCtLabel = "Ct"
)

// ExtractVertical splits a flat single-table sheet into datasets by
// grouping rows on the value of the assay column. Group order and
// replicate order within a group follow first-seen row order. An
// optional bare "@qpcr" column supplies each group's role from its
// per-row values; when rows of one group disagree, the first-seen value
// wins.
func ExtractVertical(g *grid.Grid, assayLabel, idLabel, ctLabel string) ([]models.Dataset, map[string]models.Role, error) {
	if assayLabel == "" {
		assayLabel = DefaultAssayLabel
	}
	if idLabel == "" {
		idLabel = DefaultBigIDLabel
	}
	if ctLabel == "" {
		ctLabel = DefaultBigCtLabel
	}

	headerRow, cols, err := findBigTableHeader(g, assayLabel, idLabel, ctLabel)
	if err != nil {
		return nil, nil, err
	}
	assayCol, idCol, ctCol := cols[0], cols[1], cols[2]

	// optional role column headed by a bare namespace token
	roleCol := -1
	for c := 0; c < g.NumCols(); c++ {
		if d, ok := ParseToken(g.Value(headerRow, c), DefaultNamespace); ok && d.Key == KeyColumn {
			roleCol = c
			break
		}
	}

	byName := map[string]int{}
	var datasets []models.Dataset
	roles := map[string]models.Role{}

	for r := headerRow + 1; r < g.NumRows(); r++ {
		name := strings.TrimSpace(g.Value(r, assayCol))
		if name == "" {
			break
		}
		idx, seen := byName[name]
		if !seen {
			idx = len(datasets)
			byName[name] = idx
			datasets = append(datasets, models.NewDataset(name))
			if roleCol >= 0 {
				roles[name] = roleFromCell(g.Value(r, roleCol))
			}
		}
		ct, raw := ParseCt(g.Value(r, ctCol))
		datasets[idx].Replicates = append(datasets[idx].Replicates, models.Replicate{
			Label: strings.TrimSpace(g.Value(r, idCol)),
			Ct:    ct,
			Raw:   raw,
		})
	}
	return datasets, roles, nil
}

// roleFromCell maps a role-column cell to a Role. Cells may contain the
// bare words "assay"/"normaliser" or full decorator tokens.
func roleFromCell(value string) models.Role {
	s := strings.TrimSpace(value)
	if d, ok := ParseToken(s, DefaultNamespace); ok {
		s = d.Key
	}
	if s == KeyNormaliser {
		return models.RoleNormaliser
	}
	return models.RoleAssay
}

// findBigTableHeader locates the header row containing all given
// labels and returns their column indices in argument order.
func findBigTableHeader(g *grid.Grid, labels ...string) (int, []int, error) {
	for r := 0; r < g.NumRows(); r++ {
		cols := make([]int, len(labels))
		found := 0
		for i, label := range labels {
			cols[i] = -1
			for c := 0; c < g.NumCols(); c++ {
				if strings.TrimSpace(g.Value(r, c)) == label {
					cols[i] = c
					found++
					break
				}
			}
		}
		if found == len(labels) {
			return r, cols, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: big table header with columns %q", ErrLabelsNotFound, labels)
}

// ExtractHorizontal splits side-by-side replicate column groups into
// datasets. Replicate column headers are not assumed identical across
// groups, so grouping relies entirely on the positions of decorators in
// the row immediately above the column headers: each decorator marks
// the first of exactly `replicates` consecutive replicate columns.
// Group names come from the decorator payload if present, else from the
// caller-supplied names matched positionally, else groups are numbered
// sequentially from 0. A decorator with the normaliser key also sets
// the group's role.
func ExtractHorizontal(g *grid.Grid, idLabel string, replicates int, names []string) ([]models.Dataset, []models.Role, error) {
	if idLabel == "" {
		idLabel = DefaultBigIDLabel
	}
	if replicates < 1 {
		return nil, nil, fmt.Errorf("%w: replicate count %d must be at least 1", ErrReplicateCountMismatch, replicates)
	}

	anchors := g.Find(idLabel)
	if len(anchors) == 0 {
		return nil, nil, fmt.Errorf("%w: big table header %q", ErrLabelsNotFound, idLabel)
	}
	headerRow, idCol := anchors[0].Row, anchors[0].Col

	all := Scan(g, DefaultNamespace)
	var marks []Decorator
	for _, d := range all {
		if d.Row == headerRow-1 && d.Key != KeyColumn {
			marks = append(marks, d)
		}
	}
	if len(marks) == 0 {
		return nil, nil, fmt.Errorf("%w: horizontal big tables need group decorators above the header row", ErrNoDecorators)
	}

	if len(names) > 0 && len(names) != len(marks) {
		return nil, nil, fmt.Errorf("%d group names given for %d decorated groups", len(names), len(marks))
	}

	datasets := make([]models.Dataset, 0, len(marks))
	roles := make([]models.Role, 0, len(marks))
	for i, mark := range marks {
		end := g.NumCols()
		if i+1 < len(marks) {
			end = marks[i+1].Col
		}
		if end-mark.Col < replicates {
			return nil, nil, fmt.Errorf("%w: group at column %d spans %d columns, declared replicates %d",
				ErrReplicateCountMismatch, mark.Col, end-mark.Col, replicates)
		}

		name := mark.Payload
		if name == "" && len(names) > 0 {
			name = names[i]
		}
		if name == "" {
			name = strconv.Itoa(i)
		}

		ds := models.NewDataset(name)
		for r := headerRow + 1; r < g.NumRows(); r++ {
			id := strings.TrimSpace(g.Value(r, idCol))
			if id == "" {
				break
			}
			for k := 0; k < replicates; k++ {
				ct, raw := ParseCt(g.Value(r, mark.Col+k))
				ds.Replicates = append(ds.Replicates, models.Replicate{Label: id, Ct: ct, Raw: raw})
			}
		}
		datasets = append(datasets, ds)

		role := models.RoleAssay
		if mark.Key == KeyNormaliser {
			role = models.RoleNormaliser
		}
		roles = append(roles, role)
	}
	return datasets, roles, nil
}
