package parser

import (
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// Classify partitions datasets by role. Datasets without a role entry
// default to assays-of-interest, so a file without any role decorators
// yields all datasets as assays and an empty normalizer list. Every
// input dataset appears in exactly one output list.
func Classify(datasets []models.Dataset, roles map[string]models.Role) models.Partition {
	var p models.Partition
	for _, d := range datasets {
		p.Add(d, roles[d.ID])
	}
	return p
}

// ClassifyOrdered partitions datasets using a role slice parallel to
// the dataset slice, as produced by the horizontal big-table extractor.
// A short role slice leaves the remaining datasets as assays.
func ClassifyOrdered(datasets []models.Dataset, roles []models.Role) models.Partition {
	var p models.Partition
	for i, d := range datasets {
		role := models.RoleAssay
		if i < len(roles) {
			role = roles[i]
		}
		p.Add(d, role)
	}
	return p
}

// RolesByHeader derives roles for header-anchored datasets: a dataset
// is a normalizer iff a normaliser-keyed decorator sits immediately
// above its header cell.
func RolesByHeader(headers []HeaderMatch, decorators []Decorator) map[string]models.Role {
	roles := make(map[string]models.Role, len(headers))
	for _, h := range headers {
		if d, ok := At(decorators, h.Row-1, h.Col); ok && d.Key == KeyNormaliser {
			roles[h.Name] = models.RoleNormaliser
		}
	}
	return roles
}
