// Package parser locates and extracts qPCR datasets from loaded cell
// grids.
package parser

import (
	"strings"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
)

// DefaultNamespace is the decorator namespace recognized in datafiles.
const DefaultNamespace = "qpcr"

// Recognized decorator keys.
const (
	// KeyAssay marks a dataset as an assay-of-interest.
	KeyAssay = "assay"
	// KeyNormaliser marks a dataset as a normalizer.
	KeyNormaliser = "normaliser"
	// KeyGroup marks the first replicate column of a horizontal
	// big-table group.
	KeyGroup = "group"
	// KeyColumn is the empty key of a bare "@qpcr" token, used as the
	// header of a per-row role column in vertical big tables.
	KeyColumn = ""
)

// Decorator is a recognized annotation token found in a cell. It is
// keyed by position so extractors can test adjacency against header
// cells.
type Decorator struct {
	Namespace string
	// Key is the part after the colon, e.g. "assay" or "normaliser".
	// Empty for a bare namespace token.
	Key string
	// Payload is any free text following the token in the same cell,
	// e.g. a group name.
	Payload string
	Row     int
	Col     int
}

// ParseToken reports whether the cell text is a decorator token of the
// given namespace. Surrounding whitespace is normalized and a single
// leading quote (the spreadsheet formula-escape convention) is stripped
// before matching; the quote is not part of the token's identity.
func ParseToken(text, namespace string) (Decorator, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "'")
	prefix := "@" + namespace
	if !strings.HasPrefix(s, prefix) {
		return Decorator{}, false
	}
	rest := s[len(prefix):]
	if rest == "" {
		return Decorator{Namespace: namespace}, true
	}
	if !strings.HasPrefix(rest, ":") {
		// e.g. "@qpcrfoo" is not a token of namespace "qpcr"
		return Decorator{}, false
	}
	rest = rest[1:]
	key := rest
	payload := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		key = rest[:i]
		payload = strings.TrimSpace(rest[i:])
	}
	if key == "" {
		return Decorator{}, false
	}
	return Decorator{Namespace: namespace, Key: key, Payload: payload}, true
}

// Scan walks the whole grid and returns all decorator tokens of the
// given namespace in row-major order. Cells that are not decorators are
// ignored; an empty result is a valid, common outcome.
func Scan(g *grid.Grid, namespace string) []Decorator {
	var found []Decorator
	for _, row := range g.Rows() {
		for _, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			d, ok := ParseToken(cell.Value, namespace)
			if !ok {
				continue
			}
			d.Row = cell.Row
			d.Col = cell.Col
			found = append(found, d)
		}
	}
	return found
}

// FilterByKey returns the decorators matching any of the given keys,
// preserving scan order.
func FilterByKey(decorators []Decorator, keys ...string) []Decorator {
	var out []Decorator
	for _, d := range decorators {
		for _, k := range keys {
			if d.Key == k {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

// At returns the decorator at the exact grid position, if any.
func At(decorators []Decorator, row, col int) (Decorator, bool) {
	for _, d := range decorators {
		if d.Row == row && d.Col == col {
			return d, true
		}
	}
	return Decorator{}, false
}
