package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
)

// AssayPatterns holds the named preset patterns for assay headers.
// Every pattern captures the assay name in its first capture group.
var AssayPatterns = map[string]*regexp.Regexp{
	"all":        regexp.MustCompile(`([A-Za-z0-9.:, ()_\-/]+)`),
	"Rotor-Gene": regexp.MustCompile(`Quantitative analysis of .*\(([A-Za-z0-9.:, _\-/]+)`),
}

// ResolvePattern returns the preset pattern for a known name, or
// compiles the argument as a raw regular expression. Raw patterns must
// contain a capture group for the assay name.
func ResolvePattern(pattern string) (*regexp.Regexp, error) {
	if p, ok := AssayPatterns[pattern]; ok {
		return p, nil
	}
	p, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid assay pattern %q: %w", pattern, err)
	}
	return p, nil
}

// HeaderMatch is the located position of a recognized dataset header
// plus the captured dataset name. Positions refer to the grid the
// locator ran against, which the caller may have transposed beforehand.
type HeaderMatch struct {
	Row  int
	Col  int
	Name string
}

// extractName applies the assay pattern to a header cell's text and
// returns the captured assay name, or "" when the pattern does not
// match.
func extractName(text string, pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(m[0])
}

// LocateByPattern scans one column of the grid cell by cell and returns
// a header match for every cell whose text matches the assay pattern.
// Candidate cells are evaluated independently and the first submatch
// per cell wins. Zero matches is not an error; the caller decides
// whether an empty result is fatal.
func LocateByPattern(g *grid.Grid, pattern *regexp.Regexp, col int) []HeaderMatch {
	var matches []HeaderMatch
	for r := 0; r < g.NumRows(); r++ {
		value := g.Value(r, col)
		if strings.TrimSpace(value) == "" {
			continue
		}
		name := extractName(value, pattern)
		if name == "" {
			continue
		}
		matches = append(matches, HeaderMatch{Row: r, Col: col, Name: name})
	}
	return matches
}

// LocateByDecorators uses decorator positions as header anchors: the
// header cell sits immediately below each decorator. The assay name is
// taken from that cell via the assay pattern. All anchors must share
// one column; anchors spread across columns indicate a mixed or
// untransposed layout and fail with ErrInconsistentLayout.
func LocateByDecorators(g *grid.Grid, decorators []Decorator, pattern *regexp.Regexp) ([]HeaderMatch, error) {
	if len(decorators) == 0 {
		return nil, nil
	}
	col := decorators[0].Col
	for _, d := range decorators[1:] {
		if d.Col != col {
			return nil, fmt.Errorf("%w: decorators in columns %d and %d (did you mean to transpose?)", ErrInconsistentLayout, col, d.Col)
		}
	}

	var matches []HeaderMatch
	for _, d := range decorators {
		header := g.Value(d.Row+1, d.Col)
		name := extractName(header, pattern)
		if name == "" {
			// tolerate a decorator above a non-matching cell
			continue
		}
		matches = append(matches, HeaderMatch{Row: d.Row + 1, Col: d.Col, Name: name})
	}
	return matches, nil
}
