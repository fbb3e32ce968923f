// Package analysis computes Delta-Ct relative quantification over
// extracted datasets.
package analysis

import (
	"fmt"
	"math"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// AnchorKind selects how the intra-dataset reference value for
// Delta-Ct is chosen.
type AnchorKind string

const (
	// AnchorFirst anchors against the first Ct value of the dataset.
	AnchorFirst AnchorKind = "first"
	// AnchorMean anchors against the mean of all numeric Ct values.
	AnchorMean AnchorKind = "mean"
	// AnchorValue anchors against a caller-supplied fixed value.
	AnchorValue AnchorKind = "value"
)

// Anchor is the intra-dataset reference for Delta-Ct computation.
type Anchor struct {
	Kind  AnchorKind
	Value float64
}

// Result holds the per-replicate Delta-Ct values of one dataset, in
// exponential form (efficiency factor raised to the negative delta).
type Result struct {
	ID     string    `json:"id"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Analyser computes exponential Delta-Ct values for single datasets.
type Analyser struct {
	Anchor Anchor
}

// NewAnalyser returns an analyser anchored on the first Ct value.
func NewAnalyser() *Analyser {
	return &Analyser{Anchor: Anchor{Kind: AnchorFirst}}
}

// DeltaCt computes eff^(anchor-Ct) for every replicate, where eff is
// twice the dataset's amplification efficiency. Missing Ct values
// propagate as NaN.
func (a *Analyser) DeltaCt(d models.Dataset) (Result, error) {
	if d.N() == 0 {
		return Result{}, fmt.Errorf("dataset %q has no replicates", d.ID)
	}
	anchor, err := a.anchorValue(d)
	if err != nil {
		return Result{}, err
	}

	eff := 2 * d.Efficiency
	values := make([]float64, d.N())
	for i, r := range d.Replicates {
		if r.Missing() {
			values[i] = math.NaN()
			continue
		}
		values[i] = math.Pow(eff, anchor-r.Ct)
	}
	return Result{ID: d.ID, Labels: d.Labels(), Values: values}, nil
}

func (a *Analyser) anchorValue(d models.Dataset) (float64, error) {
	switch a.Anchor.Kind {
	case AnchorValue:
		return a.Anchor.Value, nil
	case AnchorMean:
		sum, n := 0.0, 0
		for _, r := range d.Replicates {
			if r.Missing() {
				continue
			}
			sum += r.Ct
			n++
		}
		if n == 0 {
			return 0, fmt.Errorf("dataset %q has no numeric Ct values to anchor on", d.ID)
		}
		return sum / float64(n), nil
	case AnchorFirst, "":
		first := d.Replicates[0]
		if first.Missing() {
			return 0, fmt.Errorf("dataset %q: first Ct value is missing, cannot anchor", d.ID)
		}
		return first.Ct, nil
	}
	return 0, fmt.Errorf("unknown anchor kind %q", a.Anchor.Kind)
}
