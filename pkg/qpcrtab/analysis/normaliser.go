package analysis

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// CombineNormalisers collapses multiple normalizer results into one
// pseudo-normalizer by per-replicate mean. All normalizers must carry
// the same replicate count.
func CombineNormalisers(normalisers []Result) (Result, error) {
	if len(normalisers) == 0 {
		return Result{}, fmt.Errorf("no normalisers to combine")
	}
	n := len(normalisers[0].Values)
	for _, norm := range normalisers[1:] {
		if len(norm.Values) != n {
			return Result{}, fmt.Errorf("normaliser %q has %d replicates, expected %d", norm.ID, len(norm.Values), n)
		}
	}

	combined := Result{
		ID:     "combined_normaliser",
		Labels: normalisers[0].Labels,
		Values: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		sum, count := 0.0, 0
		for _, norm := range normalisers {
			if math.IsNaN(norm.Values[i]) {
				continue
			}
			sum += norm.Values[i]
			count++
		}
		if count == 0 {
			combined.Values[i] = math.NaN()
			continue
		}
		combined.Values[i] = sum / float64(count)
	}
	return combined, nil
}

// Normalise divides each assay's Delta-Ct values pair-wise by the
// combined normalizer: first replicate against first, second against
// second, and so on. Assays must match the normalizer replicate count.
func Normalise(assays []Result, normalisers []Result) ([]Result, error) {
	combined, err := CombineNormalisers(normalisers)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(assays))
	for _, assay := range assays {
		if len(assay.Values) != len(combined.Values) {
			return nil, fmt.Errorf("assay %q has %d replicates, normaliser has %d", assay.ID, len(assay.Values), len(combined.Values))
		}
		values := lo.Map(assay.Values, func(v float64, i int) float64 {
			return v / combined.Values[i]
		})
		results = append(results, Result{ID: assay.ID, Labels: assay.Labels, Values: values})
	}
	return results, nil
}
