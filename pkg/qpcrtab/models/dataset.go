// Package models defines data structures for qPCR dataset extraction.
package models

import "math"

// Replicate represents one (identifier, Ct) row within a dataset.
type Replicate struct {
	// Label is the replicate identifier (sample name).
	Label string `json:"label"`
	// Ct is the cycle-threshold value. NaN marks a missing or
	// non-numeric measurement.
	Ct float64 `json:"ct"`
	// Raw preserves the original cell text when Ct could not be
	// parsed as a number. Empty for numeric and blank cells.
	Raw string `json:"raw,omitempty"`
}

// Missing reports whether the replicate carries no numeric Ct value.
func (r Replicate) Missing() bool {
	return math.IsNaN(r.Ct)
}

// DefaultEfficiency is the uncalibrated amplification efficiency.
// A dataset with this exact value has never been assigned a computed
// efficiency.
const DefaultEfficiency = 1.0

// Dataset is one logical set of replicate identifier+Ct pairs extracted
// from a datafile. It is called an "assay" in qPCR terminology.
type Dataset struct {
	// ID is the assay name, e.g. "ActinB".
	ID string `json:"id"`
	// Replicates holds the (identifier, Ct) pairs in file order.
	Replicates []Replicate `json:"replicates"`
	// Efficiency is the amplification efficiency used downstream for
	// delta-Ct computation. Defaults to DefaultEfficiency.
	Efficiency float64 `json:"efficiency"`
}

// NewDataset returns an empty dataset with the default efficiency.
func NewDataset(id string) Dataset {
	return Dataset{ID: id, Efficiency: DefaultEfficiency}
}

// N returns the number of replicates.
func (d Dataset) N() int {
	return len(d.Replicates)
}

// Cts returns the Ct values in replicate order.
func (d Dataset) Cts() []float64 {
	cts := make([]float64, len(d.Replicates))
	for i, r := range d.Replicates {
		cts[i] = r.Ct
	}
	return cts
}

// Labels returns the replicate identifiers in replicate order.
func (d Dataset) Labels() []string {
	labels := make([]string, len(d.Replicates))
	for i, r := range d.Replicates {
		labels[i] = r.Label
	}
	return labels
}
