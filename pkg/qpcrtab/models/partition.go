package models

// Role classifies a dataset as an assay-of-interest or a normalizer
// (reference/housekeeping assay).
type Role string

const (
	// RoleAssay marks a dataset as an assay-of-interest. This is the
	// default for undecorated datasets.
	RoleAssay Role = "assay"
	// RoleNormaliser marks a dataset as a normalizer.
	RoleNormaliser Role = "normaliser"
)

// Partition splits extracted datasets by role. Every extracted dataset
// appears in exactly one of the two slices.
type Partition struct {
	// Assays holds the assays-of-interest in extraction order.
	Assays []Dataset `json:"assays"`
	// Normalisers holds the normalizer assays in extraction order.
	Normalisers []Dataset `json:"normalisers"`
}

// Add appends a dataset to the slice matching its role. Unknown roles
// default to assay-of-interest.
func (p *Partition) Add(d Dataset, role Role) {
	if role == RoleNormaliser {
		p.Normalisers = append(p.Normalisers, d)
		return
	}
	p.Assays = append(p.Assays, d)
}

// Merge appends all datasets of another partition, preserving order.
func (p *Partition) Merge(other Partition) {
	p.Assays = append(p.Assays, other.Assays...)
	p.Normalisers = append(p.Normalisers, other.Normalisers...)
}

// Total returns the number of datasets across both roles.
func (p Partition) Total() int {
	return len(p.Assays) + len(p.Normalisers)
}

// LayoutKind identifies the file-layout family an extractor handles.
type LayoutKind string

const (
	// LayoutSingle is a regular table holding exactly one dataset.
	LayoutSingle LayoutKind = "single"
	// LayoutIrregular is a sheet with one or more header-introduced
	// dataset blocks stacked vertically or horizontally.
	LayoutIrregular LayoutKind = "irregular"
	// LayoutVertical is a single flat table split by an assay column.
	LayoutVertical LayoutKind = "vertical"
	// LayoutHorizontal is a single table with side-by-side replicate
	// column groups.
	LayoutHorizontal LayoutKind = "horizontal"
)
