// Package qpcrtab reads qPCR Ct datasets out of regularly and
// irregularly structured CSV and Excel datafiles.
package qpcrtab

import (
	"log/slog"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/models"
)

// Options configures a read. The zero value plus DefaultOptions
// defaults describes a single-assay file with "Name"/"Ct" column labels
// and Rotor-Gene style assay headers. Options are passed per call;
// readers keep no state between calls.
type Options struct {
	// Sheet selects a worksheet by name for Excel workbooks. Empty
	// selects the first sheet. Ignored for CSV files.
	Sheet string

	// AssayPattern is either the name of a preset pattern (see
	// parser.AssayPatterns) or a raw regular expression containing a
	// capture group for the assay name.
	AssayPattern string

	// Col is the column scanned for assay headers. After Transpose the
	// index refers to a row of the original file.
	Col int

	// IDLabel and CtLabel are the column labels heading the replicate
	// identifiers and Ct values of each assay block.
	IDLabel string
	CtLabel string

	// Assay filters a multi-dataset extraction down to the dataset
	// with this identifier.
	Assay string

	// Decorator switches header discovery from pattern-based to
	// decorator-anchor-based. In this mode only decorator-anchored
	// datasets are extracted; undecorated datasets present in the
	// sheet are excluded from the result.
	Decorator bool
	// DecoratorKey restricts decorator-anchored discovery to one key
	// (e.g. "normaliser"). Empty accepts any role decorator.
	DecoratorKey string

	// Kind selects a big-table layout (LayoutVertical or
	// LayoutHorizontal). Empty reads single or irregular layouts.
	Kind models.LayoutKind

	// AssayCol, IDCol and CtCol name the big-table columns.
	AssayCol string
	IDCol    string
	CtCol    string

	// Replicates is the fixed group width of a horizontal big table.
	// Required for LayoutHorizontal.
	Replicates int

	// Names supplies group names for horizontal big tables, matched
	// positionally to decorator order.
	Names []string

	// Transpose swaps row and column orientation before header
	// location, for datasets laid out side by side.
	Transpose bool

	// Delimiter overrides CSV delimiter detection when non-zero.
	Delimiter rune

	// Logger receives debug diagnostics such as ignored-dataset
	// counts. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the default read configuration.
func DefaultOptions() Options {
	return Options{
		AssayPattern: "Rotor-Gene",
		IDLabel:      "Name",
		CtLabel:      "Ct",
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) pattern() string {
	if o.AssayPattern == "" {
		return "Rotor-Gene"
	}
	return o.AssayPattern
}
