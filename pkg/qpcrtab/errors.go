package qpcrtab

import (
	"errors"

	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/grid"
	"github.com/hjdietz/qpcrtab-go/pkg/qpcrtab/parser"
)

// The full error taxonomy of the reader, re-exported here so callers
// can test with errors.Is against a single package. All failures are
// deterministic functions of input and configuration; none warrant a
// retry.
var (
	// ErrUnreadableSource: the file or sheet cannot be parsed as
	// tabular data.
	ErrUnreadableSource = grid.ErrUnreadableSource
	// ErrInconsistentLayout: headers were located with mixed
	// orientation.
	ErrInconsistentLayout = parser.ErrInconsistentLayout
	// ErrAssayNotFound: a named-assay filter matched nothing.
	ErrAssayNotFound = parser.ErrAssayNotFound
	// ErrReplicateCountMismatch: a horizontal big-table group is
	// shorter than the declared replicate count.
	ErrReplicateCountMismatch = parser.ErrReplicateCountMismatch
)

// ErrMultipleDatasets indicates a single-dataset read found more than
// one dataset. Use ReadMulti, or select one with Options.Assay.
var ErrMultipleDatasets = errors.New("multiple datasets found in single-dataset mode")

// ErrNoDatasets indicates a read found no datasets at all.
var ErrNoDatasets = errors.New("no datasets found")
