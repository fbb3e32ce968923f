package parser

import "errors"

// ErrInconsistentLayout indicates headers were located with mixed
// orientations (not all in one column or one row). This points at a
// misconfigured read rather than bad data.
var ErrInconsistentLayout = errors.New("headers located with inconsistent layout orientation")

// ErrAssayNotFound indicates a named-assay filter matched none of the
// extracted datasets.
var ErrAssayNotFound = errors.New("assay not found")

// ErrReplicateCountMismatch indicates a horizontal big-table group is
// shorter than the declared replicate count.
var ErrReplicateCountMismatch = errors.New("replicate count mismatch")

// ErrLabelsNotFound indicates the id/Ct column labels could not be
// found below an assay header.
var ErrLabelsNotFound = errors.New("id/Ct column labels not found")

// ErrNoDecorators indicates decorator-anchored discovery was requested
// but the sheet contains no matching decorators.
var ErrNoDecorators = errors.New("no decorators found")
