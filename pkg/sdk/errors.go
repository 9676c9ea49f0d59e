package dinerec

import "github.com/kailas-cloud/dinerec/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInputFormat      = domain.ErrInputFormat
	ErrMissingColumn    = domain.ErrMissingColumn
	ErrArtifactMismatch = domain.ErrArtifactMismatch
	ErrInvalidQuery     = domain.ErrInvalidQuery
	ErrNotLoaded        = domain.ErrNotLoaded
)
