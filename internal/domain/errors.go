package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInputFormat signals raw input or a persisted artifact that cannot be parsed.
	ErrInputFormat = errors.New("input format error")
	// ErrMissingColumn signals a raw header without a required column.
	ErrMissingColumn = fmt.Errorf("%w: missing column", ErrInputFormat)
	// ErrArtifactMismatch signals cleaned table, feature matrix and encoder that disagree.
	ErrArtifactMismatch = fmt.Errorf("%w: artifact mismatch", ErrInputFormat)
	// ErrInvalidQuery signals a user query that violates a caller precondition.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrNotLoaded signals a query issued before the artifact bundle was loaded.
	ErrNotLoaded = errors.New("artifacts not loaded")
)

// ColumnError reports which required column is absent from the raw header.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s %q", ErrMissingColumn.Error(), e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// NewMissingColumn creates a missing column error.
func NewMissingColumn(column string) error {
	return &ColumnError{Column: column}
}
