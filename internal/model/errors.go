package model

import "errors"

var (
	// ErrSummaryFinalized is returned when the content of a final summary
	// is about to be replaced.
	ErrSummaryFinalized = errors.New("cannot update a finalized summary")

	// ErrAlreadyFinal is returned when Finalize is called twice.
	ErrAlreadyFinal = errors.New("summary is already finalized")

	// ErrInvalidMessage is returned for an inconsistent role/kind
	// combination. It indicates a caller bug, not a runtime condition.
	ErrInvalidMessage = errors.New("invalid chat message")
)
