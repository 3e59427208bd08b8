package services

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable means the backing store could not be reached or
	// returned a driver-level error.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrAuthorResolutionFailed means a comment's author reference did not
	// resolve, or its lookup errored or timed out.
	ErrAuthorResolutionFailed = errors.New("author resolution failed")

	ErrUnauthorized  = errors.New("unauthorized")
	ErrNotFound      = errors.New("not found")
	ErrEmptyComment  = errors.New("comment is empty")
	ErrAuthorMissing = errors.New("author does not exist")
)

// AggregationError is the single failure value returned by the photo
// aggregation path. errors.Is matches both Kind and the underlying cause.
type AggregationError struct {
	Kind      error
	CommentID string // set for ErrAuthorResolutionFailed
	Err       error
}

func (e *AggregationError) Error() string {
	if e.CommentID != "" {
		return fmt.Sprintf("%v: comment %s: %v", e.Kind, e.CommentID, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *AggregationError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
