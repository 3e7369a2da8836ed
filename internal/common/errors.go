// Package common provides shared utilities used across all features
package common

import "errors"

// Error taxonomy for the pricing core.
//
// Pure-math errors (ErrInvalidArgument, ErrDivisionByZero) propagate to the
// direct caller. ErrNotFound is a typed failure for unknown pools or hook
// programs. ErrVenueUnavailable is recovered at the aggregator boundary:
// a failed or timed-out venue is skipped, never surfaced as a hard failure
// of the whole aggregation.
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrVenueUnavailable = errors.New("venue unavailable")
)
