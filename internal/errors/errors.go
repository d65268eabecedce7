package gerr

import "errors"

var (
	// ErrSourceUnavailable is returned when the document store can't be
	// reached or the bulk fetch times out. Halts the load, no retry here.
	ErrSourceUnavailable = errors.New("product source unavailable")

	// ErrEmptyResult signals that category/tier/date filtering left no
	// products. Distinct from a failure so the caller can render an
	// empty state instead of an error.
	ErrEmptyResult = errors.New("no products match the requested filters")

	ErrBadTimeRange = errors.New("malformed time range")
)
