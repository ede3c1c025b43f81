package online

import "errors"

var (
	// ErrNoPatterns indicates a matcher was requested for an empty pattern
	// list.
	ErrNoPatterns = errors.New("online: no patterns")

	// ErrDuplicatePattern indicates the same *nfa.NFA was passed twice.
	// Results are keyed by pattern, so each must be distinct.
	ErrDuplicatePattern = errors.New("online: duplicate pattern")

	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("online: invalid config")
)
