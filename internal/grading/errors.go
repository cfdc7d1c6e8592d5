package grading

import "errors"

var (
	// ErrEmptyRubric is returned when a grading request carries no criteria.
	// It is raised before any oracle call; the caller can fix the rubric and retry.
	ErrEmptyRubric = errors.New("rubric has no criteria")

	// ErrInvalidRequest wraps field-level validation failures on a Request.
	ErrInvalidRequest = errors.New("invalid grading request")

	// ErrOracleUnavailable is returned once the oracle retry budget is
	// exhausted. Nothing is persisted for the attempt.
	ErrOracleUnavailable = errors.New("grading oracle unavailable")
)
