package model

import "errors"

// Sentinel errors for domain model validation.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidProject indicates that a project does not satisfy the
	// required shape: a non-empty tag, a sample map, and an environment
	// map.
	ErrInvalidProject = errors.New("invalid project")

	// ErrEmptyRunHistory indicates that a program has no recorded runs, so
	// no activity time window can be derived for it.
	ErrEmptyRunHistory = errors.New("program has no runs")

	// ErrSparseRunHistory indicates that a program's run indices are not
	// contiguous from 1, so the last run is not well-defined. Run maps are
	// keyed by stringified 1-based indices; removing or reordering runs
	// breaks selection and is reported instead of repaired.
	ErrSparseRunHistory = errors.New("run indices are not contiguous")
)
