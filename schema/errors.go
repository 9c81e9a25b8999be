package schema

import "errors"

// Sentinel errors surfaced by the analytics core and its loader.
var (
	// ErrInvalidMatrix is returned for ragged grids, values outside {0,1} or bad labels.
	ErrInvalidMatrix = errors.New("invalid matrix")

	// ErrEmptyDataset is returned when a min/max is requested over zero values.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrNotFound is returned for out-of-range indices and unknown labels.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFilter is returned for a filter mode outside all/working/resting.
	ErrInvalidFilter = errors.New("invalid filter mode")

	// ErrLoadFailed is returned when a source cannot be opened or read.
	ErrLoadFailed = errors.New("load failed")
)
