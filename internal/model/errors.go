package model

import "errors"

// Error kinds surfaced by store operations. Callers match them with errors.Is;
// the wrapped message carries the offending name for display.
var (
	ErrNameConflict   = errors.New("name already exists")
	ErrEmptySelection = errors.New("nothing selected")
	ErrNotFound       = errors.New("not found")
	ErrStorage        = errors.New("storage error")
	ErrValidation     = errors.New("invalid input")
)
