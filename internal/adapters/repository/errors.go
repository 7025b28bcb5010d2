package repository

import "errors"

// Sentinel kinds for archive errors.
var (
	ErrNotFound     = errors.New("tournament not archived")
	ErrEmptyID      = errors.New("tournament ID must not be empty")
	ErrInvalidLimit = errors.New("invalid list limit")
	ErrDisabled     = errors.New("tournament archive is disabled")
)
