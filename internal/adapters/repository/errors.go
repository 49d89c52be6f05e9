package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound  = errors.New("item not found")
	ErrDuplicate = errors.New("item already exists")
)
