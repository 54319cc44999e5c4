package lobby

import "errors"

var (
	ErrNotFound       = errors.New("table_not_found")
	ErrAlreadyExists  = errors.New("table_exists")
	ErrUnknownVariant = errors.New("unknown_variant")
	ErrNoFreeID       = errors.New("no_free_table_id")
)
