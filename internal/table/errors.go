package table

import "errors"

var (
	ErrTableFull = errors.New("table_full")
	ErrNotSeated = errors.New("not_seated")
	ErrNoChips   = errors.New("no_chips")
	ErrClosed    = errors.New("table_closed")
	ErrBadTable  = errors.New("invalid_table_config")
)
