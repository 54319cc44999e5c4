package ledger

import "expvar"

var (
	handsQueued  = expvar.NewInt("ledger_hands_queued_total")
	handsWritten = expvar.NewInt("ledger_hands_written_total")
	writeErrors  = expvar.NewInt("ledger_write_errors_total")
	dropped      = expvar.NewInt("ledger_dropped_total")
)
