package lobby

import "expvar"

var (
	tablesLive    = expvar.NewInt("tables_live")
	tablesCreated = expvar.NewInt("tables_created_total")
	tablesClosed  = expvar.NewInt("tables_closed_total")
)
