package table

import "expvar"

var (
	handsPlayed     = expvar.NewInt("hands_played_total")
	actionsRejected = expvar.NewInt("actions_rejected_total")
	actionTimeouts  = expvar.NewInt("action_timeouts_total")
	tableFaults     = expvar.NewInt("table_faults_total")
)
