package ws

import "expvar"

var (
	connectionsActive = expvar.NewInt("ws_connections_active")
	slowClients       = expvar.NewInt("ws_slow_clients_total")
)
