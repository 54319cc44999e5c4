package httptransport

import "expvar"

var (
	metricTablesCreatedHTTP = expvar.NewInt("http_tables_created_total")
	metricTablesClosedHTTP  = expvar.NewInt("http_tables_closed_total")
	metricAdminUnauthorized = expvar.NewInt("http_admin_unauthorized_total")
)
