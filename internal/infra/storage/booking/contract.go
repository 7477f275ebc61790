package booking

import "github.com/beautylounge/salon-booking-service/pkg/dbmetrics"

// Reuse the dbmetrics interfaces so the repository works with both *sql.DB
// and the instrumented wrapper.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
