package types

// query endpoints supported by the escrow querier
const (
	QueryEntry   = "entry"
	QueryEntries = "entries"
	QueryTotals  = "totals"
	QueryParams  = "params"
)
