// Package models contains data types and constants for finchat.
package models

// Endpoints for the quote service (Alpha Vantage compatible)
const (
	DefaultBaseURL = "https://www.alphavantage.co"
	QueryPath      = "/query"
)

// Query function names
const (
	FunctionGlobalQuote   = "GLOBAL_QUOTE"
	FunctionMonthlySeries = "TIME_SERIES_MONTHLY"
)

// DefaultHistoryMonths is the number of monthly closes attached to a chart
const DefaultHistoryMonths = 12

// DefaultAPIKey is the public demo key accepted by the quote service
const DefaultAPIKey = "demo"

// Quote is a snapshot of the current trading day for one symbol
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	ChangePercent string // passed through verbatim, e.g. "1.69%"
	High          float64
	Low           float64
}

// IsUp reports whether the change is non-negative
func (q *Quote) IsUp() bool {
	return q.Change >= 0
}

// DefaultHeaders returns the headers sent with every quote request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "finchat/1.0",
	}
}
