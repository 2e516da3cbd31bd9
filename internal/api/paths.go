// Package api provides the quote service client and the payload shaping for it.
package api

// GJSON paths for extracting values from quote service responses.
// Field names contain dots, which gjson requires escaped.
const (
	// Throttling markers; either one at the top level means "slow down"
	PathRateLimitNote = "Note"
	PathRateLimitInfo = "Information"

	// Quote object and its fields (relative to the quote object)
	PathQuote              = "Global Quote"
	PathQuoteSymbol        = `01\. symbol`
	PathQuoteHigh          = `03\. high`
	PathQuoteLow           = `04\. low`
	PathQuotePrice         = `05\. price`
	PathQuoteChange        = `09\. change`
	PathQuoteChangePercent = `10\. change percent`

	// Monthly series: object keyed by "YYYY-MM-DD", newest first
	PathMonthlySeries = "Monthly Time Series"
	PathSeriesClose   = `4\. close`
)
