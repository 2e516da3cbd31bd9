package assistant

import (
	"fmt"

	"github.com/diogo/finchat/internal/models"
)

// Fixed reply texts
const (
	FallbackMessage = "I'm not sure about that. Try asking \"what is a stock\", \"how to start investing\", " +
		"or type \"stock AAPL\" for a live quote. Type \"help\" to see everything I know."
	RateLimitMessage = "API rate limit reached. Please wait a minute and try again."
	ErrorMessage     = "Sorry, I encountered an error processing your request. Please try again."
)

// Direction glyphs for the quote summary
const (
	GlyphUp   = "📈"
	GlyphDown = "📉"
)

// StockCommand is the command word that triggers a live lookup
const StockCommand = "stock"

// Prefixes that mark a definition-style question
const (
	prefixWhatIs  = "what is"
	prefixExplain = "explain"
)

// NotFoundMessage is the reply for a symbol the quote service does not know
func NotFoundMessage(symbol string) string {
	return fmt.Sprintf("Could not find stock data for %s. Check the ticker symbol and try again.", symbol)
}

// FetchFailedMessage is the reply for transport or payload failures
func FetchFailedMessage(symbol string) string {
	return fmt.Sprintf("Failed to fetch %s data. Please try again later.", symbol)
}

// ExplainPrefix is prepended to definition-style answers
func ExplainPrefix(term string) string {
	return fmt.Sprintf("I'll explain %s. ", term)
}

// FormatQuote renders the fixed quote summary template
func FormatQuote(q *models.Quote) string {
	glyph := GlyphUp
	if !q.IsUp() {
		glyph = GlyphDown
	}
	return fmt.Sprintf("%s %s: $%.2f\nChange: %.2f (%s)\nDay high: $%.2f\nDay low: $%.2f",
		glyph, q.Symbol, q.Price, q.Change, q.ChangePercent, q.High, q.Low)
}
