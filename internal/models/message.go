package models

import "time"

// Role values used in transcripts
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PricePoint is one monthly close in a chart series
type PricePoint struct {
	Period string  `json:"period"` // "YYYY-MM"
	Price  float64 `json:"price"`
}

// ChartPayload carries the data needed to draw a price history chart.
// It is produced only by the stock command.
type ChartPayload struct {
	Symbol string       `json:"symbol"`
	Series []PricePoint `json:"series,omitempty"`
}

// Response is what the resolver hands back for a single user message
type Response struct {
	Text  string
	Chart *ChartPayload
}

// HasChart reports whether the response carries a non-empty series
func (r Response) HasChart() bool {
	return r.Chart != nil && len(r.Chart.Series) > 0
}

// ConversationEntry is a single line in the chat log.
// Entries are values; once appended to a log they are never modified.
type ConversationEntry struct {
	Text          string        `json:"text"`
	FromAssistant bool          `json:"from_assistant"`
	Chart         *ChartPayload `json:"chart,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Role returns "assistant" or "user"
func (e ConversationEntry) Role() string {
	if e.FromAssistant {
		return RoleAssistant
	}
	return RoleUser
}

// NewUserEntry builds an entry for text typed by the user
func NewUserEntry(text string) ConversationEntry {
	return ConversationEntry{
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewAssistantEntry builds an entry from a resolved response
func NewAssistantEntry(resp Response) ConversationEntry {
	return ConversationEntry{
		Text:          resp.Text,
		FromAssistant: true,
		Chart:         resp.Chart,
		Timestamp:     time.Now(),
	}
}
