// Package history holds the in-memory conversation log and its export.
package history

import (
	"sync"

	"github.com/diogo/finchat/internal/models"
)

// Log is an append-only, ordered list of conversation entries.
// Entries are never edited or removed once appended.
type Log struct {
	mu      sync.RWMutex
	entries []models.ConversationEntry
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// Append adds an entry at the end of the log
func (l *Log) Append(entry models.ConversationEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of the log in order
func (l *Log) Entries() []models.ConversationEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.ConversationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
