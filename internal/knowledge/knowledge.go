// Package knowledge holds the ordered trigger-to-answer table the assistant answers from.
package knowledge

import (
	"strings"
)

// Entry maps a lowercase trigger phrase to a fixed answer
type Entry struct {
	Trigger string `yaml:"trigger"`
	Answer  string `yaml:"answer"`
}

// Base is an ordered list of entries. Declaration order decides which
// entry wins a substring match, so it is a slice and never a map.
type Base struct {
	entries []Entry
	index   map[string]int
}

// New builds a Base from entries in the given order. Triggers are
// lowercased and trimmed; a repeated trigger keeps its first position.
func New(entries []Entry) *Base {
	b := &Base{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		b.add(e)
	}
	return b
}

func (b *Base) add(e Entry) bool {
	trigger := normalize(e.Trigger)
	if trigger == "" {
		return false
	}
	if _, exists := b.index[trigger]; exists {
		return false
	}
	b.index[trigger] = len(b.entries)
	b.entries = append(b.entries, Entry{Trigger: trigger, Answer: e.Answer})
	return true
}

// Extend returns a new Base with extra entries appended after the existing
// ones, plus the triggers that were skipped because they already existed.
func (b *Base) Extend(extra []Entry) (*Base, []string) {
	out := New(b.entries)
	var skipped []string
	for _, e := range extra {
		if !out.add(e) {
			skipped = append(skipped, e.Trigger)
		}
	}
	return out, skipped
}

// Entries returns a copy of the entries in precedence order
func (b *Base) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries
func (b *Base) Len() int {
	return len(b.entries)
}

// Exact looks up a message that equals a trigger after trimming and lowercasing
func (b *Base) Exact(message string) (Entry, bool) {
	i, ok := b.index[normalize(message)]
	if !ok {
		return Entry{}, false
	}
	return b.entries[i], true
}

// Contains returns the first entry, in declaration order, whose trigger
// appears inside the message
func (b *Base) Contains(message string) (Entry, bool) {
	msg := normalize(message)
	if msg == "" {
		return Entry{}, false
	}
	for _, e := range b.entries {
		if strings.Contains(msg, e.Trigger) {
			return e, true
		}
	}
	return Entry{}, false
}

// Overlap records a trigger that is a substring of another trigger.
// The outer trigger can never win a substring match if Shadowing comes first.
type Overlap struct {
	Inner string
	Outer string
	// Shadowing is true when Inner is declared before Outer
	Shadowing bool
}

// Overlaps lists every pair where one trigger contains another
func (b *Base) Overlaps() []Overlap {
	var out []Overlap
	for i, inner := range b.entries {
		for j, outer := range b.entries {
			if i == j {
				continue
			}
			if strings.Contains(outer.Trigger, inner.Trigger) {
				out = append(out, Overlap{
					Inner:     inner.Trigger,
					Outer:     outer.Trigger,
					Shadowing: i < j,
				})
			}
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
