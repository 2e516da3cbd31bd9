// Package assistant turns a chat message into a reply.
package assistant

import "strings"

// ParsedCommand is the first word of a message and the rest of it
type ParsedCommand struct {
	Command string // first token, lowercased; "" for blank input
	Args    string // remaining tokens joined by single spaces
}

// Parse splits raw input into a command token and its arguments.
// Input is trimmed and lowercased; runs of whitespace count as one separator.
func Parse(raw string) ParsedCommand {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return ParsedCommand{}
	}
	return ParsedCommand{
		Command: fields[0],
		Args:    strings.Join(fields[1:], " "),
	}
}

// FirstArg returns the first whitespace token of Args
func (p ParsedCommand) FirstArg() string {
	fields := strings.Fields(p.Args)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
