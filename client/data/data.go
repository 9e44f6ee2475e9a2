package data

import "fmt"

// HistoryEntry is one recorded interactive command.
type HistoryEntry struct {
	// Command is the literal command text. Multi-line commands contain real
	// embedded newlines, with any on-disk escaping already decoded.
	Command string
	// When is the Unix timestamp (in seconds) at which the command was run,
	// or nil if the source history did not record one. Kept as a pointer so
	// that "no timestamp" and "timestamp 0" stay distinguishable.
	When *int64
}

func (e HistoryEntry) String() string {
	if e.When == nil {
		return fmt.Sprintf("HistoryEntry{Command: %#v}", e.Command)
	}
	return fmt.Sprintf("HistoryEntry{Command: %#v, When: %d}", e.Command, *e.When)
}
