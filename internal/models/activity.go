package models

import (
	"time"
)

// ActivityEntry is one record in a session's unbounded activity history.
// The session document itself only keeps a bounded tail for display.
type ActivityEntry struct {
	// Message is the human-readable event text
	Message string

	// CreatedAt is when the event happened
	CreatedAt time.Time
}
