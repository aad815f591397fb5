package models

import (
	"time"
)

// PendingEffect is a played card awaiting its target's acknowledgment
// or reaction. It is created atomically with the card play and destroyed
// by exactly one of acknowledge, reflect, or redirect.
type PendingEffect struct {
	// ID is the unique identifier for this effect
	ID string

	// Card is the played card being delivered
	Card *Card

	// PlayedByID is the player who played (or reflected) the card
	PlayedByID string

	// PlayedByName is that player's display name at play time
	PlayedByName string

	// TargetID is the player who must respond
	TargetID string

	// CreatedAt orders effects FIFO within a player's queue
	CreatedAt time.Time
}
