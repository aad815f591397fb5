package models

import (
	"time"
)

// Player represents one participant in a session
type Player struct {
	// ID is the identity-provider-assigned player ID
	ID string

	// DisplayName is the name shown to other players
	DisplayName string

	// IsHost is true for exactly one player per session, fixed at
	// creation time
	IsHost bool

	// Hand holds the cards currently held, dealt at the configured hand
	// size; grows only via bonus draws, shrinks via plays and reactions
	Hand []*Card

	// Strokes holds raw stroke counts indexed by hole; 0 means the
	// player has not submitted for that hole (valid strokes are >= 1)
	Strokes []int

	// HoleScores holds strokes minus par per hole, valid wherever
	// Strokes is set
	HoleScores []int

	// TotalScore is the cached sum of HoleScores, recomputed on every
	// score mutation
	TotalScore int

	// PendingAcknowledgments is the FIFO queue of card effects awaiting
	// this player's response
	PendingAcknowledgments []*PendingEffect

	// JoinedAt is when the player joined the session
	JoinedAt time.Time
}

// HasScored reports whether the player has submitted strokes for the
// given 0-based hole index.
func (p *Player) HasScored(holeIndex int) bool {
	return holeIndex >= 0 && holeIndex < len(p.Strokes) && p.Strokes[holeIndex] > 0
}
