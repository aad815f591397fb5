package models

import (
	"time"
)

// SessionPhase represents the current lifecycle phase of a session
type SessionPhase string

const (
	// SessionPhaseLobby indicates a session is waiting for players to join
	SessionPhaseLobby SessionPhase = "lobby"

	// SessionPhasePlaying indicates a round is in progress
	SessionPhasePlaying SessionPhase = "playing"

	// SessionPhaseFinished indicates the final hole has been completed
	SessionPhaseFinished SessionPhase = "finished"
)

// Session is the root aggregate for one hosted game, from creation
// through completion. Phase transitions are monotonic: lobby -> playing
// -> finished, and CurrentHole only ever increases.
type Session struct {
	// ID is the unique identifier for the session
	ID string

	// Code is the 6-character human-shareable join code
	Code string

	// HostID is the player ID of the creator; immutable for the
	// session's lifetime
	HostID string

	// Name is an optional course/session name chosen by the host
	Name string

	// TotalHoles is the number of holes in the round (>= 1)
	TotalHoles int

	// CurrentHole is 1-based and never exceeds TotalHoles
	CurrentHole int

	// Pars holds per-hole par values, length TotalHoles, defaulted to 3
	Pars []int

	// ParLocked gates score submission: a hole accepts scores only once
	// the host has locked its par
	ParLocked []bool

	// Phase is the current lifecycle phase
	Phase SessionPhase

	// Players maps player ID to participant state
	Players map[string]*Player

	// Deck holds the remaining cards, drawable from the end
	Deck []*Card

	// Discard is the append-only audit trail of played cards
	Discard []*Card

	// ActivityLog keeps the most recent human-readable entries for
	// display; the full history lives in the activity repository
	ActivityLog []string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// Player returns the participant with the given ID, or nil.
func (s *Session) Player(id string) *Player {
	if s.Players == nil {
		return nil
	}
	return s.Players[id]
}

// IsHost reports whether the given player created this session.
func (s *Session) IsHost(id string) bool {
	return id != "" && id == s.HostID
}
