package game

import "context"

// Service defines the command surface consumed by the presentation
// layer. Every operation validates against the current session snapshot
// and applies a single document write; nothing here blocks on another
// player's action.
type Service interface {
	// CreateSession creates a new session with a unique join code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a player to a lobby via its join code
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// LeaveSession removes a player from a lobby before play starts
	LeaveSession(ctx context.Context, input *LeaveSessionInput) (*LeaveSessionOutput, error)

	// StartSession deals hands and moves the session into play
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// SetPar locks a hole's par, opening it for score submission
	SetPar(ctx context.Context, input *SetParInput) (*SetParOutput, error)

	// SubmitScore records a player's strokes for a hole
	SubmitScore(ctx context.Context, input *SubmitScoreInput) (*SubmitScoreOutput, error)

	// PlayCard plays a card from a player's hand onto its targets
	PlayCard(ctx context.Context, input *PlayCardInput) (*PlayCardOutput, error)

	// AcknowledgeCard accepts a pending card effect
	AcknowledgeCard(ctx context.Context, input *AcknowledgeCardInput) (*AcknowledgeCardOutput, error)

	// ReflectCard bounces a pending effect back at the player who
	// played it, consuming a reflect-capable card
	ReflectCard(ctx context.Context, input *ReflectCardInput) (*ReflectCardOutput, error)

	// RedirectCard reroutes a pending effect to a third player,
	// consuming a redirect-capable card
	RedirectCard(ctx context.Context, input *RedirectCardInput) (*RedirectCardOutput, error)

	// AdvanceHole moves the session to the next hole (or finishes it);
	// idempotent under concurrent invocation
	AdvanceHole(ctx context.Context, input *AdvanceHoleInput) (*AdvanceHoleOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// GetSessionByCode retrieves a session by join code
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*GetSessionByCodeOutput, error)

	// GetLeaderboard returns the current standings, winner first
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// GetActivityHistory returns a range of the full activity history
	GetActivityHistory(ctx context.Context, input *GetActivityHistoryInput) (*GetActivityHistoryOutput, error)
}
