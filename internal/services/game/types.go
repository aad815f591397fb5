package game

import (
	"github.com/tacoeaterman/yepagain/internal/common/clock"
	"github.com/tacoeaterman/yepagain/internal/common/gamecode"
	"github.com/tacoeaterman/yepagain/internal/common/uuid"
	"github.com/tacoeaterman/yepagain/internal/deck"
	"github.com/tacoeaterman/yepagain/internal/models"
	activityRepo "github.com/tacoeaterman/yepagain/internal/repositories/activity"
	sessionRepo "github.com/tacoeaterman/yepagain/internal/repositories/session"
	feed "github.com/tacoeaterman/yepagain/internal/services/activity"
)

// Config holds configuration for the game service
type Config struct {
	// Maximum number of players per session
	MaxPlayers int

	// Cards dealt to each player at start
	HandSize int

	// Valid par range per hole
	MinPar int
	MaxPar int

	// Valid stroke range per score submission
	MinStrokes int
	MaxStrokes int

	// A bonus card is drawn every BonusHoleInterval completed holes
	BonusHoleInterval int

	// How many join-code candidates to try before giving up
	CodeRetries int

	// How many activity entries the session document keeps for display
	ActivityTail int

	// Repository dependencies
	SessionRepo  sessionRepo.Repository
	ActivityRepo activityRepo.Repository

	// Service dependencies
	DeckManager   *deck.Manager
	Formatter     *feed.Formatter
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	CodeGenerator gamecode.Generator
}

// CreateSessionInput contains parameters for creating a session
type CreateSessionInput struct {
	// HostID is the identity-provider ID of the creating player
	HostID string

	// HostName is the creator's display name
	HostName string

	// SessionName is an optional course/session name
	SessionName string

	// TotalHoles is the number of holes to play (>= 1)
	TotalHoles int
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	Session *models.Session
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	// Code is the 6-character join code
	Code string

	// PlayerID is the identity-provider ID of the joining player
	PlayerID string

	// DisplayName is the joining player's display name
	DisplayName string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	Session *models.Session
}

// LeaveSessionInput contains parameters for leaving a lobby
type LeaveSessionInput struct {
	SessionID string
	PlayerID  string
}

// LeaveSessionOutput contains the result of leaving a lobby
type LeaveSessionOutput struct {
	// Disbanded is true when the host left and the session was deleted
	Disbanded bool

	// Session is the updated session, nil when disbanded
	Session *models.Session
}

// StartSessionInput contains parameters for starting a session
type StartSessionInput struct {
	SessionID string
	PlayerID  string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	Session *models.Session
}

// SetParInput contains parameters for locking a hole's par
type SetParInput struct {
	SessionID string
	PlayerID  string

	// HoleIndex is 0-based
	HoleIndex int

	Par int
}

// SetParOutput contains the result of locking a hole's par
type SetParOutput struct {
	Session *models.Session
}

// SubmitScoreInput contains parameters for recording strokes
type SubmitScoreInput struct {
	SessionID string
	PlayerID  string

	// HoleIndex is 0-based
	HoleIndex int

	Strokes int
}

// SubmitScoreOutput contains the result of recording strokes
type SubmitScoreOutput struct {
	Session *models.Session

	// HoleScore is the derived strokes-minus-par for the hole
	HoleScore int

	// TotalScore is the player's recomputed total
	TotalScore int

	// HoleComplete is true when every player has now scored the
	// session's current hole; clients use it to trigger auto-advance
	HoleComplete bool

	// CurrentHole is the hole the session showed at submission time,
	// used as the auto-advance guard
	CurrentHole int
}

// PlayCardInput contains parameters for playing a card
type PlayCardInput struct {
	SessionID string
	PlayerID  string

	// CardInstanceID identifies the physical copy in the player's hand
	CardInstanceID string

	// TargetPlayerIDs is required (exactly one entry) for
	// single-opponent cards and ignored otherwise
	TargetPlayerIDs []string
}

// PlayCardOutput contains the result of playing a card
type PlayCardOutput struct {
	Session *models.Session

	// Effects are the pending effects created by the play, one per
	// resolved target; empty for self-targeted cards
	Effects []*models.PendingEffect
}

// AcknowledgeCardInput contains parameters for accepting an effect
type AcknowledgeCardInput struct {
	SessionID string
	PlayerID  string
	EffectID  string
}

// AcknowledgeCardOutput contains the result of accepting an effect
type AcknowledgeCardOutput struct {
	Session *models.Session
}

// ReflectCardInput contains parameters for reflecting an effect
type ReflectCardInput struct {
	SessionID string
	PlayerID  string
	EffectID  string
}

// ReflectCardOutput contains the result of reflecting an effect
type ReflectCardOutput struct {
	Session *models.Session

	// Effect is the new pending effect now targeting the original
	// player
	Effect *models.PendingEffect
}

// RedirectCardInput contains parameters for redirecting an effect
type RedirectCardInput struct {
	SessionID string
	PlayerID  string
	EffectID  string

	// NewTargetID is the third player who receives the effect
	NewTargetID string
}

// RedirectCardOutput contains the result of redirecting an effect
type RedirectCardOutput struct {
	Session *models.Session

	// Effect is the re-enqueued pending effect
	Effect *models.PendingEffect
}

// AdvanceHoleInput contains parameters for advancing the session
type AdvanceHoleInput struct {
	SessionID string
	PlayerID  string

	// ExpectedHole is the current hole the caller observed; the
	// advance is a benign no-op if the session has already moved past
	// it. Zero means "whatever the session shows now".
	ExpectedHole int
}

// AdvanceHoleOutput contains the result of advancing the session
type AdvanceHoleOutput struct {
	Session *models.Session

	// Advanced is false when another participant's concurrent call
	// already performed the advance
	Advanced bool

	// Finished is true when the terminal hole completed and the
	// session moved to the finished phase
	Finished bool

	// BonusPlayerID is set when a bonus card was drawn this advance
	BonusPlayerID string

	// BonusCard is the drawn card, nil when no draw happened
	BonusCard *models.Card
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the retrieved session
type GetSessionOutput struct {
	Session *models.Session
}

// GetSessionByCodeInput contains parameters for code lookup
type GetSessionByCodeInput struct {
	Code string
}

// GetSessionByCodeOutput contains the retrieved session
type GetSessionByCodeOutput struct {
	Session *models.Session
}

// LeaderboardEntry represents a single entry in the standings
type LeaderboardEntry struct {
	PlayerID    string
	DisplayName string

	// TotalScore is relative to par; lower is better
	TotalScore int

	// HolesScored is how many holes the player has submitted
	HolesScored int

	// Position is 1-based, winner first
	Position int
}

// GetLeaderboardInput contains parameters for retrieving standings
type GetLeaderboardInput struct {
	SessionID string
}

// GetLeaderboardOutput contains the current standings
type GetLeaderboardOutput struct {
	Session *models.Session
	Entries []LeaderboardEntry
}

// GetActivityHistoryInput contains parameters for reading the full
// activity history
type GetActivityHistoryInput struct {
	SessionID string

	// Start and Stop are inclusive indexes; negative values count from
	// the end (0, -1 returns everything)
	Start int64
	Stop  int64
}

// GetActivityHistoryOutput contains a range of activity entries
type GetActivityHistoryOutput struct {
	Entries []*models.ActivityEntry
}
