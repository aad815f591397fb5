package game

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	// Lookup / authorization
	ErrSessionNotFound    GameError = "session not found"
	ErrPlayerNotInSession GameError = "player is not in this session"
	ErrNotHost            GameError = "only the host may perform this action"

	// State preconditions
	ErrSessionAlreadyStarted GameError = "session has already started"
	ErrAlreadyStarted        GameError = "the game has already been started"
	ErrSessionNotPlaying     GameError = "session is not in play"
	ErrSessionFinished       GameError = "session has already finished"
	ErrParNotSet             GameError = "par has not been set for this hole"
	ErrCardNotInHand         GameError = "card is not in your hand"
	ErrUnknownCard           GameError = "card is not in the catalog"
	ErrEffectNotFound        GameError = "pending effect not found"
	ErrNoReflectCard         GameError = "no reflect-capable card in hand"
	ErrNoRedirectCard        GameError = "no redirect-capable card in hand"
	ErrHoleNotComplete       GameError = "not every player has scored the current hole"

	// Validation
	ErrInvalidHoleCount   GameError = "total holes must be at least 1"
	ErrInvalidHole        GameError = "hole index out of range"
	ErrInvalidPar         GameError = "par must be between 1 and 10"
	ErrInvalidScore       GameError = "strokes must be between 1 and 30"
	ErrInvalidTargetCount GameError = "this card requires exactly one opponent target"
	ErrInvalidTarget      GameError = "target player is not valid for this play"
	ErrRestrictedPlay     GameError = "this card cannot be played on the last hole"

	// Capacity / exhaustion
	ErrSessionFull             GameError = "session is at maximum capacity"
	ErrPlayerAlreadyInSession  GameError = "player is already in this session"
	ErrInsufficientCards       GameError = "deck cannot cover all hands"
	ErrCodeGenerationExhausted GameError = "could not generate a unique join code"

	// Construction
	ErrNilConfig        GameError = "config cannot be nil"
	ErrNilSessionRepo   GameError = "session repository cannot be nil"
	ErrNilActivityRepo  GameError = "activity repository cannot be nil"
	ErrNilDeckManager   GameError = "deck manager cannot be nil"
	ErrNilFormatter     GameError = "activity formatter cannot be nil"
	ErrNilClock         GameError = "clock cannot be nil"
	ErrNilUUIDGenerator GameError = "UUID generator cannot be nil"
	ErrNilCodeGenerator GameError = "code generator cannot be nil"
)
