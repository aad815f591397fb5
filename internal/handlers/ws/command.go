package ws

import "encoding/json"

// Command is one client request over the socket. Action selects the
// operation; Payload carries its operation-specific fields.
type Command struct {
	// Action names the operation, e.g. "submit_score"
	Action string `json:"action"`

	// RequestID is echoed back on the response so clients can correlate
	RequestID string `json:"requestId,omitempty"`

	// Payload is decoded per action
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is one server reply. Every command gets exactly one response;
// session updates additionally stream as "session" events to all
// subscribers.
type Response struct {
	// Type is "result", "error", or "session"
	Type string `json:"type"`

	// Action echoes the command's action for result and error responses
	Action string `json:"action,omitempty"`

	// RequestID echoes the command's request ID
	RequestID string `json:"requestId,omitempty"`

	// Error is the message for error responses
	Error string `json:"error,omitempty"`

	// Data carries the operation result or the session snapshot
	Data any `json:"data,omitempty"`
}

// Action names accepted over the socket
const (
	ActionCreateSession   = "create_session"
	ActionJoinSession     = "join_session"
	ActionLeaveSession    = "leave_session"
	ActionStartSession    = "start_session"
	ActionSetPar          = "set_par"
	ActionSubmitScore     = "submit_score"
	ActionPlayCard        = "play_card"
	ActionAcknowledgeCard = "acknowledge_card"
	ActionReflectCard     = "reflect_card"
	ActionRedirectCard    = "redirect_card"
	ActionAdvanceHole     = "advance_hole"
	ActionGetSession      = "get_session"
	ActionGetLeaderboard  = "get_leaderboard"
	ActionGetActivity     = "get_activity"
	ActionSubscribe       = "subscribe"
)

type createSessionPayload struct {
	HostName    string `json:"hostName"`
	SessionName string `json:"sessionName"`
	TotalHoles  int    `json:"totalHoles"`
}

type joinSessionPayload struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
}

type sessionOnlyPayload struct {
	SessionID string `json:"sessionId"`
}

type setParPayload struct {
	SessionID string `json:"sessionId"`
	HoleIndex int    `json:"holeIndex"`
	Par       int    `json:"par"`
}

type submitScorePayload struct {
	SessionID string `json:"sessionId"`
	HoleIndex int    `json:"holeIndex"`
	Strokes   int    `json:"strokes"`
}

type playCardPayload struct {
	SessionID       string   `json:"sessionId"`
	CardInstanceID  string   `json:"cardInstanceId"`
	TargetPlayerIDs []string `json:"targetPlayerIds"`
}

type effectPayload struct {
	SessionID string `json:"sessionId"`
	EffectID  string `json:"effectId"`
}

type redirectPayload struct {
	SessionID   string `json:"sessionId"`
	EffectID    string `json:"effectId"`
	NewTargetID string `json:"newTargetId"`
}

type advanceHolePayload struct {
	SessionID    string `json:"sessionId"`
	ExpectedHole int    `json:"expectedHole"`
}

type activityPayload struct {
	SessionID string `json:"sessionId"`
	Start     int64  `json:"start"`
	Stop      int64  `json:"stop"`
}
