package session

import "github.com/tacoeaterman/yepagain/internal/models"

type SaveSessionInput struct {
	Session *models.Session
}

type SaveSessionGuardedInput struct {
	Session *models.Session

	// ExpectedCurrentHole is the hole the caller observed before
	// computing the update; the write is rejected as stale if the
	// stored document has moved past it
	ExpectedCurrentHole int
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionByCodeInput struct {
	Code string
}

type ClaimCodeInput struct {
	Code      string
	SessionID string
}

type DeleteSessionInput struct {
	SessionID string
}

type SubscribeInput struct {
	SessionID string
}
