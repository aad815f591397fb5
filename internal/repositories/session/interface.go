package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tacoeaterman/yepagain/internal/repositories/session Repository,Subscription

import (
	"context"

	"github.com/tacoeaterman/yepagain/internal/models"
)

// Repository defines the interface for session document persistence.
// The store is shared and eventually consistent; every successful write
// is pushed to subscribers.
type Repository interface {
	// SaveSession persists a session and publishes the update
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// SaveSessionGuarded persists a session only if the stored document
	// still shows the expected current hole and has not finished;
	// returns ErrStaleSession otherwise
	SaveSessionGuarded(ctx context.Context, input *SaveSessionGuardedInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionByCode retrieves a session via the join-code index
	GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error)

	// ClaimCode atomically reserves a join code for a session; returns
	// false when the code is already taken
	ClaimCode(ctx context.Context, input *ClaimCodeInput) (bool, error)

	// DeleteSession removes a session and its join-code index entry
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// Subscribe streams session updates as they are written
	Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error)
}

// Subscription is a live stream of session snapshots
type Subscription interface {
	// Updates yields the merged document after each write; the channel
	// closes when the subscription ends
	Updates() <-chan *models.Session

	// Close ends the subscription
	Close() error
}
