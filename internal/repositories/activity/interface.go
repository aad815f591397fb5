package activity

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tacoeaterman/yepagain/internal/repositories/activity Repository

import (
	"context"
)

// Repository defines the interface for the append-only activity history.
// Unlike the bounded tail on the session document, this store keeps
// every entry.
type Repository interface {
	// AppendEntry appends one entry to a session's history
	AppendEntry(ctx context.Context, input *AppendEntryInput) error

	// GetEntries retrieves a range of a session's history in append
	// order
	GetEntries(ctx context.Context, input *GetEntriesInput) (*GetEntriesOutput, error)

	// DeleteLog removes a session's entire history
	DeleteLog(ctx context.Context, input *DeleteLogInput) error
}
