package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tacoeaterman/yepagain/internal/models"
)

const (
	// Key prefix for Redis
	activityKeyPrefix = "session:activity:"
)

// Config holds configuration for the Redis activity repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed activity repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func activityKey(sessionID string) string {
	return activityKeyPrefix + sessionID
}

// AppendEntry appends one entry to a session's history
func (r *redisRepository) AppendEntry(ctx context.Context, input *AppendEntryInput) error {
	if input == nil || input.Entry == nil {
		return errors.New("input and entry cannot be nil")
	}

	if input.SessionID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(input.Entry)
	if err != nil {
		return fmt.Errorf("failed to marshal activity entry: %w", err)
	}

	if err := r.client.RPush(ctx, activityKey(input.SessionID), data).Err(); err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}

	return nil
}

// GetEntries retrieves a range of a session's history in append order
func (r *redisRepository) GetEntries(ctx context.Context, input *GetEntriesInput) (*GetEntriesOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	raw, err := r.client.LRange(ctx, activityKey(input.SessionID), input.Start, input.Stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity entries: %w", err)
	}

	entries := make([]*models.ActivityEntry, 0, len(raw))
	for _, item := range raw {
		var entry models.ActivityEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return &GetEntriesOutput{
		Entries: entries,
	}, nil
}

// DeleteLog removes a session's entire history
func (r *redisRepository) DeleteLog(ctx context.Context, input *DeleteLogInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	if err := r.client.Del(ctx, activityKey(input.SessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete activity log: %w", err)
	}

	return nil
}
