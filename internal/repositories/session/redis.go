package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/tacoeaterman/yepagain/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	codeKeyPrefix    = "session:code:"
	updatesKeyPrefix = "session:updates:"

	// Buffered so a slow subscriber drops updates instead of blocking
	// the pump; the next write carries the full document anyway
	subscriptionBuffer = 8
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrStaleSession is returned by SaveSessionGuarded when another writer
// advanced the session first; callers treat it as a benign no-op
var ErrStaleSession = errors.New("session changed since it was read")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func codeKey(code string) string {
	return codeKeyPrefix + strings.ToUpper(code)
}

func updatesChannel(id string) string {
	return updatesKeyPrefix + id
}

// SaveSession persists a session to Redis and publishes the new document
// to subscribers.
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, sessionKey(input.Session.ID), data, 0)
	if input.Session.Code != "" {
		// Keep the join-code index pointing at the session; the claim
		// happens separately via ClaimCode at creation time
		pipe.Set(ctx, codeKey(input.Session.Code), input.Session.ID, 0)
	}
	pipe.Publish(ctx, updatesChannel(input.Session.ID), data)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// SaveSessionGuarded persists a session under an optimistic-concurrency
// guard: the write succeeds only if the stored document still shows the
// expected current hole and is not already finished. A competing writer
// invalidates the transaction and the caller gets ErrStaleSession.
func (r *redisRepository) SaveSessionGuarded(ctx context.Context, input *SaveSessionGuardedInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	data, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionKey(input.Session.ID)

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get session: %w", err)
		}

		var current models.Session
		if err := json.Unmarshal([]byte(stored), &current); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		if current.CurrentHole != input.ExpectedCurrentHole || current.Phase == models.SessionPhaseFinished {
			return ErrStaleSession
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.Publish(ctx, updatesChannel(input.Session.ID), data)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleSession
	}
	return err
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	data, err := r.client.Get(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetSessionByCode retrieves a session via the join-code index
func (r *redisRepository) GetSessionByCode(ctx context.Context, input *GetSessionByCodeInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	sessionID, err := r.client.Get(ctx, codeKey(input.Code)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to look up join code: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// ClaimCode atomically reserves a join code for a session
func (r *redisRepository) ClaimCode(ctx context.Context, input *ClaimCodeInput) (bool, error) {
	if input == nil || input.Code == "" || input.SessionID == "" {
		return false, errors.New("input, code and session ID cannot be empty")
	}

	claimed, err := r.client.SetNX(ctx, codeKey(input.Code), input.SessionID, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim join code: %w", err)
	}

	return claimed, nil
}

// DeleteSession removes a session and its join-code index entry
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	// Get the session first for its join code
	session, err := r.GetSession(ctx, &GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, sessionKey(input.SessionID))
	if session.Code != "" {
		pipe.Del(ctx, codeKey(session.Code))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// Subscribe streams session updates via Redis pub/sub
func (r *redisRepository) Subscribe(ctx context.Context, input *SubscribeInput) (Subscription, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	pubsub := r.client.Subscribe(ctx, updatesChannel(input.SessionID))

	// Force the subscription to be established before returning so a
	// caller never misses a write it triggers next
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to session updates: %w", err)
	}

	sub := &redisSubscription{
		pubsub:  pubsub,
		updates: make(chan *models.Session, subscriptionBuffer),
	}
	go sub.pump()

	return sub, nil
}

// redisSubscription adapts a Redis pub/sub channel to Subscription
type redisSubscription struct {
	pubsub  *redis.PubSub
	updates chan *models.Session
}

func (s *redisSubscription) pump() {
	defer close(s.updates)
	for msg := range s.pubsub.Channel() {
		var session models.Session
		if err := json.Unmarshal([]byte(msg.Payload), &session); err != nil {
			continue
		}
		select {
		case s.updates <- &session:
		default:
			// Drop when the consumer lags; snapshots are complete, so
			// the next one supersedes this one
		}
	}
}

func (s *redisSubscription) Updates() <-chan *models.Session {
	return s.updates
}

func (s *redisSubscription) Close() error {
	return s.pubsub.Close()
}
