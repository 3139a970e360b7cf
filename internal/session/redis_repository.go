package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/pkg/redis"
)

const sessionKeyPrefix = "session:"

// RedisRepository stores session records as JSON values with a TTL derived
// from the record's expiry.
type RedisRepository struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisRepository creates a Redis-backed session repository.
func NewRedisRepository(client *redis.Client, defaultTTL time.Duration) *RedisRepository {
	return &RedisRepository{client: client, defaultTTL: defaultTTL}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// GetByID returns the session with the given id, or (nil, nil) when missing.
func (r *RedisRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Save stores the session, expiring it together with the record's expiry.
func (r *RedisRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := r.defaultTTL
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 {
			ttl = remaining
		}
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
