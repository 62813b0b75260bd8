package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"nnx1/internal/model"
)

// SessionCache holds in-progress and completed diagnostic sessions
type SessionCache interface {
	Set(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	// ClaimCompletion reports true to exactly one caller per session
	ClaimCompletion(ctx context.Context, id string) (bool, error)
}

type sessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a session cache; every write refreshes the TTL
func NewSessionCache(client *redis.Client, ttl time.Duration) SessionCache {
	return &sessionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *sessionCache) key(id string) string {
	return "diag:session:" + id
}

func (c *sessionCache) Set(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(session.ID), data, c.ttl).Err()
}

// Get returns nil, nil for unknown or expired sessions
func (c *sessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id), c.completedKey(id)).Err()
}

func (c *sessionCache) completedKey(id string) string {
	return c.key(id) + ":completed"
}

func (c *sessionCache) ClaimCompletion(ctx context.Context, id string) (bool, error) {
	return c.client.SetNX(ctx, c.completedKey(id), 1, c.ttl).Result()
}
