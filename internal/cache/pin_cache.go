package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PinCache reserves game PINs so two games never share one
type PinCache interface {
	Reserve(ctx context.Context, pin, gameID string) (bool, error)
	Bind(ctx context.Context, pin, gameID string) error
	Lookup(ctx context.Context, pin string) (string, error)
	Release(ctx context.Context, pin string) error
}

type pinCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPinCache creates a new PIN cache
func NewPinCache(client *redis.Client) PinCache {
	return &pinCache{
		client: client,
		ttl:    24 * time.Hour, // Reservations expire after 24h
	}
}

func (c *pinCache) key(pin string) string {
	return fmt.Sprintf("partida:pin:%s", pin)
}

// Reserve claims pin if nobody holds it. gameID may be a placeholder until Bind.
func (c *pinCache) Reserve(ctx context.Context, pin, gameID string) (bool, error) {
	return c.client.SetNX(ctx, c.key(pin), gameID, c.ttl).Result()
}

// Bind points an already reserved pin at its stored game
func (c *pinCache) Bind(ctx context.Context, pin, gameID string) error {
	return c.client.Set(ctx, c.key(pin), gameID, c.ttl).Err()
}

// Lookup returns the game id behind pin, or "" if unknown
func (c *pinCache) Lookup(ctx context.Context, pin string) (string, error) {
	id, err := c.client.Get(ctx, c.key(pin)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return id, err
}

func (c *pinCache) Release(ctx context.Context, pin string) error {
	return c.client.Del(ctx, c.key(pin)).Err()
}
