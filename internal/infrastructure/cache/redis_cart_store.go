package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultCartKeyPrefix = "cart:session:"

// RedisCartStore implements cart.Store backed by Redis. Each guest session
// maps to one key holding the JSON-encoded cart; keys expire after the TTL
// so abandoned carts clean themselves up. Writes are plain SETs -
// last-write-wins, with no cross-client conflict detection.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisCartStore creates a cart store with its own Redis client
func NewRedisCartStore(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCartStoreWithClient(client, defaultCartKeyPrefix, ttl, logger), nil
}

// NewRedisCartStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration, logger *zap.Logger) *RedisCartStore {
	if keyPrefix == "" {
		keyPrefix = defaultCartKeyPrefix
	}
	return &RedisCartStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger.Named("cart-store"),
	}
}

// Load returns the stored cart for the session. An absent key or an
// undecodable payload yields the empty cart; only backend failures surface
// as errors.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.Empty(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c, err := decodeCart(data)
	if err != nil {
		s.logger.Warn("discarding malformed stored cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return cart.Empty(), nil
	}
	return c, nil
}

// Save persists the cart for the session, refreshing its TTL
func (s *RedisCartStore) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := encodeCart(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+sessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the stored cart for the session
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
