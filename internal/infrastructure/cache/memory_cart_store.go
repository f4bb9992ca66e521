package cache

import (
	"context"
	"sync"

	"github.com/guesthub/backend/internal/domain/cart"
	"go.uber.org/zap"
)

// MemoryCartStore implements cart.Store with an in-process map.
// This is suitable for single-instance deployments and for tests;
// distributed deployments should use RedisCartStore.
type MemoryCartStore struct {
	mu     sync.RWMutex
	carts  map[string][]byte
	logger *zap.Logger
}

// NewMemoryCartStore creates a new in-memory cart store
func NewMemoryCartStore(logger *zap.Logger) *MemoryCartStore {
	return &MemoryCartStore{
		carts:  make(map[string][]byte),
		logger: logger.Named("cart-store"),
	}
}

// Load returns the stored cart for the session, or the empty cart when no
// value exists or the stored value cannot be decoded.
func (s *MemoryCartStore) Load(_ context.Context, sessionID string) (*cart.Cart, error) {
	s.mu.RLock()
	data, ok := s.carts[sessionID]
	s.mu.RUnlock()

	if !ok {
		return cart.Empty(), nil
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

// Save persists the cart for the session
func (s *MemoryCartStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	data, err := encodeCart(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.carts[sessionID] = data
	s.mu.Unlock()
	return nil
}

// Delete removes the stored cart for the session
func (s *MemoryCartStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.carts, sessionID)
	s.mu.Unlock()
	return nil
}

// Corrupt overwrites the stored payload for a session with raw bytes.
// Test hook for exercising the malformed-data recovery path.
func (s *MemoryCartStore) Corrupt(sessionID string, data []byte) {
	s.mu.Lock()
	s.carts[sessionID] = data
	s.mu.Unlock()
}

// Ensure MemoryCartStore implements cart.Store
var _ cart.Store = (*MemoryCartStore)(nil)
