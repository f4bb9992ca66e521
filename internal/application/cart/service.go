// Package cart provides the session-scoped cart engine: every mutation loads
// the persisted cart, applies the change, and writes the result back, so the
// stored value always reflects the latest totals.
package cart

import (
	"context"
	"fmt"

	"github.com/guesthub/backend/internal/domain/cart"
	"go.uber.org/zap"
)

// Service owns cart mutations for guest sessions. The domain aggregate is
// never handed out for external mutation; callers go through this surface.
type Service struct {
	store  cart.Store
	logger *zap.Logger
}

// NewService creates a new cart Service
func NewService(store cart.Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.Named("cart"),
	}
}

// load fetches the session's cart, falling back to the empty cart when the
// backend fails. Corrupt stored data is already handled inside the store;
// a backend error here must not take the ordering flow down with it.
func (s *Service) load(ctx context.Context, sessionID string) *cart.Cart {
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		s.logger.Warn("cart load failed, starting from empty cart",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return cart.Empty()
	}
	return c
}

func (s *Service) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		s.logger.Error("cart save failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Get returns the current cart snapshot for the session
func (s *Service) Get(ctx context.Context, sessionID string) *cart.Cart {
	return s.load(ctx, sessionID)
}

// AddItem adds one unit of the candidate to the session's cart
func (s *Service) AddItem(ctx context.Context, sessionID string, cand cart.Candidate) (*cart.Cart, error) {
	c := s.load(ctx, sessionID)
	c.AddItem(cand)
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem removes the line identified by key from the session's cart.
// Removing a missing line is not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, key cart.LineKey) (*cart.Cart, error) {
	c := s.load(ctx, sessionID)
	c.RemoveLine(key)
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the absolute quantity of a line; non-positive
// quantities remove it. Updating a missing line is not an error.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, key cart.LineKey, quantity int64) (*cart.Cart, error) {
	c := s.load(ctx, sessionID)
	c.UpdateQuantity(key, quantity)
	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear resets the session's cart to empty and removes the stored value
func (s *Service) Clear(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.logger.Error("cart delete failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return cart.Empty(), nil
}

// QuantityInCart returns the quantity of an item across all its lines,
// regardless of notes
func (s *Service) QuantityInCart(ctx context.Context, sessionID, itemID string) int64 {
	return s.load(ctx, sessionID).QuantityOf(itemID)
}
