package cart

import "context"

// Store persists one cart per guest session in a key-value backend.
//
// Load must be fail-safe with respect to stored data: a missing or
// undecodable value yields the canonical empty cart, never an error. Errors
// are reserved for backend failures (e.g. connection loss). Implementations
// must recompute totals from the deserialized items rather than trusting
// stored derived fields.
//
// The contract is last-write-wins: no cross-session merge or concurrent
// modification detection is provided.
type Store interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, c *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
