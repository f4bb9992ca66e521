package cache

import (
	"encoding/json"

	"github.com/guesthub/backend/internal/domain/cart"
)

// encodeCart serializes a cart for storage. Derived totals are stored too,
// but only as an advisory cache; decodeCart never trusts them.
func encodeCart(c *cart.Cart) ([]byte, error) {
	return json.Marshal(c)
}

// decodeCart deserializes a stored cart payload. Totals are always
// recomputed from the items: stored totals may be stale or tampered with,
// and the empty cart is the fail-safe result for undecodable payloads.
func decodeCart(data []byte) (*cart.Cart, error) {
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = make([]cart.LineItem, 0)
	}
	c.RecalculateTotals()
	return &c, nil
}
