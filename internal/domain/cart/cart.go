// Package cart implements the shopping-cart pricing and reconciliation engine.
//
// Menu prices are tax-inclusive: a dish quoted at 100 THB already contains 7%
// VAT. The cart therefore reports the exact payable amount (GrandTotal) as the
// raw sum of unit price times quantity, and decomposes it for display into a
// rounded pre-tax Subtotal plus a residual VAT so that Subtotal + VAT always
// equals GrandTotal to the baht.
package cart

import (
	"github.com/shopspring/decimal"
)

// taxInclusiveDivisor recovers the pre-VAT base from a 7% tax-inclusive price.
var taxInclusiveDivisor = decimal.RequireFromString("1.07")

// LineKey identifies a single cart line. Lines are keyed by the menu item ID
// together with the customization note; the same dish ordered with different
// notes occupies distinct lines with independent quantities. A structured key
// is used instead of joining itemID and note with a delimiter, so an item ID
// ending in the delimiter can never collide with a note starting with it.
type LineKey struct {
	ItemID  string
	HasNote bool
	Note    string
}

// KeyFor builds the line key for an item ID and optional note.
// A nil note and an empty note produce different keys.
func KeyFor(itemID string, note *string) LineKey {
	k := LineKey{ItemID: itemID}
	if note != nil {
		k.HasNote = true
		k.Note = *note
	}
	return k
}

// LineItem is one distinguishable row in the cart. The catalog attributes
// beyond UnitPrice are echoed verbatim for order creation and rendering;
// they play no part in pricing.
type LineItem struct {
	ItemID      string          `json:"item_id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	Note        *string         `json:"note,omitempty"`
	CategoryID  string          `json:"category_id"`
	SpiceLevel  int             `json:"spice_level"`
	IsPopular   bool            `json:"is_popular"`
	Ingredients []string        `json:"ingredients"`
	Allergens   []string        `json:"allergens"`
	ImageURL    string          `json:"image_url"`
}

// Key returns the identity key of this line
func (li LineItem) Key() LineKey {
	return KeyFor(li.ItemID, li.Note)
}

// LineTotal returns UnitPrice * Quantity, exact
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// Candidate describes a line item before it enters the cart. Quantity is
// implicit: each AddItem call contributes exactly one unit.
type Candidate struct {
	ItemID      string
	Name        string
	DisplayName string
	UnitPrice   decimal.Decimal
	Note        *string
	CategoryID  string
	SpiceLevel  int
	IsPopular   bool
	Ingredients []string
	Allergens   []string
	ImageURL    string
}

// Key returns the line key this candidate would merge into
func (c Candidate) Key() LineKey {
	return KeyFor(c.ItemID, c.Note)
}

// Cart is the aggregate owned by the cart engine for a single guest session.
// Items preserve insertion order; the totals fields are derived and are
// recomputed after every mutation, never set independently.
//
// GrandTotal is the authoritative payable amount. Subtotal and VAT are a
// rounded display decomposition of GrandTotal; VAT absorbs the rounding
// remainder so the two always sum back to GrandTotal exactly, even though
// VAT alone is not a clean 7% figure.
type Cart struct {
	Items         []LineItem      `json:"items"`
	TotalItems    int64           `json:"total_items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	ServiceCharge decimal.Decimal `json:"service_charge"`
	VAT           decimal.Decimal `json:"vat"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Empty returns the canonical empty cart
func Empty() *Cart {
	c := &Cart{Items: make([]LineItem, 0)}
	c.RecalculateTotals()
	return c
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem adds one unit of the candidate to the cart. If a line with the same
// (item ID, note) identity already exists its quantity is incremented in
// place, keeping its position; otherwise a new line with quantity 1 is
// appended. Calling AddItem N times with an identical candidate is the way a
// line reaches quantity N through this path.
func (c *Cart) AddItem(cand Candidate) {
	key := cand.Key()
	for idx := range c.Items {
		if c.Items[idx].Key() == key {
			c.Items[idx].Quantity++
			c.RecalculateTotals()
			return
		}
	}

	c.Items = append(c.Items, LineItem{
		ItemID:      cand.ItemID,
		Name:        cand.Name,
		DisplayName: cand.DisplayName,
		UnitPrice:   cand.UnitPrice,
		Quantity:    1,
		Note:        cand.Note,
		CategoryID:  cand.CategoryID,
		SpiceLevel:  cand.SpiceLevel,
		IsPopular:   cand.IsPopular,
		Ingredients: cand.Ingredients,
		Allergens:   cand.Allergens,
		ImageURL:    cand.ImageURL,
	})
	c.RecalculateTotals()
}

// RemoveLine removes the line with the given key. Keys are unique within the
// cart, so at most one line is removed. Removing a missing key is a no-op.
func (c *Cart) RemoveLine(key LineKey) {
	for idx := range c.Items {
		if c.Items[idx].Key() == key {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.RecalculateTotals()
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line with the given key to an
// absolute value. A quantity of zero or less removes the line, matching
// RemoveLine. Updating a missing key is a no-op.
func (c *Cart) UpdateQuantity(key LineKey, quantity int64) {
	if quantity <= 0 {
		c.RemoveLine(key)
		return
	}

	for idx := range c.Items {
		if c.Items[idx].Key() == key {
			c.Items[idx].Quantity = quantity
			c.RecalculateTotals()
			return
		}
	}
}

// Clear resets the cart to the empty state
func (c *Cart) Clear() {
	c.Items = make([]LineItem, 0)
	c.RecalculateTotals()
}

// QuantityOf returns the total quantity of an item across all lines sharing
// its item ID, regardless of note. This backs the "N already in cart" badge,
// which counts a dish irrespective of customization.
func (c *Cart) QuantityOf(itemID string) int64 {
	var total int64
	for idx := range c.Items {
		if c.Items[idx].ItemID == itemID {
			total += c.Items[idx].Quantity
		}
	}
	return total
}

// RecalculateTotals recomputes every derived field from the line sequence.
//
// The order matters: GrandTotal is summed exactly first, Subtotal is derived
// by rounding GrandTotal back out of the tax-inclusive price, and VAT is the
// subtraction residual. Computing VAT independently (round of 0.07/1.07 of
// the total) would break Subtotal + VAT == GrandTotal.
//
// Exported because storage adapters recompute totals after deserializing a
// cart; persisted totals are a display cache and are never trusted.
func (c *Cart) RecalculateTotals() {
	grandTotal := decimal.Zero
	var totalItems int64
	for idx := range c.Items {
		grandTotal = grandTotal.Add(c.Items[idx].LineTotal())
		totalItems += c.Items[idx].Quantity
	}

	// Round to whole baht, half away from zero.
	subtotal := grandTotal.Div(taxInclusiveDivisor).Round(0)

	c.GrandTotal = grandTotal
	c.Subtotal = subtotal
	c.VAT = grandTotal.Sub(subtotal)
	c.ServiceCharge = decimal.Zero
	c.TotalItems = totalItems
}
