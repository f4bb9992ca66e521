package catalog

import (
	"time"

	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a dish on the room-service menu. Price is tax-inclusive and
// quoted in whole THB; the cart recovers the pre-VAT base at display time.
type MenuItem struct {
	shared.BaseAggregateRoot
	Name        string // local-language name
	DisplayName string // romanized/English name
	Description string
	CategoryID  string
	Price       decimal.Decimal
	ImageURL    string
	SpiceLevel  int // 0 (none) to 5
	IsPopular   bool
	Ingredients []string
	Allergens   []string
	Available   bool
}

// NewMenuItem creates a new menu item
func NewMenuItem(name, displayName, categoryID string, price decimal.Decimal) (*MenuItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Menu item name cannot be empty")
	}
	if categoryID == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &MenuItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		DisplayName:       displayName,
		CategoryID:        categoryID,
		Price:             price,
		Ingredients:       make([]string, 0),
		Allergens:         make([]string, 0),
		Available:         true,
	}, nil
}

// UpdatePrice changes the tax-inclusive price
func (m *MenuItem) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	m.Price = price
	m.UpdatedAt = time.Now()
	return nil
}

// SetAvailability marks the item orderable or not
func (m *MenuItem) SetAvailability(available bool) {
	m.Available = available
	m.UpdatedAt = time.Now()
}

// SetSpiceLevel sets the spice indicator (clamped to 0..5)
func (m *MenuItem) SetSpiceLevel(level int) {
	if level < 0 {
		level = 0
	}
	if level > 5 {
		level = 5
	}
	m.SpiceLevel = level
	m.UpdatedAt = time.Now()
}

// MarkPopular toggles the popular badge
func (m *MenuItem) MarkPopular(popular bool) {
	m.IsPopular = popular
	m.UpdatedAt = time.Now()
}
