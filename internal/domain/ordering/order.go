package ordering

import (
	"fmt"
	"time"

	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the kitchen workflow state of an order.
// Values match the wire format consumed by the kitchen dashboard.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusCooking OrderStatus = "cooking"
	OrderStatusServe   OrderStatus = "serve"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCooking, OrderStatusServe:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCooking
	case OrderStatusCooking:
		return target == OrderStatusServe
	case OrderStatusServe:
		return false // Terminal state
	}
	return false
}

// OrderItem is a priced line copied verbatim from the cart at placement time.
// Unit prices are tax-inclusive THB, mirroring the cart's convention.
type OrderItem struct {
	MenuItemID string
	Name       string
	Quantity   int64
	UnitPrice  decimal.Decimal
	LineTotal  decimal.Decimal
	Note       *string
}

// Order is the aggregate root for a room-service order. Items and
// TotalAmount are immutable after placement; only Status advances.
type Order struct {
	shared.BaseAggregateRoot
	RoomNumber  int
	CreatedBy   string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	Status      OrderStatus
	CookingAt   *time.Time
	ServedAt    *time.Time
}

// NewOrderFromCart creates an order by snapshotting the cart's lines. The
// order's total is the cart's authoritative grand total, not a re-derivation
// from the display decomposition.
func NewOrderFromCart(roomNumber int, createdBy string, c *cart.Cart) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	if roomNumber <= 0 {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room number must be positive")
	}
	if createdBy == "" {
		return nil, shared.NewDomainError("INVALID_CREATOR", "Order creator cannot be empty")
	}

	items := make([]OrderItem, 0, len(c.Items))
	for _, li := range c.Items {
		items = append(items, OrderItem{
			MenuItemID: li.ItemID,
			Name:       li.Name,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			LineTotal:  li.LineTotal(),
			Note:       li.Note,
		})
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RoomNumber:        roomNumber,
		CreatedBy:         createdBy,
		Items:             items,
		TotalAmount:       c.GrandTotal,
		Status:            OrderStatusPending,
	}, nil
}

// AdvanceStatus moves the order along the kitchen workflow
func (o *Order) AdvanceStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	switch target {
	case OrderStatusCooking:
		o.CookingAt = &now
	case OrderStatusServe:
		o.ServedAt = &now
	}
	o.UpdatedAt = now

	return nil
}

// TotalAmountMoney returns the payable amount as Money
func (o *Order) TotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyTHB(o.TotalAmount)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsServed returns true if the order reached the terminal state
func (o *Order) IsServed() bool {
	return o.Status == OrderStatusServe
}
