package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	RoomNumber  int                  `gorm:"not null;index"`
	CreatedBy   string               `gorm:"type:varchar(100);not null"`
	Items       []OrderItemModel     `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status      ordering.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	CookingAt   *time.Time
	ServedAt    *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		RoomNumber:        m.RoomNumber,
		CreatedBy:         m.CreatedBy,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		CookingAt:         m.CookingAt,
		ServedAt:          m.ServedAt,
		Items:             make([]ordering.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		order.Items[i] = m.Items[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
// Order items are immutable after placement, so each line gets a stable ID
// derived at first save.
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.RoomNumber = o.RoomNumber
	m.CreatedBy = o.CreatedBy
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.CookingAt = o.CookingAt
	m.ServedAt = o.ServedAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(o.ID, &o.Items[i])
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for a priced order line.
type OrderItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	MenuItemID string          `gorm:"type:varchar(100);not null"`
	Name       string          `gorm:"type:varchar(200);not null"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// Nullable: NULL preserves "no note", distinct from an empty note.
	Note      *string   `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() ordering.OrderItem {
	return ordering.OrderItem{
		MenuItemID: m.MenuItemID,
		Name:       m.Name,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
		LineTotal:  m.LineTotal,
		Note:       m.Note,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem.
func OrderItemModelFromDomain(orderID uuid.UUID, item *ordering.OrderItem) OrderItemModel {
	return OrderItemModel{
		ID:         uuid.New(),
		OrderID:    orderID,
		MenuItemID: item.MenuItemID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		LineTotal:  item.LineTotal,
		Note:       item.Note,
	}
}
