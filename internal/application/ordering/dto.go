package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest carries the fields needed to turn a session's cart into
// a kitchen order
type PlaceOrderRequest struct {
	RoomNumber int    `json:"room_number" binding:"required,min=1"`
	CreatedBy  string `json:"created_by" binding:"required"`
}

// UpdateStatusRequest advances an order along the kitchen workflow
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending cooking serve"`
}

// OrderItemResponse is a single priced line of a placed order
type OrderItemResponse struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	LineTotal  decimal.Decimal `json:"line_total"`
	Note       *string         `json:"note,omitempty"`
}

// OrderResponse is the order representation returned to clients
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	RoomNumber  int                 `json:"room_number"`
	CreatedBy   string              `json:"created_by"`
	Items       []OrderItemResponse `json:"items"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	// TotalDisplay is the guest-facing rendering of the total ("420 THB")
	TotalDisplay string     `json:"total_display"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CookingAt    *time.Time `json:"cooking_at,omitempty"`
	ServedAt     *time.Time `json:"served_at,omitempty"`
}

// ToOrderResponse converts a domain order to its response representation
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			LineTotal:  item.LineTotal,
			Note:       item.Note,
		})
	}

	return OrderResponse{
		ID:           o.ID,
		RoomNumber:   o.RoomNumber,
		CreatedBy:    o.CreatedBy,
		Items:        items,
		TotalAmount:  o.TotalAmount,
		TotalDisplay: o.TotalAmountMoney().String(),
		Status:       o.Status.String(),
		CreatedAt:    o.CreatedAt,
		CookingAt:    o.CookingAt,
		ServedAt:     o.ServedAt,
	}
}
