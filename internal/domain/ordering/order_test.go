package ordering

import (
	"testing"

	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(s string) *string {
	return &s
}

func testCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.Empty()
	c.AddItem(cart.Candidate{ItemID: "A", Name: "Pad Thai", UnitPrice: decimal.NewFromInt(100)})
	c.AddItem(cart.Candidate{ItemID: "A", Name: "Pad Thai", UnitPrice: decimal.NewFromInt(100), Note: note("no chili")})
	c.AddItem(cart.Candidate{ItemID: "B", Name: "Green Curry", UnitPrice: decimal.NewFromInt(50)})
	return c
}

// ============================================
// OrderStatus Tests
// ============================================

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusPending, true},
		{OrderStatusCooking, true},
		{OrderStatusServe, true},
		{OrderStatus("delivered"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusPending, OrderStatusCooking, true},
		{OrderStatusPending, OrderStatusServe, false},
		{OrderStatusCooking, OrderStatusServe, true},
		{OrderStatusCooking, OrderStatusPending, false},
		{OrderStatusServe, OrderStatusPending, false},
		{OrderStatusServe, OrderStatusCooking, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// NewOrderFromCart Tests
// ============================================

func TestNewOrderFromCart(t *testing.T) {
	t.Run("snapshots cart lines verbatim", func(t *testing.T) {
		c := testCart(t)
		order, err := NewOrderFromCart(204, "guest-204", c)
		require.NoError(t, err)

		require.Len(t, order.Items, 3)
		assert.Equal(t, "A", order.Items[0].MenuItemID)
		assert.Nil(t, order.Items[0].Note)
		assert.Equal(t, "A", order.Items[1].MenuItemID)
		require.NotNil(t, order.Items[1].Note)
		assert.Equal(t, "no chili", *order.Items[1].Note)
		assert.Equal(t, "B", order.Items[2].MenuItemID)

		assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, order.Items[0].LineTotal.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, int64(3), order.TotalQuantity())
	})

	t.Run("total is the cart grand total", func(t *testing.T) {
		c := testCart(t)
		order, err := NewOrderFromCart(204, "guest-204", c)
		require.NoError(t, err)

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, "250 THB", order.TotalAmountMoney().String())
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewOrderFromCart(204, "guest-204", cart.Empty())
		assert.Error(t, err)

		_, err = NewOrderFromCart(204, "guest-204", nil)
		assert.Error(t, err)
	})

	t.Run("rejects invalid room and creator", func(t *testing.T) {
		c := testCart(t)
		_, err := NewOrderFromCart(0, "guest", c)
		assert.Error(t, err)

		_, err = NewOrderFromCart(204, "", c)
		assert.Error(t, err)
	})
}

// ============================================
// AdvanceStatus Tests
// ============================================

func TestOrder_AdvanceStatus(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		order, err := NewOrderFromCart(101, "guest-101", testCart(t))
		require.NoError(t, err)
		return order
	}

	t.Run("pending to cooking to serve", func(t *testing.T) {
		order := newOrder(t)

		require.NoError(t, order.AdvanceStatus(OrderStatusCooking))
		assert.Equal(t, OrderStatusCooking, order.Status)
		assert.NotNil(t, order.CookingAt)

		require.NoError(t, order.AdvanceStatus(OrderStatusServe))
		assert.Equal(t, OrderStatusServe, order.Status)
		assert.NotNil(t, order.ServedAt)
		assert.True(t, order.IsServed())
	})

	t.Run("cannot skip cooking", func(t *testing.T) {
		order := newOrder(t)
		assert.Error(t, order.AdvanceStatus(OrderStatusServe))
	})

	t.Run("cannot leave terminal state", func(t *testing.T) {
		order := newOrder(t)
		require.NoError(t, order.AdvanceStatus(OrderStatusCooking))
		require.NoError(t, order.AdvanceStatus(OrderStatusServe))

		assert.Error(t, order.AdvanceStatus(OrderStatusCooking))
		assert.Error(t, order.AdvanceStatus(OrderStatusPending))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newOrder(t)
		assert.Error(t, order.AdvanceStatus(OrderStatus("refunded")))
	})
}
