package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newOrderRepository backs the repository with an in-memory SQLite database
// so the full save/load cycle runs against real SQL.
func newOrderRepository(t *testing.T) *GormOrderRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.OrderModel{}, &models.OrderItemModel{}))

	t.Cleanup(func() {
		require.NoError(t, db.Exec("DELETE FROM order_items").Error)
		require.NoError(t, db.Exec("DELETE FROM orders").Error)
	})

	return NewGormOrderRepository(db)
}

func note(s string) *string {
	return &s
}

func placedOrder(t *testing.T, roomNumber int) *ordering.Order {
	t.Helper()

	c := cart.Empty()
	c.AddItem(cart.Candidate{ItemID: "pad-thai", Name: "ผัดไทย", UnitPrice: decimal.NewFromInt(120)})
	c.AddItem(cart.Candidate{ItemID: "pad-thai", Name: "ผัดไทย", UnitPrice: decimal.NewFromInt(120)})
	c.AddItem(cart.Candidate{ItemID: "tom-yum", Name: "ต้มยำกุ้ง", UnitPrice: decimal.NewFromInt(180), Note: note("less spicy")})

	order, err := ordering.NewOrderFromCart(roomNumber, "guest", c)
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	repo := newOrderRepository(t)
	ctx := context.Background()

	order := placedOrder(t, 204)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, 204, found.RoomNumber)
	assert.Equal(t, "guest", found.CreatedBy)
	assert.Equal(t, ordering.OrderStatusPending, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(420)))

	require.Len(t, found.Items, 2)
	assert.Equal(t, int64(2), found.Items[0].Quantity)
	assert.True(t, found.Items[0].LineTotal.Equal(decimal.NewFromInt(240)))

	// Notes survive the round trip, including their absence.
	assert.Nil(t, found.Items[0].Note)
	require.NotNil(t, found.Items[1].Note)
	assert.Equal(t, "less spicy", *found.Items[1].Note)
}

func TestGormOrderRepository_FindByIDMissing(t *testing.T) {
	repo := newOrderRepository(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormOrderRepository_StatusUpdatePreservesItems(t *testing.T) {
	repo := newOrderRepository(t)
	ctx := context.Background()

	order := placedOrder(t, 204)
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.AdvanceStatus(ordering.OrderStatusCooking))
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusCooking, found.Status)
	require.NotNil(t, found.CookingAt)

	// The second save must not duplicate or rewrite lines.
	assert.Len(t, found.Items, 2)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(420)))
}

func TestGormOrderRepository_FindByRoom(t *testing.T) {
	repo := newOrderRepository(t)
	ctx := context.Background()

	first := placedOrder(t, 101)
	second := placedOrder(t, 101)
	other := placedOrder(t, 305)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, other))

	orders, err := repo.FindByRoom(ctx, 101)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, 101, o.RoomNumber)
	}

	empty, err := repo.FindByRoom(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormOrderRepository_FindAllWithStatusFilter(t *testing.T) {
	repo := newOrderRepository(t)
	ctx := context.Background()

	pending := placedOrder(t, 101)
	cooking := placedOrder(t, 102)
	require.NoError(t, cooking.AdvanceStatus(ordering.OrderStatusCooking))
	require.NoError(t, repo.Save(ctx, pending))
	require.NoError(t, repo.Save(ctx, cooking))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "cooking"

	orders, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ordering.OrderStatusCooking, orders[0].Status)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
