package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders with filtering
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items")

	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var rows []models.OrderModel
	if err := applyFilter(query, filter, OrderSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// FindByRoom finds every order placed from a room, newest first
func (r *GormOrderRepository) FindByRoom(ctx context.Context, roomNumber int) ([]ordering.Order, error) {
	var rows []models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("room_number = ?", roomNumber).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})

	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order. Order lines are immutable after
// placement, so they are inserted once with the order; later saves only
// touch the order row (status and workflow timestamps).
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Count(&count).Error; err != nil {
			return err
		}

		model := models.OrderModelFromDomain(order)
		if count == 0 {
			return tx.Create(model).Error
		}

		return tx.Model(&models.OrderModel{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"status":     model.Status,
				"cooking_at": model.CookingAt,
				"served_at":  model.ServedAt,
				"updated_at": model.UpdatedAt,
				"version":    model.Version,
			}).Error
	})
}

// Ensure GormOrderRepository implements ordering.OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
