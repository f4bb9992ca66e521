package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMenuItemRepository implements catalog.MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByID finds a menu item by its ID
func (r *GormMenuItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	var model models.MenuItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all menu items with filtering
func (r *GormMenuItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.MenuItem, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{})

	if category, ok := filter.Filters["category_id"].(string); ok && category != "" {
		query = query.Where("category_id = ?", category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}

	var rows []models.MenuItemModel
	if err := applyFilter(query, filter, MenuItemSortFields).Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]catalog.MenuItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// FindAvailable finds every menu item guests can order right now
func (r *GormMenuItemRepository) FindAvailable(ctx context.Context) ([]catalog.MenuItem, error) {
	var rows []models.MenuItemModel
	if err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("category_id ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]catalog.MenuItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// Count counts menu items matching the filter
func (r *GormMenuItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MenuItemModel{})

	if category, ok := filter.Filters["category_id"].(string); ok && category != "" {
		query = query.Where("category_id = ?", category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a menu item. Domain entities carry their UUID from
// birth, so a plain Save would never insert; an upsert on the primary key
// covers both paths.
func (r *GormMenuItemRepository) Save(ctx context.Context, item *catalog.MenuItem) error {
	model := models.MenuItemModelFromDomain(item)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// Delete removes a menu item
func (r *GormMenuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MenuItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormMenuItemRepository implements catalog.MenuItemRepository
var _ catalog.MenuItemRepository = (*GormMenuItemRepository)(nil)
