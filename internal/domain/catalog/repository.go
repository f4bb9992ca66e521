package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/shared"
)

// MenuItemRepository defines the persistence interface for menu items
type MenuItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MenuItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]MenuItem, error)
	FindAvailable(ctx context.Context) ([]MenuItem, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, item *MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}
