package catalog

import (
	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateMenuItemRequest carries the fields needed to add a dish to the menu.
// Price is tax-inclusive THB.
type CreateMenuItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	ImageURL    string          `json:"image_url"`
	SpiceLevel  int             `json:"spice_level" binding:"min=0,max=5"`
	IsPopular   bool            `json:"is_popular"`
	Ingredients []string        `json:"ingredients"`
	Allergens   []string        `json:"allergens"`
}

// UpdateMenuItemRequest carries partial updates; nil fields are left untouched
type UpdateMenuItemRequest struct {
	Price      *decimal.Decimal `json:"price"`
	Available  *bool            `json:"available"`
	SpiceLevel *int             `json:"spice_level"`
	IsPopular  *bool            `json:"is_popular"`
}

// MenuItemResponse is the menu item representation returned to clients
type MenuItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	SpiceLevel  int             `json:"spice_level"`
	IsPopular   bool            `json:"is_popular"`
	Ingredients []string        `json:"ingredients"`
	Allergens   []string        `json:"allergens"`
	Available   bool            `json:"available"`
}

// ToMenuItemResponse converts a domain menu item to its response representation
func ToMenuItemResponse(item *catalog.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		DisplayName: item.DisplayName,
		Description: item.Description,
		CategoryID:  item.CategoryID,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
		SpiceLevel:  item.SpiceLevel,
		IsPopular:   item.IsPopular,
		Ingredients: item.Ingredients,
		Allergens:   item.Allergens,
		Available:   item.Available,
	}
}
