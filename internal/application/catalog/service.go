// Package catalog exposes the room-service menu: listing dishes for guests
// and minting cart candidates from catalog data, so cart lines always carry
// catalog-priced attributes rather than client-supplied ones.
package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/telemetry"
)

// Service handles menu-related business operations
type Service struct {
	menuRepo catalog.MenuItemRepository
}

// NewService creates a new catalog Service
func NewService(menuRepo catalog.MenuItemRepository) *Service {
	return &Service{menuRepo: menuRepo}
}

// Create adds a new dish to the menu
func (s *Service) Create(ctx context.Context, req CreateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := catalog.NewMenuItem(req.Name, req.DisplayName, req.CategoryID, req.Price)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description
	item.ImageURL = req.ImageURL
	item.SetSpiceLevel(req.SpiceLevel)
	item.MarkPopular(req.IsPopular)
	if req.Ingredients != nil {
		item.Ingredients = req.Ingredients
	}
	if req.Allergens != nil {
		item.Allergens = req.Allergens
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Update applies a partial update to a menu item
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateMenuItemRequest) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := item.UpdatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.Available != nil {
		item.SetAvailability(*req.Available)
	}
	if req.SpiceLevel != nil {
		item.SetSpiceLevel(*req.SpiceLevel)
	}
	if req.IsPopular != nil {
		item.MarkPopular(*req.IsPopular)
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// Get returns a single menu item by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MenuItemResponse, error) {
	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMenuItemResponse(item)
	return &resp, nil
}

// List returns a page of menu items together with the total count
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[MenuItemResponse], error) {
	items, err := s.menuRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.menuRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToMenuItemResponse(&items[i]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListAvailable returns every dish guests can order right now
func (s *Service) ListAvailable(ctx context.Context) ([]MenuItemResponse, error) {
	items, err := s.menuRepo.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]MenuItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToMenuItemResponse(&items[i]))
	}
	return responses, nil
}

// Delete removes a menu item
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.menuRepo.Delete(ctx, id)
}

// CandidateFor builds a cart candidate from the catalog record for an item.
// This is the only place candidates are created, so every cart line carries
// the catalog's price and attributes at the moment it was added. Unavailable
// dishes cannot enter a cart.
func (s *Service) CandidateFor(ctx context.Context, id uuid.UUID, note *string) (cart.Candidate, error) {
	ctx, span := telemetry.StartSpan(ctx, "catalog.candidate_for",
		telemetry.WithAttribute("menu_item_id", id.String()),
	)
	defer span.End()

	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.Candidate{}, shared.ErrNotFound
		}
		telemetry.RecordError(span, err)
		return cart.Candidate{}, err
	}

	if !item.Available {
		return cart.Candidate{}, shared.ErrUnavailable
	}

	return cart.Candidate{
		ItemID:      item.ID.String(),
		Name:        item.Name,
		DisplayName: item.DisplayName,
		UnitPrice:   item.Price,
		Note:        note,
		CategoryID:  item.CategoryID,
		SpiceLevel:  item.SpiceLevel,
		IsPopular:   item.IsPopular,
		Ingredients: item.Ingredients,
		Allergens:   item.Allergens,
		ImageURL:    item.ImageURL,
	}, nil
}
