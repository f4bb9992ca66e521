package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcart "github.com/guesthub/backend/internal/application/cart"
	appcatalog "github.com/guesthub/backend/internal/application/catalog"
	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/guesthub/backend/internal/interfaces/http/middleware"
)

// CartHandler handles guest cart endpoints. All routes are session-scoped:
// the guest session ID from the X-Session-ID header keys the cart.
type CartHandler struct {
	BaseHandler
	carts   *appcart.Service
	catalog *appcatalog.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *appcart.Service, catalog *appcatalog.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// RegisterRoutes registers cart routes on the API group
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/cart", middleware.RequireSession())
	group.GET("", h.Get)
	group.DELETE("", h.Clear)
	group.POST("/items", h.AddItem)
	group.PUT("/items/quantity", h.UpdateQuantity)
	group.DELETE("/items", h.RemoveItem)
	group.GET("/items/:itemId/quantity", h.ItemQuantity)
}

// AddCartItemRequest adds one unit of a menu item to the cart. The note is a
// free-text customization; a null note and an empty note are distinct lines.
type AddCartItemRequest struct {
	ItemID string  `json:"item_id" binding:"required,uuid"`
	Note   *string `json:"note" binding:"omitempty,max=500"`
}

// UpdateCartQuantityRequest sets the absolute quantity of a cart line.
// Quantity zero (or below) removes the line.
type UpdateCartQuantityRequest struct {
	ItemID   string  `json:"item_id" binding:"required,uuid"`
	Note     *string `json:"note" binding:"omitempty,max=500"`
	Quantity int64   `json:"quantity"`
}

// RemoveCartItemRequest removes a single cart line
type RemoveCartItemRequest struct {
	ItemID string  `json:"item_id" binding:"required,uuid"`
	Note   *string `json:"note" binding:"omitempty,max=500"`
}

// Get returns the current cart for the session. A session with no stored
// cart gets the empty cart, never an error.
func (h *CartHandler) Get(c *gin.Context) {
	current := h.carts.Get(c.Request.Context(), getSessionID(c))
	h.Success(c, current)
}

// AddItem adds one unit of a menu item to the session cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		h.BadRequest(c, "item_id must be a valid UUID")
		return
	}

	candidate, err := h.catalog.CandidateFor(c.Request.Context(), itemID, req.Note)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	updated, err := h.carts.AddItem(c.Request.Context(), getSessionID(c), candidate)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// UpdateQuantity sets the quantity of a cart line identified by item and note
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req UpdateCartQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	key := cart.KeyFor(req.ItemID, req.Note)
	updated, err := h.carts.UpdateQuantity(c.Request.Context(), getSessionID(c), key, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// RemoveItem removes a cart line identified by item and note
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req RemoveCartItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	key := cart.KeyFor(req.ItemID, req.Note)
	updated, err := h.carts.RemoveItem(c.Request.Context(), getSessionID(c), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// Clear empties the session cart
func (h *CartHandler) Clear(c *gin.Context) {
	updated, err := h.carts.Clear(c.Request.Context(), getSessionID(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// ItemQuantityResponse reports how many units of a menu item are in the
// cart, summed across note variants.
type ItemQuantityResponse struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// ItemQuantity returns the total quantity of one menu item in the cart
func (h *CartHandler) ItemQuantity(c *gin.Context) {
	itemID := c.Param("itemId")
	if _, err := uuid.Parse(itemID); err != nil {
		h.BadRequest(c, "itemId must be a valid UUID")
		return
	}

	qty := h.carts.QuantityInCart(c.Request.Context(), getSessionID(c), itemID)
	h.Success(c, ItemQuantityResponse{ItemID: itemID, Quantity: qty})
}
