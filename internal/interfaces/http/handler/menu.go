package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/guesthub/backend/internal/application/catalog"
	"github.com/guesthub/backend/internal/interfaces/http/dto"
)

// MenuHandler handles menu item endpoints
type MenuHandler struct {
	BaseHandler
	catalog *appcatalog.Service
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(catalog *appcatalog.Service) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

// RegisterRoutes registers menu routes on the API group
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/menu")
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// MenuListRequest extends the common list parameters with menu filters.
// Guests get the plain available menu; include_unavailable switches to the
// paginated full catalog view used by staff.
type MenuListRequest struct {
	dto.ListRequest
	Category           string `form:"category"`
	IncludeUnavailable bool   `form:"include_unavailable"`
}

// List returns menu items. By default only available items are returned,
// ordered for display; with include_unavailable=true the full catalog is
// returned paginated.
func (h *MenuHandler) List(c *gin.Context) {
	var req MenuListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	if !req.IncludeUnavailable {
		items, err := h.catalog.ListAvailable(c.Request.Context())
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
		return
	}

	filter := listFilter(req.ListRequest)
	if req.Category != "" {
		filter.Filters["category_id"] = req.Category
	}

	page, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single menu item by ID
func (h *MenuHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	item, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Create creates a new menu item
func (h *MenuHandler) Create(c *gin.Context) {
	var req appcatalog.CreateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalog.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update updates an existing menu item
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	var req appcatalog.UpdateMenuItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalog.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a menu item
func (h *MenuHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
