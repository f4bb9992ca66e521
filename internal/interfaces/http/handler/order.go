package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/guesthub/backend/internal/application/ordering"
	"github.com/guesthub/backend/internal/interfaces/http/dto"
	"github.com/guesthub/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orders *appordering.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	group.POST("", middleware.RequireSession(), h.Place)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/room/:roomNumber", h.ListByRoom)
	group.PUT("/:id/status", h.UpdateStatus)
}

// Place creates an order from the session cart and clears the cart
func (h *OrderHandler) Place(c *gin.Context) {
	var req appordering.PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), getSessionID(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// OrderListRequest extends the common list parameters with order filters
type OrderListRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=pending cooking serve"`
}

// List returns orders, paginated, optionally filtered by status
func (h *OrderHandler) List(c *gin.Context) {
	var req OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	filter := listFilter(req.ListRequest)
	if req.Status != "" {
		filter.Filters["status"] = req.Status
	}

	page, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a single order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// ListByRoom returns all orders for a room, newest first
func (h *OrderHandler) ListByRoom(c *gin.Context) {
	roomNumber, err := strconv.Atoi(c.Param("roomNumber"))
	if err != nil || roomNumber < 1 {
		h.BadRequest(c, "roomNumber must be a positive integer")
		return
	}

	orders, err := h.orders.ListByRoom(c.Request.Context(), roomNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, orders)
}

// UpdateStatus advances an order through the kitchen workflow
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}

	var req appordering.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}
