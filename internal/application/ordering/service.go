// Package ordering turns a session's cart into a kitchen order and tracks the
// order through the pending/cooking/serve workflow.
package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/guesthub/backend/internal/domain/cart"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// CartEngine is the slice of the cart service the ordering flow needs:
// reading the session's cart at placement time and clearing it afterwards.
type CartEngine interface {
	Get(ctx context.Context, sessionID string) *cart.Cart
	Clear(ctx context.Context, sessionID string) (*cart.Cart, error)
}

// Service handles order placement and kitchen workflow operations
type Service struct {
	orderRepo ordering.OrderRepository
	carts     CartEngine
	logger    *zap.Logger
}

// NewService creates a new ordering Service
func NewService(orderRepo ordering.OrderRepository, carts CartEngine, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		carts:     carts,
		logger:    logger.Named("ordering"),
	}
}

// PlaceOrder snapshots the session's cart into a pending order and clears the
// cart. The order is saved before the cart is cleared; a clear failure is
// logged but does not undo the placed order, the leftover cart simply
// survives for the guest to discard.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req PlaceOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "order.place",
		telemetry.WithAttribute("room_number", req.RoomNumber),
	)
	defer span.End()

	c := s.carts.Get(ctx, sessionID)

	order, err := ordering.NewOrderFromCart(req.RoomNumber, req.CreatedBy, c)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("cart clear after order placement failed",
			zap.String("session_id", sessionID),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Int("room_number", order.RoomNumber),
		zap.Int64("total_items", order.TotalQuantity()),
		zap.Stringer("total_amount", order.TotalAmountMoney()),
	)
	telemetry.AddEvent(span, "order_placed", "order_id", order.ID.String())

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns a single order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns a page of orders together with the total count
func (s *Service) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[OrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}

	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListByRoom returns every order placed from a room
func (s *Service) ListByRoom(ctx context.Context, roomNumber int) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByRoom(ctx, roomNumber)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToOrderResponse(&orders[i]))
	}
	return responses, nil
}

// UpdateStatus advances an order along the kitchen workflow
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "order.update_status",
		telemetry.WithAttribute("order_id", id.String()),
		telemetry.WithAttribute("target_status", req.Status),
	)
	defer span.End()

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.AdvanceStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", order.Status.String()),
	)

	resp := ToOrderResponse(order)
	return &resp, nil
}
