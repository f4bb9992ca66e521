package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcart "github.com/guesthub/backend/internal/application/cart"
	appcatalog "github.com/guesthub/backend/internal/application/catalog"
	appordering "github.com/guesthub/backend/internal/application/ordering"
	"github.com/guesthub/backend/internal/domain/catalog"
	"github.com/guesthub/backend/internal/domain/ordering"
	"github.com/guesthub/backend/internal/domain/shared"
	"github.com/guesthub/backend/internal/infrastructure/cache"
	"github.com/guesthub/backend/internal/interfaces/http/middleware"
	"github.com/guesthub/backend/internal/interfaces/http/router"
)

// fakeMenuRepo is an in-memory MenuItemRepository for handler tests
type fakeMenuRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*catalog.MenuItem
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[uuid.UUID]*catalog.MenuItem)}
}

func (r *fakeMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeMenuRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if category, ok := filter.Filters["category_id"]; ok && item.CategoryID != category {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *fakeMenuRepo) FindAvailable(_ context.Context) ([]catalog.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if item.Available {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeMenuRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	items, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (r *fakeMenuRepo) Save(_ context.Context, item *catalog.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *item
	r.items[item.ID] = &copied
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeOrderRepo is an in-memory OrderRepository for handler tests
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*ordering.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*ordering.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter shared.Filter) ([]ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.Order, 0, len(r.orders))
	for _, order := range r.orders {
		if status, ok := filter.Filters["status"]; ok && order.Status.String() != status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) FindByRoom(_ context.Context, roomNumber int) ([]ordering.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ordering.Order, 0)
	for _, order := range r.orders {
		if order.RoomNumber == roomNumber {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	orders, err := r.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(orders)), nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ordering.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

// testServer bundles the wired engine with the fakes behind it
type testServer struct {
	engine    *gin.Engine
	menuRepo  *fakeMenuRepo
	orderRepo *fakeOrderRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	logger := zap.NewNop()
	store := cache.NewMemoryCartStore(logger)
	cartSvc := appcart.NewService(store, logger)
	menuRepo := newFakeMenuRepo()
	catalogSvc := appcatalog.NewService(menuRepo)
	orderRepo := newFakeOrderRepo()
	orderSvc := appordering.NewService(orderRepo, cartSvc, logger)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.SessionID())

	r := router.NewRouter(engine)
	r.Register(NewCartHandler(cartSvc, catalogSvc))
	r.Register(NewMenuHandler(catalogSvc))
	r.Register(NewOrderHandler(orderSvc))
	r.Register(NewSystemHandler())
	r.Setup()

	return &testServer{engine: engine, menuRepo: menuRepo, orderRepo: orderRepo}
}

// seedMenuItem stores a menu item directly in the fake repository
func (ts *testServer) seedMenuItem(t *testing.T, name string, price int64, available bool) *catalog.MenuItem {
	t.Helper()
	item, err := catalog.NewMenuItem(name, name, "mains", decimal.NewFromInt(price))
	require.NoError(t, err)
	item.Available = available
	require.NoError(t, ts.menuRepo.Save(context.Background(), item))
	return item
}

// do runs a request against the test server
func (ts *testServer) do(t *testing.T, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

// envelope mirrors the response wrapper for decoding in tests
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "expected success response, got %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// cartPayload mirrors the cart JSON for assertions; decimals arrive as
// quoted strings
type cartPayload struct {
	Items []struct {
		ItemID    string  `json:"item_id"`
		Name      string  `json:"name"`
		UnitPrice string  `json:"unit_price"`
		Quantity  int64   `json:"quantity"`
		Note      *string `json:"note"`
	} `json:"items"`
	TotalItems    int64  `json:"total_items"`
	Subtotal      string `json:"subtotal"`
	ServiceCharge string `json:"service_charge"`
	VAT           string `json:"vat"`
	GrandTotal    string `json:"grand_total"`
}

// orderPayload mirrors the order JSON for assertions
type orderPayload struct {
	ID         string `json:"id"`
	RoomNumber int    `json:"room_number"`
	CreatedBy  string `json:"created_by"`
	Items      []struct {
		MenuItemID string  `json:"menu_item_id"`
		Name       string  `json:"name"`
		Quantity   int64   `json:"quantity"`
		UnitPrice  string  `json:"unit_price"`
		LineTotal  string  `json:"line_total"`
		Note       *string `json:"note"`
	} `json:"items"`
	TotalAmount  string `json:"total_amount"`
	TotalDisplay string `json:"total_display"`
	Status       string `json:"status"`
}
