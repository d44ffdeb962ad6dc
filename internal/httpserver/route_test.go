package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/tokens"
)

func TestHealth(t *testing.T) {
	s := newServer(t)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "", nil).Code)
}

func TestAuthGuards(t *testing.T) {
	s := newServer(t)
	user := token(t, uuid.New(), "user")

	rec := s.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "No token, authorization denied", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/cart", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/admin/stats", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin access required", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/analytics", user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newServer(t)
	userID := uuid.New()
	user := token(t, userID, "user")
	stranger := token(t, uuid.New(), "user")
	admin := token(t, uuid.New(), tokens.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Amber Night", "price": 500})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	amber := decode[models.Product](t, rec)
	rec = s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Cedar Smoke", "price": "250"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cedar := decode[models.Product](t, rec)

	rec = s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Amber Night", "price": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// cart
	rec = s.do(http.MethodPost, "/api/cart", user, map[string]any{
		"items": []map[string]any{{"productId": amber.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[transport.CartResponse](t, rec).Items, 1)

	rec = s.do(http.MethodPost, "/api/cart/merge", user, map[string]any{
		"localItems": []map[string]any{
			{"productId": amber.ID, "quantity": 2},
			{"productId": cedar.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[transport.CartResponse](t, rec)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, amber.ID, cart.Items[0].ProductID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, cedar.ID, cart.Items[1].ProductID)
	assert.Equal(t, 1, cart.Items[1].Quantity)

	// checkout
	rec = s.do(http.MethodPost, "/api/orders", user, map[string]any{
		"items": []map[string]any{
			{"_id": amber.ID, "quantity": 1, "price": 500},
			{"productId": cedar.ID, "quantity": 2, "price": 250},
		},
		"shippingAddress": map[string]any{
			"firstName": "Ada", "lastName": "Byron", "email": "ada@example.com",
			"address": "1 Rose St", "city": "Paris", "zip": "75001",
		},
		"totalAmount": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.True(t, decimal.NewFromInt(1000).Equal(order.TotalAmount))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 1, s.events.count(notify.EventOrderPlaced))

	rec = s.do(http.MethodGet, "/api/cart", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[]}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/orders/myorders", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[transport.Page[models.Order]](t, rec)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, int64(1), mine.Pagination.Total)
	assert.False(t, mine.Pagination.HasMore)

	path := "/api/orders/" + order.ID.String()
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, user, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, path, admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, stranger, nil).Code)

	rec = s.do(http.MethodGet, "/api/user/addresses", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Address](t, rec), 1)

	// lifecycle
	statusPath := "/api/admin/orders/" + order.ID.String() + "/status"
	rec = s.do(http.MethodPut, statusPath, admin, map[string]any{"status": "shipped", "tracking_id": "TRK-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	shipped := decode[models.Order](t, rec)
	assert.Equal(t, models.StatusShipped, shipped.Status)
	require.NotNil(t, shipped.TrackingID)
	assert.Equal(t, "TRK-1", *shipped.TrackingID)
	assert.Equal(t, 1, s.events.count(notify.EventOrderStatusChanged))

	rec = s.do(http.MethodPut, statusPath, admin, map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status. Allowed: pending, approved, crafting, preparing, packaging, shipped, delivered, completed, cancelled, rejected", msg(t, rec))

	rec = s.do(http.MethodPatch, "/api/admin/orders/"+uuid.NewString(), admin, map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", msg(t, rec))
	assert.Equal(t, 1, s.events.count(notify.EventOrderStatusChanged))

	// admin views
	rec = s.do(http.MethodDelete, "/api/admin/products/"+amber.ID.String(), admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[transport.StatsResponse](t, rec)
	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(0), stats.PendingOrders)

	rec = s.do(http.MethodGet, "/api/analytics?range=7d", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	an := decode[transport.AnalyticsResponse](t, rec)
	assert.Equal(t, "7d", an.Range)
	require.Len(t, an.SalesData, 1)
	assert.True(t, decimal.NewFromInt(1000).Equal(an.SalesData[0].TotalSales))
	require.Len(t, an.TopProducts, 2)
	assert.Equal(t, cedar.ID, an.TopProducts[0].ProductID)
	assert.Equal(t, []transport.StatusCount{{Status: models.StatusShipped, Count: 1}}, an.StatusDistribution)
}

func TestCreateOrder_Rejections(t *testing.T) {
	s := newServer(t)
	user := token(t, uuid.New(), "user")
	addr := map[string]any{"firstName": "Ada", "email": "ada@example.com"}

	rec := s.do(http.MethodPost, "/api/orders", user, map[string]any{"items": []any{}, "shippingAddress": addr})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "items required", msg(t, rec))

	rec = s.do(http.MethodPost, "/api/orders", user, map[string]any{
		"items":           []map[string]any{{"productId": uuid.New(), "quantity": 1, "price": 10}},
		"shippingAddress": addr,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	s := newServer(t)
	userID := uuid.New()
	user := token(t, userID, "user")
	admin := token(t, uuid.New(), tokens.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/admin/tags", admin, map[string]any{"name": "woody"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tag := decode[models.Tag](t, rec)

	rec = s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{
		"name": "Cedar Smoke", "price": 80, "tags": []uuid.UUID{tag.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cedar := decode[models.Product](t, rec)

	rec = s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Hidden", "price": 5, "is_active": false})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	hidden := decode[models.Product](t, rec)

	rec = s.do(http.MethodGet, "/api/products?tag=woody", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[transport.Page[models.Product]](t, rec)
	require.Len(t, page.Data, 1)
	assert.Equal(t, cedar.ID, page.Data[0].ID)

	rec = s.do(http.MethodGet, "/api/products/filter?minPrice=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid minPrice", msg(t, rec))

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/products/"+hidden.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/products/"+hidden.ID.String(), admin, nil).Code)

	rec = s.do(http.MethodGet, "/api/products/search?q=cedar", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[transport.Page[models.Product]](t, rec).Data, 1)

	rec = s.do(http.MethodPut, "/api/admin/products/"+cedar.ID.String(), admin, map[string]any{"price": 90})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decimal.NewFromInt(90).Equal(decode[models.Product](t, rec).Price))

	rate := "/api/products/" + cedar.ID.String() + "/rate"
	rec = s.do(http.MethodPost, rate, user, map[string]any{"rating": 4})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, transport.RatingResponse{Rating: 4, Reviews: 1}, decode[transport.RatingResponse](t, rec))

	rec = s.do(http.MethodPost, rate, user, map[string]any{"rating": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "already rated", msg(t, rec))

	rec = s.do(http.MethodGet, "/api/products/"+cedar.ID.String()+"/user-rating", user, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, transport.UserRatingResponse{Rated: true, Rating: 4}, decode[transport.UserRatingResponse](t, rec))

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/products/"+hidden.ID.String(), admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/admin/products/"+hidden.ID.String(), admin, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/tags/"+tag.ID.String(), admin, nil).Code)

	rec = s.do(http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Tag](t, rec))
}

func TestAnalytics_EmptyHistory(t *testing.T) {
	s := newServer(t)
	admin := token(t, uuid.New(), tokens.RoleAdmin)

	rec := s.do(http.MethodGet, "/api/analytics?range=bogus", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"range":"30d","salesData":[],"topProducts":[],"statusDistribution":[]}`, rec.Body.String())
}

func TestCookieSessionNeedsCSRFToken(t *testing.T) {
	s := newServer(t)
	tok := token(t, uuid.New(), "user")

	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"items":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: tok})
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid CSRF token", msg(t, rec))

	req = httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: tok})
	rec = httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-CSRF-Token"))
}

func TestCart_StorefrontLineKeys(t *testing.T) {
	s := newServer(t)
	user := token(t, uuid.New(), "user")
	admin := token(t, uuid.New(), tokens.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Amber Night", "price": 500})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	amber := decode[models.Product](t, rec)
	rec = s.do(http.MethodPost, "/api/admin/products", admin, map[string]any{"name": "Cedar Smoke", "price": 250})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cedar := decode[models.Product](t, rec)

	rec = s.do(http.MethodPost, "/api/cart", user, map[string]any{
		"items": []map[string]any{{"_id": amber.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[transport.CartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, amber.ID, cart.Items[0].ProductID)

	rec = s.do(http.MethodPost, "/api/cart/merge", user, map[string]any{
		"localItems": []map[string]any{
			{"_id": amber.ID, "quantity": 2},
			{"product": cedar.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart = decode[transport.CartResponse](t, rec)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, amber.ID, cart.Items[0].ProductID)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, cedar.ID, cart.Items[1].ProductID)

	rec = s.do(http.MethodPost, "/api/cart", user, map[string]any{
		"items": []map[string]any{{"quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "item 0: productId is required", msg(t, rec))
}
