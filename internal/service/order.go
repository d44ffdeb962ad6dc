package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events notify.Publisher
	Now    func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// hasControl reports whether s carries characters such as CR or LF that
// must never reach mail headers.
func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// OrderTotal is the sum of price times quantity over all items.
func OrderTotal(items []transport.OrderItemRequest) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// CreateOrder validates the request, stores the order as pending together
// with the checkout side effects and notifies the operator.
func (s *OrderService) CreateOrder(ctx context.Context, req transport.CreateOrderRequest, userID uuid.UUID) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	addr := req.ShippingAddress
	if strings.TrimSpace(addr.FirstName) == "" {
		return nil, fmt.Errorf("%w: shippingAddress.firstName is required", ErrValidation)
	}
	if strings.TrimSpace(addr.Email) == "" {
		return nil, fmt.Errorf("%w: shippingAddress.email is required", ErrValidation)
	}
	for _, f := range []struct{ name, value string }{
		{"firstName", addr.FirstName},
		{"lastName", addr.LastName},
		{"email", addr.Email},
		{"phone", addr.Phone},
	} {
		if hasControl(f.value) {
			return nil, fmt.Errorf("%w: shippingAddress.%s contains control characters", ErrValidation, f.name)
		}
	}

	now := s.now()
	items := make([]models.OrderItem, 0, len(req.Items))
	for i, it := range req.Items {
		if it.Product() == uuid.Nil {
			return nil, fmt.Errorf("%w: item %d: productId is required", ErrValidation, i)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d: quantity must be at least 1", ErrValidation, i)
		}
		if it.Price.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: price must be >= 0", ErrValidation, i)
		}
		items = append(items, models.OrderItem{
			ProductID:          it.Product(),
			Quantity:           it.Quantity,
			PriceAtPurchase:    it.Price,
			SelectedFragrances: it.SelectedFragrances,
			CustomMessage:      it.CustomMessage,
			CreatedAt:          now,
		})
	}

	total := OrderTotal(req.Items)
	if !req.TotalAmount.IsZero() && !req.TotalAmount.Equal(total) {
		return nil, fmt.Errorf("%w: totalAmount %s does not match items total %s", ErrValidation, req.TotalAmount, total)
	}

	order := &models.Order{
		UserID:          optionalID(userID),
		CustomerName:    addr.FullName(),
		CustomerEmail:   strings.TrimSpace(addr.Email),
		CustomerPhone:   addr.Phone,
		CustomerAddress: addr.Line(),
		ShippingAddress: addr,
		Items:           items,
		TotalAmount:     total,
		Status:          models.StatusPending,
		CreatedBy:       optionalID(userID),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	co := repo.Checkout{}
	if userID != uuid.Nil {
		co.ClearCartOf = &userID
		co.SaveAddressFor = &userID
	}
	created, err := s.Repo.CreateOrder(ctx, order, co)
	if err != nil {
		return nil, mapRepoErr(err, "order")
	}

	s.publishPlaced(ctx, *created)
	return created, nil
}

func (s *OrderService) publishPlaced(ctx context.Context, o models.Order) {
	if s.Events == nil {
		return
	}
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ProductID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	products, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		logging.FromContext(ctx).Warn("order_placed_names_failed", "order_id", o.ID, "error", err)
	}
	for id, p := range products {
		names[id] = p.Name
	}
	s.Events.Publish(ctx, notify.NewOrderPlaced(o, names, s.now()))
}

// UpdateOrderStatus moves an order to any status of the accepted set and tells
// the customer. Delivery problems never fail the update.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req transport.UpdateStatusRequest) (*models.Order, error) {
	status, err := ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{
		"status":     status,
		"updated_at": s.now(),
	}
	if req.TrackingID != nil {
		changes["tracking_id"] = strings.TrimSpace(*req.TrackingID)
	}
	if req.TrackingURL != nil {
		changes["tracking_url"] = strings.TrimSpace(*req.TrackingURL)
	}

	order, err := s.Repo.UpdateOrder(ctx, id, changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Order not found", ErrNotFound)
		}
		return nil, err
	}

	if s.Events != nil {
		s.Events.Publish(ctx, notify.NewStatusChanged(*order, s.now()))
	}
	return order, nil
}

// GetOrder returns the order to its owner or an admin. Anyone else is told it
// does not exist.
func (s *OrderService) GetOrder(ctx context.Context, id, requester uuid.UUID, admin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: Order not found", ErrNotFound)
		}
		return nil, err
	}
	if !admin && (order.UserID == nil || *order.UserID != requester) {
		return nil, fmt.Errorf("%w: Order not found", ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page, limit int, status string) (transport.Page[models.Order], error) {
	return s.listOrders(ctx, &userID, page, limit, status)
}

func (s *OrderService) AdminListOrders(ctx context.Context, page, limit int, status string) (transport.Page[models.Order], error) {
	return s.listOrders(ctx, nil, page, limit, status)
}

func (s *OrderService) listOrders(ctx context.Context, userID *uuid.UUID, page, limit int, status string) (transport.Page[models.Order], error) {
	q := transport.OrderQuery{UserID: userID}
	if status != "" && status != "all" {
		st, err := ParseStatus(status)
		if err != nil {
			return transport.Page[models.Order]{}, err
		}
		q.Status = st
	}

	page, offset, limit := util.Calculate(page, limit)
	total, orders, err := s.Repo.ListOrders(ctx, q, offset, limit)
	if err != nil {
		return transport.Page[models.Order]{}, err
	}
	return newPage(orders, page, limit, offset, total), nil
}

// AdminStats gathers dashboard counters concurrently.
func (s *OrderService) AdminStats(ctx context.Context) (transport.StatsResponse, error) {
	var out transport.StatsResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.TotalProducts, err = s.Repo.CountProducts(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveProducts, err = s.Repo.CountProducts(gctx, true)
		return err
	})
	g.Go(func() (err error) {
		out.TotalOrders, err = s.Repo.CountOrders(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		out.PendingOrders, err = s.Repo.CountOrders(gctx, models.StatusPending)
		return err
	})
	g.Go(func() (err error) {
		out.ApprovedOrders, err = s.Repo.CountOrders(gctx, models.StatusApproved)
		return err
	})

	if err := g.Wait(); err != nil {
		return transport.StatsResponse{}, err
	}
	return out, nil
}
