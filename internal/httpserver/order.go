package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/labstack/echo/v4"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	userID, err := caller(c, l, "create_order_error")
	if err != nil {
		return err
	}
	var req transport.CreateOrderRequest
	if err := bind(c, l, "create_order_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.CreateOrder(ctx, req, userID)
	if err != nil {
		return fail(l, "create_order_error", err)
	}

	l.Info("create_order_success", "order_id", order.ID, "total", order.TotalAmount.String())
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	userID, err := caller(c, l, "my_orders_error")
	if err != nil {
		return err
	}
	page, err := h.Svc.ListMyOrders(ctx, userID,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		c.QueryParam("status"))
	if err != nil {
		return fail(l, "my_orders_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	userID, err := caller(c, l, "get_order_error")
	if err != nil {
		return err
	}
	id, err := pathID(c, l, "get_order_error", "id")
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		return fail(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	page, err := h.Svc.AdminListOrders(ctx,
		util.ParseIntDefault(c.QueryParam("page"), 1),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultPageSize),
		c.QueryParam("status"))
	if err != nil {
		return fail(l, "admin_list_orders_error", err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_order_status")

	id, err := pathID(c, l, "update_order_status_error", "id")
	if err != nil {
		return err
	}
	var req transport.UpdateStatusRequest
	if err := bind(c, l, "update_order_status_error", &req); err != nil {
		return err
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, id, req)
	if err != nil {
		return fail(l, "update_order_status_error", err)
	}

	l.Info("update_order_status_success", "order_id", id, "order_status", order.Status)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.stats")

	stats, err := h.Svc.AdminStats(ctx)
	if err != nil {
		return fail(l, "admin_stats_error", err)
	}
	return c.JSON(http.StatusOK, stats)
}
