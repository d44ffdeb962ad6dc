package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

type CartHTTP struct {
	Svc *service.CartService
}

func cartResponse(cart *models.Cart) transport.CartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return transport.CartResponse{Items: lines}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	userID, err := caller(c, l, "get_cart_error")
	if err != nil {
		return err
	}
	cart, err := h.Svc.GetCart(ctx, userID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *CartHTTP) ReplaceCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.replace_cart")

	userID, err := caller(c, l, "replace_cart_error")
	if err != nil {
		return err
	}
	var req transport.ReplaceCartRequest
	if err := bind(c, l, "replace_cart_error", &req); err != nil {
		return err
	}
	cart, err := h.Svc.ReplaceCart(ctx, userID, req)
	if err != nil {
		return fail(l, "replace_cart_error", err)
	}
	l.Info("replace_cart_success", "lines", len(cart.Lines))
	return c.JSON(http.StatusOK, cartResponse(cart))
}

func (h *CartHTTP) MergeCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.merge_cart")

	userID, err := caller(c, l, "merge_cart_error")
	if err != nil {
		return err
	}
	var req transport.MergeCartRequest
	if err := bind(c, l, "merge_cart_error", &req); err != nil {
		return err
	}
	cart, err := h.Svc.MergeCart(ctx, userID, req.Lines())
	if err != nil {
		return fail(l, "merge_cart_error", err)
	}
	l.Info("merge_cart_success", "incoming", len(req.Lines()), "lines", len(cart.Lines))
	return c.JSON(http.StatusOK, cartResponse(cart))
}
