package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AccountHTTP struct {
	Svc *service.AccountService
}

func (h *AccountHTTP) ListAddresses(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list_addresses")

	userID, err := caller(c, l, "list_addresses_error")
	if err != nil {
		return err
	}
	addrs, err := h.Svc.ListAddresses(ctx, userID)
	if err != nil {
		return fail(l, "list_addresses_error", err)
	}
	if addrs == nil {
		addrs = []models.Address{}
	}
	return c.JSON(http.StatusOK, addrs)
}

func (h *AccountHTTP) AddAddress(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.add_address")

	userID, err := caller(c, l, "add_address_error")
	if err != nil {
		return err
	}
	var req models.ShippingAddress
	if err := bind(c, l, "add_address_error", &req); err != nil {
		return err
	}
	addr, err := h.Svc.AddAddress(ctx, userID, req)
	if err != nil {
		return fail(l, "add_address_error", err)
	}
	return c.JSON(http.StatusCreated, addr)
}
