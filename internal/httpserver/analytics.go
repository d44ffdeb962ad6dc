package httpserver

import (
	"net/http"

	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	"github.com/labstack/echo/v4"
)

type AnalyticsHTTP struct {
	Svc *service.AnalyticsService
}

func (h *AnalyticsHTTP) GetAnalytics(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.analytics")

	res, err := h.Svc.GetAnalytics(ctx, c.QueryParam("range"))
	if err != nil {
		return fail(l, "analytics_error", err)
	}
	return c.JSON(http.StatusOK, res)
}
