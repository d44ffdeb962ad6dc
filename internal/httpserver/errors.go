package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/scent_shop/internal/service"
)

const serverError = "Server error"

// ErrorHandler renders every error as {"msg": "..."}. Anything that is not an
// *echo.HTTPError becomes a generic 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := http.StatusInternalServerError, serverError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		case error:
			msg = m.Error()
		default:
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, echo.Map{"msg": msg})
}

// fail logs a service error under event and maps it to the response status.
func fail(l *slog.Logger, event string, err error) error {
	var se *service.StatusError
	switch {
	case errors.As(err, &se):
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid status", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, se.Error())
	case errors.Is(err, service.ErrAlreadyRated):
		l.Warn(event, "status", http.StatusBadRequest, "reason", "already rated", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, service.Detail(err))
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", http.StatusBadRequest, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, service.Detail(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", http.StatusNotFound, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, service.Detail(err))
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", http.StatusConflict, "reason", "conflict", "error", err)
		return echo.NewHTTPError(http.StatusConflict, service.Detail(err))
	case errors.Is(err, service.ErrForbidden):
		l.Warn(event, "status", http.StatusForbidden, "reason", "forbidden", "error", err)
		return echo.NewHTTPError(http.StatusForbidden, service.Detail(err))
	default:
		l.Error(event, "status", http.StatusInternalServerError, "reason", "internal", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, serverError)
	}
}

func pathID(c echo.Context, l *slog.Logger, event, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", name+" is not a uuid", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func caller(c echo.Context, l *slog.Logger, event string) (uuid.UUID, error) {
	id, err := middleware.UserID(c)
	if err != nil {
		l.Warn(event, "status", http.StatusUnauthorized, "reason", "no authenticated user", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied")
	}
	return id, nil
}

func bind(c echo.Context, l *slog.Logger, event string, dst any) error {
	if err := c.Bind(dst); err != nil {
		l.Warn(event, "status", http.StatusBadRequest, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return nil
}
