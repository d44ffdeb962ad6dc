package loggingmw

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/scent_shop/pkg/logging"
	middleware "github.com/Skotchmaster/scent_shop/pkg/middleware/auth"
)

const healthPrefix = "/health/"

// RequestLogger puts a request-scoped logger and the request id into the
// request context and writes one line per request. Errors are rendered here,
// so the handler chain above it sees a nil error. Health checks log at debug.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := req.Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", req.Method,
				"route", c.Path(),
				"url", req.URL.Path,
				"remote_ip", c.RealIP(),
			)
			ctx := req.Context()
			if rid != "" {
				l = l.With(logging.RequestIDKey, rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
				ctx = logging.WithRequestID(ctx, rid)
			}
			c.SetRequest(req.WithContext(logging.IntoContext(ctx, l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}
			if uid, ok := c.Get(middleware.CtxUserID).(string); ok && uid != "" {
				attrs = append(attrs, "user_id", uid)
			}

			switch {
			case status >= 500:
				l.Error("request_completed", append(attrs, "error", errText(err))...)
			case status >= 400:
				l.Warn("request_completed", append(attrs, "error", errText(err))...)
			case strings.HasPrefix(req.URL.Path, healthPrefix):
				l.Debug("request_completed", attrs...)
			default:
				l.Info("request_completed", append(attrs, "bytes", c.Response().Size, "user_agent", req.UserAgent())...)
			}
			return nil
		}
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	if he, ok := err.(*echo.HTTPError); ok {
		if m, ok := he.Message.(string); ok {
			return m
		}
	}
	return err.Error()
}
