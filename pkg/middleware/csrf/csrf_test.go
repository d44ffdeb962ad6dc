package csrf

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	g := e.Group("", Middleware(Config{}))
	g.GET("/cart", ok)
	g.POST("/cart", ok)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_BearerAndAnonymousPass(t *testing.T) {
	e := newEcho()

	req := httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/cart", nil)
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestMiddleware_CookieSession(t *testing.T) {
	e := newEcho()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	rec := serve(e, req)
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get("X-CSRF-Token")
	require.NotEmpty(t, token)

	var issued *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "XSRF-TOKEN" {
			issued = ck
		}
	}
	require.NotNil(t, issued)
	assert.Equal(t, token, issued.Value)

	req = httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: token})
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: token})
	req.Header.Set("X-CSRF-Token", token)
	assert.Equal(t, http.StatusOK, serve(e, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	req.AddCookie(&http.Cookie{Name: "XSRF-TOKEN", Value: token})
	req.Header.Set("X-CSRF-Token", token)
	req.Header.Set("Origin", "https://evil.example")
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)
}
