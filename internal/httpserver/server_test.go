package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/service"
	"github.com/Skotchmaster/scent_shop/internal/testdb"
	"github.com/Skotchmaster/scent_shop/pkg/tokens"
)

var testSecret = []byte("test-secret")

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) count(t notify.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, ev := range p.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

type server struct {
	t      *testing.T
	e      *echo.Echo
	repo   *repo.GormRepo
	events *recordingPublisher
}

func newServer(t *testing.T) *server {
	t.Helper()
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	pub := &recordingPublisher{}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	Register(e, &Deps{
		DB:               gdb,
		CatalogHandler:   &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:      &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:     &OrderHTTP{Svc: &service.OrderService{Repo: r, Events: pub}},
		AnalyticsHandler: &AnalyticsHTTP{Svc: &service.AnalyticsService{Repo: r}},
		AccountHandler:   &AccountHTTP{Svc: &service.AccountService{Repo: r}},
		BackOffice:       &BackOfficeHTTP{Svc: &service.BackOfficeService{Repo: r, Events: pub}},
		JWTSecret:        testSecret,
	})
	return &server{t: t, e: e, repo: r, events: pub}
}

func token(t *testing.T, subject uuid.UUID, role string) string {
	t.Helper()
	tok, err := tokens.SignAccessToken(subject.String(), role, time.Now().Add(time.Hour), testSecret)
	require.NoError(t, err)
	return tok
}

func (s *server) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func msg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["msg"]
}
