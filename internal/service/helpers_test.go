package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/notify"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/testdb"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) ofType(t notify.EventType) []notify.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []notify.Event
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// steppingClock advances by one second on every reading.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(start time.Time) *steppingClock {
	return &steppingClock{t: start}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type env struct {
	DB        *gorm.DB
	Repo      *repo.GormRepo
	Events    *recordingPublisher
	Clock     *steppingClock
	Orders    *OrderService
	Carts     *CartService
	Catalog   *CatalogService
	Analytics *AnalyticsService
	Accounts  *AccountService
	Office    *BackOfficeService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	pub := &recordingPublisher{}
	clock := newClock(time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC))

	return &env{
		DB:        gdb,
		Repo:      r,
		Events:    pub,
		Clock:     clock,
		Orders:    &OrderService{Repo: r, Events: pub, Now: clock.Now},
		Carts:     &CartService{Repo: r},
		Catalog:   &CatalogService{Repo: r},
		Analytics: &AnalyticsService{Repo: r, Now: clock.Now},
		Accounts:  &AccountService{Repo: r},
		Office:    &BackOfficeService{Repo: r, Events: pub, Now: clock.Now},
	}
}
