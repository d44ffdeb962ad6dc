package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRange   = "30d"
	topProductsMax = 5
)

var rangeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

var (
	salesExcluded = []models.OrderStatus{models.StatusCancelled, models.StatusRejected}
	topExcluded   = []models.OrderStatus{models.StatusCancelled, models.StatusRejected, models.StatusPending}
)

type AnalyticsService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

// RangeStart resolves a range name to its normalised name and the first
// instant it covers: UTC midnight N days ago, or the epoch for "all".
// Unknown names fall back to the default range.
func RangeStart(name string, now time.Time) (string, time.Time) {
	if name == "all" {
		return name, time.Unix(0, 0).UTC()
	}
	days, ok := rangeDays[name]
	if !ok {
		name, days = DefaultRange, rangeDays[DefaultRange]
	}
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return name, midnight.AddDate(0, 0, -days)
}

func (s *AnalyticsService) GetAnalytics(ctx context.Context, rangeName string) (transport.AnalyticsResponse, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	name, since := RangeStart(rangeName, now)

	out := transport.AnalyticsResponse{
		Range:              name,
		SalesData:          []transport.SalesPoint{},
		TopProducts:        []transport.TopProduct{},
		StatusDistribution: []transport.StatusCount{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.Repo.SalesByDay(gctx, since, salesExcluded)
		if err == nil {
			out.SalesData = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.Repo.TopProducts(gctx, since, topExcluded, topProductsMax)
		if err == nil {
			out.TopProducts = rows
		}
		return err
	})
	g.Go(func() error {
		rows, err := s.Repo.StatusDistribution(gctx, since)
		if err == nil {
			out.StatusDistribution = rows
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.AnalyticsResponse{}, err
	}
	return out, nil
}
