package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsQueries(t *testing.T) {
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	ctx := context.Background()

	a := testdb.Product(t, gdb, "A", "10")
	b := testdb.Product(t, gdb, "B", "20")
	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	item := func(p models.Product, qty int) models.OrderItem {
		return models.OrderItem{ProductID: p.ID, Quantity: qty, PriceAtPurchase: p.Price}
	}
	for _, o := range []*models.Order{
		newOrder(nil, models.StatusShipped, day1, item(a, 3)),
		newOrder(nil, models.StatusPending, day1, item(b, 1)),
		newOrder(nil, models.StatusDelivered, day2, item(b, 2), item(a, 1)),
		newOrder(nil, models.StatusCancelled, day2, item(a, 9)),
		newOrder(nil, models.StatusShipped, old, item(b, 50)),
	} {
		_, err := r.CreateOrder(ctx, o, repo.Checkout{})
		require.NoError(t, err)
	}

	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	sales, err := r.SalesByDay(ctx, since, []models.OrderStatus{models.StatusCancelled, models.StatusRejected})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "2026-03-01", sales[0].Date)
	assert.True(t, decimal.NewFromInt(50).Equal(sales[0].TotalSales), sales[0].TotalSales.String())
	assert.EqualValues(t, 2, sales[0].OrderCount)
	assert.Equal(t, "2026-03-02", sales[1].Date)
	assert.True(t, decimal.NewFromInt(50).Equal(sales[1].TotalSales), sales[1].TotalSales.String())
	assert.EqualValues(t, 1, sales[1].OrderCount)

	top, err := r.TopProducts(ctx, since, []models.OrderStatus{models.StatusCancelled, models.StatusRejected, models.StatusPending}, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].Name)
	assert.EqualValues(t, 4, top[0].Quantity)
	assert.True(t, decimal.NewFromInt(40).Equal(top[0].Revenue))
	assert.Equal(t, "B", top[1].Name)
	assert.EqualValues(t, 2, top[1].Quantity)

	dist, err := r.StatusDistribution(ctx, since)
	require.NoError(t, err)
	counts := map[models.OrderStatus]int64{}
	for _, d := range dist {
		counts[d.Status] = d.Count
	}
	assert.Equal(t, map[models.OrderStatus]int64{
		models.StatusShipped:   1,
		models.StatusPending:   1,
		models.StatusDelivered: 1,
		models.StatusCancelled: 1,
	}, counts)
}

func TestAnalyticsQueries_Empty(t *testing.T) {
	r := newRepo(t)
	ctx := context.Background()
	since := time.Unix(0, 0).UTC()

	sales, err := r.SalesByDay(ctx, since, []models.OrderStatus{models.StatusCancelled})
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)

	top, err := r.TopProducts(ctx, since, []models.OrderStatus{models.StatusCancelled}, 5)
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)

	dist, err := r.StatusDistribution(ctx, since)
	require.NoError(t, err)
	assert.NotNil(t, dist)
	assert.Empty(t, dist)
}

func TestAnalyticsQueries_SumsStayInCents(t *testing.T) {
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	ctx := context.Background()

	a := testdb.Product(t, gdb, "A", "0.10")
	b := testdb.Product(t, gdb, "B", "0.20")
	day := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	for _, p := range []models.Product{a, b} {
		o := newOrder(nil, models.StatusShipped, day, models.OrderItem{ProductID: p.ID, Quantity: 1, PriceAtPurchase: p.Price})
		_, err := r.CreateOrder(ctx, o, repo.Checkout{})
		require.NoError(t, err)
	}
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	sales, err := r.SalesByDay(ctx, since, []models.OrderStatus{models.StatusCancelled})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "0.3", sales[0].TotalSales.String())

	top, err := r.TopProducts(ctx, since, []models.OrderStatus{models.StatusCancelled}, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	total := top[0].Revenue.Add(top[1].Revenue)
	assert.Equal(t, "0.3", total.String())
}
