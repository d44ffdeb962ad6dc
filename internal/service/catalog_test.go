package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/testdb"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndex struct {
	indexed []uuid.UUID
	deleted []uuid.UUID
	hits    []uuid.UUID
	err     error
}

func (f *fakeIndex) IndexProduct(_ context.Context, p models.Product) error {
	f.indexed = append(f.indexed, p.ID)
	return f.err
}

func (f *fakeIndex) DeleteProduct(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _ string, _, _ int) (int64, []uuid.UUID, error) {
	return int64(len(f.hits)), f.hits, f.err
}

func TestCreateProduct_ValidatesAndIndexes(t *testing.T) {
	e := newEnv(t)
	idx := &fakeIndex{}
	e.Catalog.Index = idx
	ctx := context.Background()

	_, err := e.Catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.Catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = e.Catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(1), Tags: []uuid.UUID{uuid.New()}})
	assert.ErrorIs(t, err, ErrValidation)

	p, err := e.Catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Amber", Price: decimal.NewFromInt(30)})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
	assert.NotNil(t, p.Images)
	assert.Equal(t, []uuid.UUID{p.ID}, idx.indexed)

	_, err = e.Catalog.CreateProduct(ctx, transport.CreateProductRequest{Name: "Amber", Price: decimal.NewFromInt(30)})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "product with this name already exists", Detail(err))
}

func TestUpdateProduct_PartialAndIndexFailureIgnored(t *testing.T) {
	e := newEnv(t)
	idx := &fakeIndex{err: errors.New("es down")}
	e.Catalog.Index = idx
	ctx := context.Background()

	p := testdb.Product(t, e.DB, "Amber", "30")
	inactive := false
	got, err := e.Catalog.UpdateProduct(ctx, p.ID, transport.PatchProductRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Amber", got.Name)
	assert.Len(t, idx.indexed, 1)

	_, err = e.Catalog.GetProduct(ctx, p.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = e.Catalog.GetProduct(ctx, p.ID, true)
	require.NoError(t, err)

	empty := ""
	_, err = e.Catalog.UpdateProduct(ctx, p.ID, transport.PatchProductRequest{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.Catalog.UpdateProduct(ctx, uuid.New(), transport.PatchProductRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct_ConflictWhenOrdered(t *testing.T) {
	e := newEnv(t)
	idx := &fakeIndex{}
	e.Catalog.Index = idx
	ctx := context.Background()

	ordered := testdb.Product(t, e.DB, "Ordered", "10")
	free := testdb.Product(t, e.DB, "Free", "10")
	_, err := e.Orders.CreateOrder(ctx, transport.CreateOrderRequest{
		Items:           []transport.OrderItemRequest{{ProductID: ordered.ID, Quantity: 1, Price: decimal.NewFromInt(10)}},
		ShippingAddress: shipping(),
	}, uuid.New())
	require.NoError(t, err)

	err = e.Catalog.DeleteProduct(ctx, ordered.ID)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = e.Catalog.GetProduct(ctx, ordered.ID, true)
	require.NoError(t, err)

	require.NoError(t, e.Catalog.DeleteProduct(ctx, free.ID))
	_, err = e.Catalog.GetProduct(ctx, free.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []uuid.UUID{free.ID}, idx.deleted)

	assert.ErrorIs(t, e.Catalog.DeleteProduct(ctx, uuid.New()), ErrNotFound)
}

func TestRateProduct(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := testdb.Product(t, e.DB, "Amber", "30")
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	res, err := e.Catalog.RateProduct(ctx, p.ID, u1, transport.RateProductRequest{Rating: 4})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.Rating, 1e-9)
	assert.EqualValues(t, 1, res.Reviews)

	_, err = e.Catalog.RateProduct(ctx, p.ID, u1, transport.RateProductRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyRated)
	assert.Equal(t, "already rated", Detail(err))

	_, err = e.Catalog.RateProduct(ctx, p.ID, u2, transport.RateProductRequest{Rating: 5})
	require.NoError(t, err)
	res, err = e.Catalog.RateProduct(ctx, p.ID, u3, transport.RateProductRequest{Rating: 3})
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.Rating, 1e-9)
	assert.EqualValues(t, 3, res.Reviews)

	for _, bad := range []int{0, 6, -1} {
		_, err = e.Catalog.RateProduct(ctx, p.ID, uuid.New(), transport.RateProductRequest{Rating: bad})
		assert.ErrorIs(t, err, ErrValidation)
	}

	_, err = e.Catalog.RateProduct(ctx, uuid.New(), u1, transport.RateProductRequest{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := e.Catalog.GetUserRating(ctx, p.ID, u2)
	require.NoError(t, err)
	assert.Equal(t, transport.UserRatingResponse{Rated: true, Rating: 5}, r)

	r, err = e.Catalog.GetUserRating(ctx, p.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, r.Rated)
}

func TestSearch_IndexAndFallback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	a := testdb.Product(t, e.DB, "Amber Candle", "30")
	b := testdb.Product(t, e.DB, "Cedar Soap", "8")

	page, err := e.Catalog.Search(ctx, "amber", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, a.ID, page.Data[0].ID)

	e.Catalog.Index = &fakeIndex{hits: []uuid.UUID{b.ID, uuid.New(), a.ID}}
	page, err = e.Catalog.Search(ctx, "anything", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, b.ID, page.Data[0].ID)
	assert.Equal(t, a.ID, page.Data[1].ID)

	_, err = e.Catalog.Search(ctx, "  ", 1, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTagsAndFragrances(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	admin := uuid.New()

	tag, err := e.Catalog.CreateTag(ctx, transport.CreateTagRequest{Name: "citrus"}, admin)
	require.NoError(t, err)
	require.NotNil(t, tag.CreatedBy)
	assert.Equal(t, admin, *tag.CreatedBy)

	_, err = e.Catalog.CreateTag(ctx, transport.CreateTagRequest{Name: "citrus"}, admin)
	assert.ErrorIs(t, err, ErrConflict)
	_, err = e.Catalog.CreateTag(ctx, transport.CreateTagRequest{}, admin)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, e.Catalog.DeleteTag(ctx, tag.ID))
	assert.ErrorIs(t, e.Catalog.DeleteTag(ctx, tag.ID), ErrNotFound)

	f, err := e.Catalog.CreateFragrance(ctx, transport.CreateFragranceRequest{
		Name:  "Neroli",
		Notes: models.FragranceNotes{Top: []string{"neroli"}, Base: []string{"musk"}},
	}, admin)
	require.NoError(t, err)
	assert.True(t, f.InStock)

	notes := models.FragranceNotes{Middle: []string{"jasmine"}}
	got, err := e.Catalog.UpdateFragrance(ctx, f.ID, transport.PatchFragranceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, []string{"jasmine"}, got.Notes.Middle)
	assert.Empty(t, got.Notes.Top)

	require.NoError(t, e.Catalog.DeleteFragrance(ctx, f.ID))
	_, err = e.Catalog.GetFragrance(ctx, f.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
