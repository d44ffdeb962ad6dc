package repo_test

import (
	"context"
	"testing"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/testdb"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateCart_CreatesOnce(t *testing.T) {
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	ctx := context.Background()
	user := uuid.New()

	first, err := r.GetOrCreateCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, first.Lines)

	second, err := r.GetOrCreateCart(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var n int64
	require.NoError(t, gdb.Model(&models.Cart{}).Where("user_id = ?", user).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestReplaceLines_KeepsOrderAndResolvesProducts(t *testing.T) {
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	ctx := context.Background()
	user := uuid.New()

	a := testdb.Product(t, gdb, "A", "5")
	b := testdb.Product(t, gdb, "B", "7")

	cart, err := r.ReplaceLines(ctx, user, []models.CartLine{
		{ProductID: b.ID, Quantity: 2, SelectedFragrances: []string{"rose"}},
		{ProductID: a.ID, Quantity: 1, CustomMessage: "hi"},
	})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, b.ID, cart.Lines[0].ProductID)
	require.NotNil(t, cart.Lines[0].Product)
	assert.Equal(t, "B", cart.Lines[0].Product.Name)
	assert.Equal(t, []string{"rose"}, cart.Lines[0].SelectedFragrances)
	assert.Equal(t, "hi", cart.Lines[1].CustomMessage)

	cart, err = r.ReplaceLines(ctx, user, nil)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}

func TestMergeLines_UpdatesExistingAndAppends(t *testing.T) {
	gdb := testdb.New(t)
	r := &repo.GormRepo{DB: gdb}
	ctx := context.Background()
	user := uuid.New()

	a := testdb.Product(t, gdb, "A", "5")
	b := testdb.Product(t, gdb, "B", "7")

	before, err := r.ReplaceLines(ctx, user, []models.CartLine{{ProductID: a.ID, Quantity: 1}})
	require.NoError(t, err)

	cart, err := r.MergeLines(ctx, user, func(existing []models.CartLine) []models.CartLine {
		require.Len(t, existing, 1)
		existing[0].Quantity = 4
		return append(existing, models.CartLine{ProductID: b.ID, Quantity: 2})
	})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, before.Lines[0].ID, cart.Lines[0].ID)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
	assert.Equal(t, b.ID, cart.Lines[1].ProductID)
	assert.Equal(t, 2, cart.Lines[1].Quantity)

	require.NoError(t, r.ClearCart(ctx, user))
	cart, err = r.GetOrCreateCart(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
}
