// Package testdb opens migrated in-memory databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/pkg/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func New(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	require.NoError(t, repo.Migrate(gdb))
	return gdb
}

func Product(t *testing.T, gdb *gorm.DB, name, price string) models.Product {
	t.Helper()

	p := models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
		Images:   []string{},
		Features: []string{},
	}
	require.NoError(t, gdb.Create(&p).Error)
	return p
}
