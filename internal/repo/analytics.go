package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dayExpr buckets orders.created_at by UTC calendar day as YYYY-MM-DD.
// SQLite keeps timestamps as UTC text, so the date is its leading ten bytes.
func (r *GormRepo) dayExpr() string {
	if r.dialect() == "sqlite" {
		return "substr(orders.created_at, 1, 10)"
	}
	return "to_char(orders.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
}

// cents undoes float drift from SQLite, where decimal columns have NUMERIC
// affinity and SUM runs over REAL values.
func cents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func (r *GormRepo) SalesByDay(ctx context.Context, since time.Time, excluded []models.OrderStatus) ([]transport.SalesPoint, error) {
	var rows []struct {
		Day        string
		TotalSales decimal.Decimal
		OrderCount int64
	}
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select(r.dayExpr()+" AS day, SUM(orders.total_amount) AS total_sales, COUNT(*) AS order_count").
		Where("orders.created_at >= ? AND orders.status NOT IN ?", since, excluded).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]transport.SalesPoint, 0, len(rows))
	for _, row := range rows {
		out = append(out, transport.SalesPoint{Date: row.Day, TotalSales: cents(row.TotalSales), OrderCount: row.OrderCount})
	}
	return out, nil
}

// TopProducts ranks products by units sold in orders placed since the given
// time, skipping orders in the excluded statuses.
func (r *GormRepo) TopProducts(ctx context.Context, since time.Time, excluded []models.OrderStatus, limit int) ([]transport.TopProduct, error) {
	var rows []struct {
		ProductID uuid.UUID
		Quantity  int64
		Revenue   decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Table("order_items").
		Select("order_items.product_id AS product_id, SUM(order_items.quantity) AS quantity, SUM(order_items.quantity * order_items.price_at_purchase) AS revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ? AND orders.status NOT IN ?", since, excluded).
		Group("order_items.product_id").
		Order("quantity DESC, revenue DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := r.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]transport.TopProduct, 0, len(rows))
	for _, row := range rows {
		p, ok := products[row.ProductID]
		if !ok {
			continue
		}
		out = append(out, transport.TopProduct{
			ProductID: row.ProductID,
			Name:      p.Name,
			Quantity:  row.Quantity,
			Revenue:   cents(row.Revenue),
		})
	}
	return out, nil
}

func (r *GormRepo) StatusDistribution(ctx context.Context, since time.Time) ([]transport.StatusCount, error) {
	out := make([]transport.StatusCount, 0)
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("status").
		Order("status ASC").
		Scan(&out).Error
	return out, err
}
