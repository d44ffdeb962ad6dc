package repo

import (
	"context"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout holds the side effects committed together with a new order.
type Checkout struct {
	ClearCartOf    *uuid.UUID
	SaveAddressFor *uuid.UUID
}

// CreateOrder verifies the referenced products, stores the order with its
// items, clears the buyer's cart and records the shipping address, all in one
// transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, co Checkout) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(order.Items))
		for _, it := range order.Items {
			ids = append(ids, it.ProductID)
		}
		if err := checkProducts(tx, ids); err != nil {
			return err
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		if co.ClearCartOf != nil {
			if err := clearCart(tx, *co.ClearCartOf); err != nil {
				return err
			}
		}
		if co.SaveAddressFor != nil {
			if err := saveAddress(tx, *co.SaveAddressFor, order.ShippingAddress); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("order_items.created_at ASC, order_items.id ASC") })
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := preloadItems(r.DB.WithContext(ctx)).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, q transport.OrderQuery, offset, limit int) (int64, []models.Order, error) {
	base := r.DB.WithContext(ctx).Model(&models.Order{})
	if q.UserID != nil {
		base = base.Where("user_id = ?", *q.UserID)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.Order, 0)
	if err := preloadItems(base).Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// UpdateOrder applies changes in a single statement and returns the stored
// order.
func (r *GormRepo) UpdateOrder(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetOrder(ctx, id)
}

func (r *GormRepo) CountOrders(ctx context.Context, status models.OrderStatus) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}

func saveAddress(tx *gorm.DB, userID uuid.UUID, addr models.ShippingAddress) error {
	row := models.Address{UserID: userID, ShippingAddress: addr, Fingerprint: addr.Fingerprint()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "fingerprint"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (r *GormRepo) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	out := make([]models.Address, 0)
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, err
}

// SaveAddress stores addr in the user's address book unless an equivalent
// entry exists, and returns the stored entry.
func (r *GormRepo) SaveAddress(ctx context.Context, userID uuid.UUID, addr models.ShippingAddress) (*models.Address, error) {
	var out models.Address
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveAddress(tx, userID, addr); err != nil {
			return err
		}
		return tx.Where("user_id = ? AND fingerprint = ?", userID, addr.Fingerprint()).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
