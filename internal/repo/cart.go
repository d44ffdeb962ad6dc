package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateCart returns the user's cart with its lines in position order,
// creating an empty cart on first access.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := ensureCart(tx, userID, false)
		if err != nil {
			return err
		}
		cart = c
		return loadLines(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// ReplaceLines overwrites the user's cart with lines in the given order.
func (r *GormRepo) ReplaceLines(ctx context.Context, userID uuid.UUID, lines []models.CartLine) (*models.Cart, error) {
	return r.mutateCart(ctx, userID, func(tx *gorm.DB, cart *models.Cart) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		return insertLines(tx, cart.ID, lines, 0)
	})
}

// MergeLines locks the cart row, hands the current lines to merge and stores
// the result. Existing lines keep their ids and positions; new lines are
// appended.
func (r *GormRepo) MergeLines(ctx context.Context, userID uuid.UUID, merge func(existing []models.CartLine) []models.CartLine) (*models.Cart, error) {
	return r.mutateCart(ctx, userID, func(tx *gorm.DB, cart *models.Cart) error {
		if err := loadLines(tx, cart); err != nil {
			return err
		}
		merged := merge(cart.Lines)

		var fresh []models.CartLine
		for _, l := range merged {
			if l.ID == uuid.Nil {
				fresh = append(fresh, l)
				continue
			}
			if err := tx.Model(&models.CartLine{}).
				Where("id = ? AND cart_id = ?", l.ID, cart.ID).
				Update("quantity", l.Quantity).Error; err != nil {
				return err
			}
		}
		return insertLines(tx, cart.ID, fresh, nextPosition(cart.Lines))
	})
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) error {
	return clearCart(r.DB.WithContext(ctx), userID)
}

func (r *GormRepo) mutateCart(ctx context.Context, userID uuid.UUID, fn func(tx *gorm.DB, cart *models.Cart) error) (*models.Cart, error) {
	var cart *models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := ensureCart(tx, userID, true)
		if err != nil {
			return err
		}
		if err := fn(tx, c); err != nil {
			return err
		}
		if err := tx.Model(c).Update("updated_at", tx.NowFunc()).Error; err != nil {
			return err
		}
		cart = c
		return loadLines(tx, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func ensureCart(tx *gorm.DB, userID uuid.UUID, lock bool) (*models.Cart, error) {
	find := func() (*models.Cart, error) {
		q := tx
		if lock {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var cart models.Cart
		if err := q.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}

	cart, err := find()
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&models.Cart{UserID: userID}).Error; err != nil {
		return nil, err
	}
	// a concurrent first access may have won the insert
	return find()
}

func loadLines(tx *gorm.DB, cart *models.Cart) error {
	lines := make([]models.CartLine, 0)
	if err := tx.Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("position ASC").
		Find(&lines).Error; err != nil {
		return err
	}
	cart.Lines = lines
	return nil
}

func insertLines(tx *gorm.DB, cartID uuid.UUID, lines []models.CartLine, from int) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]models.CartLine, len(lines))
	for i, l := range lines {
		rows[i] = models.CartLine{
			CartID:             cartID,
			Position:           from + i,
			ProductID:          l.ProductID,
			Quantity:           l.Quantity,
			SelectedFragrances: l.SelectedFragrances,
			CustomMessage:      l.CustomMessage,
		}
	}
	return tx.Omit(clause.Associations).Create(&rows).Error
}

func nextPosition(lines []models.CartLine) int {
	next := 0
	for _, l := range lines {
		if l.Position >= next {
			next = l.Position + 1
		}
	}
	return next
}

func clearCart(tx *gorm.DB, userID uuid.UUID) error {
	var cartIDs []uuid.UUID
	if err := tx.Model(&models.Cart{}).Where("user_id = ?", userID).Pluck("id", &cartIDs).Error; err != nil {
		return err
	}
	if len(cartIDs) == 0 {
		return nil
	}
	return tx.Where("cart_id IN ?", cartIDs).Delete(&models.CartLine{}).Error
}
