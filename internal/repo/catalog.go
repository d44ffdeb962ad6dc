package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func preloadCatalog(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name ASC") }).
		Preload("AvailableFragrances", func(tx *gorm.DB) *gorm.DB { return tx.Order("fragrances.name ASC") })
}

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := preloadCatalog(r.DB.WithContext(ctx)).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, f transport.ProductFilter, activeOnly bool, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("products.is_active = ?", true)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		q = q.Where("products.id IN (?)",
			r.DB.Table("product_tags").
				Select("product_tags.product_id").
				Joins("JOIN tags ON tags.id = product_tags.tag_id").
				Where("LOWER(tags.name) = ?", strings.ToLower(tag)))
	}
	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("products.rating >= ?", *f.MinRating)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Product, 0)
	if err := preloadCatalog(q).Order(sortClause(f.Sort)).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func sortClause(sort string) string {
	switch sort {
	case transport.SortPriceAsc:
		return "products.price ASC, products.id ASC"
	case transport.SortPriceDesc:
		return "products.price DESC, products.id ASC"
	case transport.SortRating:
		return "products.rating DESC, products.reviews DESC, products.id ASC"
	default:
		return "products.created_at DESC, products.id ASC"
	}
}

func (r *GormRepo) PreferredProducts(ctx context.Context, limit int) ([]models.Product, error) {
	items := make([]models.Product, 0, limit)
	err := preloadCatalog(r.DB.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("rating DESC, reviews DESC, created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *GormRepo) ActiveProductIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0)
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Pluck("id", &ids).Error
	return ids, err
}

// ProductsByIDs returns the found products keyed by id.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	return productsByIDs(r.DB.WithContext(ctx), ids)
}

func productsByIDs(tx *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.Product
	if err := tx.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

// checkProducts fails with *MissingProductsError when any id is unknown.
func checkProducts(tx *gorm.DB, ids []uuid.UUID) error {
	found, err := productsByIDs(tx, uniqueIDs(ids))
	if err != nil {
		return err
	}
	var missing []uuid.UUID
	for _, id := range uniqueIDs(ids) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &MissingProductsError{IDs: missing}
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, tagIDs, fragranceIDs []uuid.UUID) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := tagsByIDs(tx, tagIDs)
		if err != nil {
			return err
		}
		frags, err := fragrancesByIDs(tx, fragranceIDs)
		if err != nil {
			return err
		}
		prod.Tags = tags
		prod.AvailableFragrances = frags
		return translate(tx.Create(prod).Error)
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, prod.ID)
}

// UpdateProduct applies column changes and, when given, replaces the tag and
// fragrance sets.
func (r *GormRepo) UpdateProduct(ctx context.Context, id uuid.UUID, changes map[string]any, tagIDs, fragranceIDs *[]uuid.UUID) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}
		if len(changes) > 0 {
			if err := tx.Model(&prod).Updates(changes).Error; err != nil {
				return translate(err)
			}
		}
		if tagIDs != nil {
			tags, err := tagsByIDs(tx, *tagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&prod).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if fragranceIDs != nil {
			frags, err := fragrancesByIDs(tx, *fragranceIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&prod).Association("AvailableFragrances").Replace(frags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetProduct(ctx, id)
}

// DeleteProduct removes the product with its cart lines and join rows. It
// fails with ErrInUse while any order item still references the product.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			return err
		}

		var ordered int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
			return err
		}
		if ordered > 0 {
			return ErrInUse
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.CartLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&prod).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&prod).Association("AvailableFragrances").Clear(); err != nil {
			return err
		}

		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) CountProducts(ctx context.Context, activeOnly bool) (int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var n int64
	err := q.Count(&n).Error
	return n, err
}
