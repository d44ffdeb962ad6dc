package repo

import (
	"context"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func tagsByIDs(tx *gorm.DB, ids []uuid.UUID) ([]models.Tag, error) {
	ids = uniqueIDs(ids)
	tags := make([]models.Tag, 0, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, &UnknownRefError{Kind: "tags", IDs: missingIDs(ids, tags, func(t models.Tag) uuid.UUID { return t.ID })}
	}
	return tags, nil
}

func fragrancesByIDs(tx *gorm.DB, ids []uuid.UUID) ([]models.Fragrance, error) {
	ids = uniqueIDs(ids)
	frags := make([]models.Fragrance, 0, len(ids))
	if len(ids) == 0 {
		return frags, nil
	}
	if err := tx.Where("id IN ?", ids).Find(&frags).Error; err != nil {
		return nil, err
	}
	if len(frags) != len(ids) {
		return nil, &UnknownRefError{Kind: "fragrances", IDs: missingIDs(ids, frags, func(f models.Fragrance) uuid.UUID { return f.ID })}
	}
	return frags, nil
}

func missingIDs[T any](want []uuid.UUID, got []T, id func(T) uuid.UUID) []uuid.UUID {
	have := make(map[uuid.UUID]struct{}, len(got))
	for _, g := range got {
		have[id(g)] = struct{}{}
	}
	var out []uuid.UUID
	for _, w := range want {
		if _, ok := have[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

func (r *GormRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0)
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *GormRepo) CreateTag(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if err := r.DB.WithContext(ctx).Create(tag).Error; err != nil {
		return nil, translate(err)
	}
	return tag, nil
}

func (r *GormRepo) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Tag{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) ListFragrances(ctx context.Context) ([]models.Fragrance, error) {
	frags := make([]models.Fragrance, 0)
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&frags).Error
	return frags, err
}

func (r *GormRepo) GetFragrance(ctx context.Context, id uuid.UUID) (*models.Fragrance, error) {
	var f models.Fragrance
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *GormRepo) CreateFragrance(ctx context.Context, f *models.Fragrance) (*models.Fragrance, error) {
	if err := r.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, translate(err)
	}
	return f, nil
}

func (r *GormRepo) UpdateFragrance(ctx context.Context, id uuid.UUID, changes map[string]any) (*models.Fragrance, error) {
	if len(changes) > 0 {
		res := r.DB.WithContext(ctx).Model(&models.Fragrance{}).Where("id = ?", id).Updates(changes)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetFragrance(ctx, id)
}

func (r *GormRepo) DeleteFragrance(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_fragrances WHERE fragrance_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Fragrance{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
