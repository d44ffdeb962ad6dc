package repo

import (
	"context"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) CreateEnquiry(ctx context.Context, q *models.Enquiry) error {
	return r.DB.WithContext(ctx).Create(q).Error
}

// ListEnquiries returns one page, newest first, plus the overall and unread
// counts.
func (r *GormRepo) ListEnquiries(ctx context.Context, offset, limit int) (total, unread int64, out []models.Enquiry, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&models.Enquiry{}).Count(&total).Error; err != nil {
		return 0, 0, nil, err
	}
	if err = db.Model(&models.Enquiry{}).Where("is_read = ?", false).Count(&unread).Error; err != nil {
		return 0, 0, nil, err
	}
	out = make([]models.Enquiry, 0)
	err = db.Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&out).Error
	return total, unread, out, err
}

func (r *GormRepo) MarkEnquiryRead(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	db := r.DB.WithContext(ctx)
	res := db.Model(&models.Enquiry{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var q models.Enquiry
	if err := db.Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *GormRepo) CreateTestimonial(ctx context.Context, t *models.Testimonial) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) ApprovedTestimonials(ctx context.Context, limit int) ([]models.Testimonial, error) {
	out := make([]models.Testimonial, 0)
	err := r.DB.WithContext(ctx).
		Where("is_approved = ?", true).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListTestimonials filters by approval when approved is set and reports the
// overall and pending counts regardless of the filter.
func (r *GormRepo) ListTestimonials(ctx context.Context, approved *bool, offset, limit int) (total, pending int64, out []models.Testimonial, err error) {
	db := r.DB.WithContext(ctx)
	if err = db.Model(&models.Testimonial{}).Count(&total).Error; err != nil {
		return 0, 0, nil, err
	}
	if err = db.Model(&models.Testimonial{}).Where("is_approved = ?", false).Count(&pending).Error; err != nil {
		return 0, 0, nil, err
	}

	q := db.Model(&models.Testimonial{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}
	out = make([]models.Testimonial, 0)
	err = q.Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&out).Error
	return total, pending, out, err
}

func (r *GormRepo) ApproveTestimonial(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	db := r.DB.WithContext(ctx)
	res := db.Model(&models.Testimonial{}).Where("id = ?", id).Update("is_approved", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var t models.Testimonial
	if err := db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormRepo) DeleteTestimonial(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Testimonial{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetSettings returns gorm.ErrRecordNotFound until settings are first saved.
func (r *GormRepo) GetSettings(ctx context.Context) (*models.StoreSettings, error) {
	var s models.StoreSettings
	if err := r.DB.WithContext(ctx).Where("id = ?", models.SettingsID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings inserts or replaces the singleton row.
func (r *GormRepo) SaveSettings(ctx context.Context, s *models.StoreSettings) (*models.StoreSettings, error) {
	s.ID = models.SettingsID
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(s).Error
	if err != nil {
		return nil, err
	}
	return r.GetSettings(ctx)
}
