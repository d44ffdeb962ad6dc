package repo

import (
	"context"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ratingAggregate struct {
	Avg   float64
	Count int64
}

// CreateReview stores the review and refreshes the product's rating and
// review count inside the same transaction. A second review by the same user
// fails with ErrDuplicate through the (product_id, user_id) unique index.
func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) (float64, int64, error) {
	var agg ratingAggregate
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.Select("id").Where("id = ?", review.ProductID).First(&prod).Error; err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", review.ProductID).
			Scan(&agg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]any{"rating": agg.Avg, "reviews": agg.Count}).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return agg.Avg, agg.Count, nil
}

func (r *GormRepo) GetReview(ctx context.Context, productID, userID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
