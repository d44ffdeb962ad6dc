package repo

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tag{},
		&models.Fragrance{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.CartLine{},
		&models.Order{},
		&models.OrderItem{},
		&models.Address{},
		&models.Enquiry{},
		&models.Testimonial{},
		&models.StoreSettings{},
	)
}

func (r *GormRepo) dialect() string {
	return r.DB.Dialector.Name()
}
