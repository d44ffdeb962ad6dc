package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cart struct {
	ID        uuid.UUID  `gorm:"primaryKey"                                  json:"id"`
	UserID    uuid.UUID  `gorm:"uniqueIndex;not null"                        json:"user"`
	Lines     []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `                                                   json:"createdAt"`
	UpdatedAt time.Time  `                                                   json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartLine struct {
	ID                 uuid.UUID `gorm:"primaryKey"                 json:"id"`
	CartID             uuid.UUID `gorm:"index;not null"             json:"-"`
	Position           int       `gorm:"not null"                   json:"-"`
	ProductID          uuid.UUID `gorm:"index;not null"             json:"productId"`
	Product            *Product  `gorm:"foreignKey:ProductID"       json:"product,omitempty"`
	Quantity           int       `gorm:"not null;check:quantity>0"  json:"quantity"`
	SelectedFragrances []string  `gorm:"type:jsonb;serializer:json" json:"selectedFragrances"`
	CustomMessage      string    `                                  json:"customMessage"`
}

func (l *CartLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (CartLine) TableName() string {
	return "cart_lines"
}
