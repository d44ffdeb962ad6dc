package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                  uuid.UUID        `gorm:"primaryKey"                        json:"id"`
	Name                string           `gorm:"uniqueIndex;not null"              json:"name"`
	Description         string           `                                         json:"description"`
	Price               decimal.Decimal  `gorm:"type:decimal(12,2);not null"       json:"price"`
	OriginalPrice       *decimal.Decimal `gorm:"type:decimal(12,2)"                json:"originalPrice"`
	Rating              float64          `gorm:"not null;default:0"                json:"rating"`
	Reviews             int64            `gorm:"not null;default:0"                json:"reviews"`
	Images              []string         `gorm:"type:jsonb;serializer:json"        json:"images"`
	Features            []string         `gorm:"type:jsonb;serializer:json"        json:"features"`
	StockQuantity       int              `gorm:"not null;default:0"                json:"stock_quantity"`
	IsActive            bool             `gorm:"index;not null"                    json:"is_active"`
	AllowCustomMessage  bool             `gorm:"not null"                          json:"allow_custom_message"`
	Tags                []Tag            `gorm:"many2many:product_tags"            json:"tags"`
	AvailableFragrances []Fragrance      `gorm:"many2many:product_fragrances"      json:"available_fragrances"`
	CreatedAt           time.Time        `gorm:"index"                             json:"createdAt"`
	UpdatedAt           time.Time        `                                         json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Tag struct {
	ID        uuid.UUID  `gorm:"primaryKey"           json:"id"`
	Name      string     `gorm:"uniqueIndex;not null" json:"name"`
	CreatedBy *uuid.UUID `                            json:"createdBy,omitempty"`
	CreatedAt time.Time  `                            json:"createdAt"`
	UpdatedAt time.Time  `                            json:"updatedAt"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type FragranceNotes struct {
	Top    []string `json:"top"`
	Middle []string `json:"middle"`
	Base   []string `json:"base"`
}

type Fragrance struct {
	ID          uuid.UUID      `gorm:"primaryKey"                 json:"id"`
	Name        string         `gorm:"uniqueIndex;not null"       json:"name"`
	Description string         `                                  json:"description"`
	Image       string         `                                  json:"image"`
	Notes       FragranceNotes `gorm:"type:jsonb;serializer:json" json:"notes"`
	InStock     bool           `gorm:"not null"                   json:"in_stock"`
	CreatedBy   *uuid.UUID     `                                  json:"createdBy,omitempty"`
	CreatedAt   time.Time      `                                  json:"createdAt"`
	UpdatedAt   time.Time      `                                  json:"updatedAt"`
}

func (f *Fragrance) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Review is unique per (product, user); the index is what keeps concurrent
// submissions from producing two ratings.
type Review struct {
	ID        uuid.UUID `gorm:"primaryKey"                                  json:"id"`
	ProductID uuid.UUID `gorm:"not null;uniqueIndex:idx_review_product_user" json:"product"`
	UserID    uuid.UUID `gorm:"not null;uniqueIndex:idx_review_product_user" json:"user"`
	Rating    int       `gorm:"not null;check:rating>0"                      json:"rating"`
	Comment   string    `                                                    json:"comment"`
	CreatedAt time.Time `                                                    json:"createdAt"`
	UpdatedAt time.Time `                                                    json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
