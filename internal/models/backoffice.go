package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Enquiry is a message left through the public contact form.
type Enquiry struct {
	ID        uuid.UUID `gorm:"primaryKey"             json:"id"`
	FirstName string    `                              json:"firstName"`
	LastName  string    `                              json:"lastName"`
	Email     string    `gorm:"not null"               json:"email"`
	Phone     string    `                              json:"phone"`
	Message   string    `gorm:"not null"               json:"message"`
	IsRead    bool      `gorm:"index;not null"         json:"isRead"`
	CreatedAt time.Time `gorm:"index"                  json:"createdAt"`
	UpdatedAt time.Time `                              json:"updatedAt"`
}

func (q *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

func (q Enquiry) FullName() string {
	name := strings.TrimSpace(q.FirstName + " " + q.LastName)
	if name == "" {
		return q.Email
	}
	return name
}

// Testimonial is a customer quote shown on the storefront once approved.
type Testimonial struct {
	ID         uuid.UUID  `gorm:"primaryKey"             json:"id"`
	Name       string     `gorm:"not null"               json:"name"`
	Role       string     `gorm:"not null"               json:"role"`
	Content    string     `gorm:"size:500;not null"      json:"content"`
	Rating     int        `gorm:"not null"               json:"rating"`
	Image      string     `                              json:"image,omitempty"`
	IsApproved bool       `gorm:"index;not null"         json:"isApproved"`
	UserID     *uuid.UUID `gorm:"index"                  json:"user,omitempty"`
	CreatedAt  time.Time  `gorm:"index"                  json:"createdAt"`
	UpdatedAt  time.Time  `                              json:"updatedAt"`
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type StoreAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	Linkedin  string `json:"linkedin"`
}

// SettingsID is the primary key of the single StoreSettings row.
const SettingsID = 1

// StoreSettings holds the shop-wide contact details shown in the storefront
// footer. Exactly one row exists once an admin has saved it.
type StoreSettings struct {
	ID           int             `gorm:"primaryKey;autoIncrement:false"  json:"-"`
	ContactEmail string          `gorm:"not null"                        json:"contact_email"`
	ContactPhone string          `gorm:"not null"                        json:"contact_phone"`
	Address      StoreAddress    `gorm:"type:jsonb;serializer:json"      json:"address"`
	SocialLinks  SocialLinks     `gorm:"type:jsonb;serializer:json"      json:"socialLinks"`
	Currency     string          `gorm:"not null"                        json:"currency"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);not null"      json:"tax_rate"`
	UpdatedBy    *uuid.UUID      `                                       json:"updatedBy,omitempty"`
	UpdatedAt    time.Time       `                                       json:"updatedAt"`
}

// DefaultSettings is served before an admin has saved anything.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		ID:       SettingsID,
		Address:  StoreAddress{Country: "India"},
		Currency: "INR",
		TaxRate:  decimal.Zero,
	}
}
