package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is one entry of a user's address book. Fingerprint identifies the
// normalised postal content so the same address is stored once per user.
type Address struct {
	ID              uuid.UUID       `gorm:"primaryKey"                                          json:"id"`
	UserID          uuid.UUID       `gorm:"not null;uniqueIndex:idx_address_user_fingerprint"   json:"-"`
	Fingerprint     string          `gorm:"not null;uniqueIndex:idx_address_user_fingerprint"   json:"-"`
	ShippingAddress ShippingAddress `gorm:"embedded"                                            json:"address"`
	CreatedAt       time.Time       `                                                           json:"createdAt"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Fingerprint == "" {
		a.Fingerprint = a.ShippingAddress.Fingerprint()
	}
	return nil
}

func (a ShippingAddress) Fingerprint() string {
	norm := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), " ")) }
	parts := []string{
		norm(a.FirstName), norm(a.LastName), norm(a.Email), norm(a.Phone),
		norm(a.Address), norm(a.City), norm(a.Zip),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return hex.EncodeToString(sum[:])
}
