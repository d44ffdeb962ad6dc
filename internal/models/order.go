package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusApproved  OrderStatus = "approved"
	StatusCrafting  OrderStatus = "crafting"
	StatusPreparing OrderStatus = "preparing"
	StatusPackaging OrderStatus = "packaging"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
	StatusRejected  OrderStatus = "rejected"
)

// OrderStatuses lists every accepted status in display order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusApproved,
	StatusCrafting,
	StatusPreparing,
	StatusPackaging,
	StatusShipped,
	StatusDelivered,
	StatusCompleted,
	StatusCancelled,
	StatusRejected,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

func (a ShippingAddress) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Line renders the postal part as "address, city zip".
func (a ShippingAddress) Line() string {
	return strings.TrimSpace(a.Address + ", " + strings.TrimSpace(a.City+" "+a.Zip))
}

type Order struct {
	ID              uuid.UUID       `gorm:"primaryKey"                                    json:"id"`
	UserID          *uuid.UUID      `gorm:"index"                                         json:"user,omitempty"`
	CustomerName    string          `gorm:"not null"                                      json:"customer_name"`
	CustomerEmail   string          `gorm:"not null"                                      json:"customer_email"`
	CustomerPhone   string          `                                                     json:"customer_phone"`
	CustomerAddress string          `                                                     json:"customer_address"`
	ShippingAddress ShippingAddress `gorm:"type:jsonb;serializer:json"                    json:"shippingAddress"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"                   json:"total_amount"`
	Status          OrderStatus     `gorm:"type:varchar(32);index;not null"               json:"status"`
	TrackingID      *string         `                                                     json:"tracking_id,omitempty"`
	TrackingURL     *string         `                                                     json:"tracking_url,omitempty"`
	CreatedBy       *uuid.UUID      `                                                     json:"createdBy,omitempty"`
	CreatedAt       time.Time       `gorm:"index"                                         json:"createdAt"`
	UpdatedAt       time.Time       `                                                     json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// FragranceChoice is the fragrance picked for one order line together with
// the bottle size and the label shown to the customer.
type FragranceChoice struct {
	FragranceID uuid.UUID `json:"fragranceId"`
	Size        string    `json:"size,omitempty"`
	Label       string    `json:"label,omitempty"`
}

type OrderItem struct {
	ID                 uuid.UUID         `gorm:"primaryKey"                 json:"id"`
	OrderID            uuid.UUID         `gorm:"index;not null"             json:"order"`
	ProductID          uuid.UUID         `gorm:"index;not null"             json:"product"`
	Quantity           int               `gorm:"not null;check:quantity>0"  json:"quantity"`
	PriceAtPurchase    decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"price_at_purchase"`
	SelectedFragrances []FragranceChoice `gorm:"type:jsonb;serializer:json" json:"selected_fragrances"`
	CustomMessage      string            `                                  json:"custom_message"`
	CreatedAt          time.Time         `                                  json:"createdAt"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
