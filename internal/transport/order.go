package transport

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ID                 uuid.UUID                `json:"_id"`
	ProductID          uuid.UUID                `json:"productId"`
	Quantity           int                      `json:"quantity"`
	Price              decimal.Decimal          `json:"price"`
	SelectedFragrances []models.FragranceChoice `json:"selectedFragrances"`
	CustomMessage      string                   `json:"customMessage"`
}

// Product returns the referenced product id; storefront clients send it as _id.
func (i OrderItemRequest) Product() uuid.UUID {
	if i.ProductID != uuid.Nil {
		return i.ProductID
	}
	return i.ID
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
}

type UpdateStatusRequest struct {
	Status      string  `json:"status"`
	TrackingID  *string `json:"tracking_id"`
	TrackingURL *string `json:"tracking_url"`
}

type OrderQuery struct {
	UserID *uuid.UUID
	Status models.OrderStatus
	Page   int
	Limit  int
}

type StatsResponse struct {
	TotalProducts  int64 `json:"totalProducts"`
	ActiveProducts int64 `json:"activeProducts"`
	TotalOrders    int64 `json:"totalOrders"`
	PendingOrders  int64 `json:"pendingOrders"`
	ApprovedOrders int64 `json:"approvedOrders"`
}
