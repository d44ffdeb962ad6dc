package transport

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
)

// CartLineRequest names its product as productId, or as _id / product the way
// storefront carts serialise their lines.
type CartLineRequest struct {
	ProductID          uuid.UUID `json:"productId"`
	ID                 uuid.UUID `json:"_id"`
	ProductRef         uuid.UUID `json:"product"`
	Quantity           int       `json:"quantity"`
	SelectedFragrances []string  `json:"selectedFragrances"`
	CustomMessage      string    `json:"customMessage"`
}

func (l CartLineRequest) Product() uuid.UUID {
	switch {
	case l.ProductID != uuid.Nil:
		return l.ProductID
	case l.ID != uuid.Nil:
		return l.ID
	default:
		return l.ProductRef
	}
}

type ReplaceCartRequest struct {
	Items []CartLineRequest `json:"items"`
}

// MergeCartRequest accepts the guest cart under either key.
type MergeCartRequest struct {
	LocalItems []CartLineRequest `json:"localItems"`
	Items      []CartLineRequest `json:"items"`
}

func (r MergeCartRequest) Lines() []CartLineRequest {
	if len(r.LocalItems) > 0 {
		return r.LocalItems
	}
	return r.Items
}

type CartResponse struct {
	Items []models.CartLine `json:"items"`
}
