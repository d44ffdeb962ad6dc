package service

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
)

// MergeLines folds a guest cart into a stored one. Lines are matched on
// product id alone: when a product is already present its quantity grows and
// the incoming fragrance choice and message are discarded. Quantities below 1
// count as 1. The result keeps existing lines first, in order, followed by new
// products in arrival order.
func MergeLines(existing []models.CartLine, incoming []transport.CartLineRequest) []models.CartLine {
	out := make([]models.CartLine, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	index := make(map[uuid.UUID]int, len(out))
	for i, l := range out {
		if _, ok := index[l.ProductID]; !ok {
			index[l.ProductID] = i
		}
	}

	for _, in := range incoming {
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		if i, ok := index[in.Product()]; ok {
			out[i].Quantity += qty
			continue
		}
		out = append(out, models.CartLine{
			ProductID:          in.Product(),
			Quantity:           qty,
			SelectedFragrances: in.SelectedFragrances,
			CustomMessage:      in.CustomMessage,
		})
		index[in.Product()] = len(out) - 1
	}
	return out
}
