package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/google/uuid"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

// ReplaceCart overwrites the stored cart with the given lines.
func (s *CartService) ReplaceCart(ctx context.Context, userID uuid.UUID, req transport.ReplaceCartRequest) (*models.Cart, error) {
	if err := s.validateLines(ctx, req.Items, true); err != nil {
		return nil, err
	}

	lines := make([]models.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, models.CartLine{
			ProductID:          it.Product(),
			Quantity:           it.Quantity,
			SelectedFragrances: it.SelectedFragrances,
			CustomMessage:      it.CustomMessage,
		})
	}
	return s.Repo.ReplaceLines(ctx, userID, lines)
}

// MergeCart adds a guest cart to the stored one under a row lock, so
// concurrent merges for one user cannot lose quantities.
func (s *CartService) MergeCart(ctx context.Context, userID uuid.UUID, incoming []transport.CartLineRequest) (*models.Cart, error) {
	if len(incoming) == 0 {
		return s.Repo.GetOrCreateCart(ctx, userID)
	}
	if err := s.validateLines(ctx, incoming, false); err != nil {
		return nil, err
	}
	return s.Repo.MergeLines(ctx, userID, func(existing []models.CartLine) []models.CartLine {
		return MergeLines(existing, incoming)
	})
}

func (s *CartService) validateLines(ctx context.Context, lines []transport.CartLineRequest, strictQty bool) error {
	ids := make([]uuid.UUID, 0, len(lines))
	for i, l := range lines {
		if l.Product() == uuid.Nil {
			return fmt.Errorf("%w: item %d: productId is required", ErrValidation, i)
		}
		if strictQty && l.Quantity < 1 {
			return fmt.Errorf("%w: item %d: quantity must be at least 1", ErrValidation, i)
		}
		ids = append(ids, l.Product())
	}

	found, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i, l := range lines {
		if _, ok := found[l.Product()]; !ok {
			return fmt.Errorf("%w: item %d: product %s not found", ErrValidation, i, l.Product())
		}
	}
	return nil
}
