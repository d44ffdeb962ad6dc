package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/google/uuid"
)

// AccountService manages the per-user address book filled at checkout.
type AccountService struct {
	Repo *repo.GormRepo
}

func (s *AccountService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AccountService) AddAddress(ctx context.Context, userID uuid.UUID, addr models.ShippingAddress) (*models.Address, error) {
	if strings.TrimSpace(addr.Address) == "" || strings.TrimSpace(addr.City) == "" {
		return nil, fmt.Errorf("%w: address and city are required", ErrValidation)
	}
	return s.Repo.SaveAddress(ctx, userID, addr)
}
