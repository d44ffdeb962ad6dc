package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/Skotchmaster/scent_shop/internal/repo"
	"github.com/Skotchmaster/scent_shop/internal/transport"
	"github.com/Skotchmaster/scent_shop/pkg/logging"
	"github.com/Skotchmaster/scent_shop/pkg/util"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const preferredLimit = 10

// ProductIndex mirrors products into a full-text search engine.
type ProductIndex interface {
	IndexProduct(ctx context.Context, p models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, from, size int) (int64, []uuid.UUID, error)
}

type CatalogService struct {
	Repo  *repo.GormRepo
	Index ProductIndex
}

func (s *CatalogService) ListProducts(ctx context.Context, f transport.ProductFilter) (transport.Page[models.Product], error) {
	page, offset, limit := util.Calculate(f.Page, f.Limit)
	total, items, err := s.Repo.ListProducts(ctx, f, true, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	return newPage(items, page, limit, offset, total), nil
}

func (s *CatalogService) AdminListProducts(ctx context.Context, f transport.ProductFilter) (transport.Page[models.Product], error) {
	page, offset, limit := util.Calculate(f.Page, f.Limit)
	total, items, err := s.Repo.ListProducts(ctx, f, false, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	return newPage(items, page, limit, offset, total), nil
}

func (s *CatalogService) PreferredProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.PreferredProducts(ctx, preferredLimit)
}

func (s *CatalogService) ProductIDs(ctx context.Context) ([]uuid.UUID, error) {
	return s.Repo.ActiveProductIDs(ctx)
}

// GetProduct hides inactive products from everyone but admins.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID, admin bool) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "product")
	}
	if !p.IsActive && !admin {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.OriginalPrice != nil && req.OriginalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: originalPrice must be >= 0", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock_quantity must be >= 0", ErrValidation)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	prod := &models.Product{
		Name:               name,
		Description:        req.Description,
		Price:              req.Price,
		OriginalPrice:      req.OriginalPrice,
		Images:             nonNil(req.Images),
		Features:           nonNil(req.Features),
		StockQuantity:      req.StockQuantity,
		IsActive:           active,
		AllowCustomMessage: req.AllowCustomMessage,
	}

	created, err := s.Repo.CreateProduct(ctx, prod, req.Tags, req.AvailableFragrances)
	if err != nil {
		return nil, mapRepoErr(err, "product")
	}
	s.reindex(ctx, *created)
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.PatchProductRequest) (*models.Product, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		req.Name = &trimmed
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock_quantity must be >= 0", ErrValidation)
	}

	updated, err := s.Repo.UpdateProduct(ctx, id, req.Changes(), req.Tags, req.AvailableFragrances)
	if err != nil {
		return nil, mapRepoErr(err, "product")
	}
	s.reindex(ctx, *updated)
	return updated, nil
}

// DeleteProduct refuses products that appear in any order; those can only be
// deactivated.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repo.ErrInUse) {
			return fmt.Errorf("%w: product has been ordered; deactivate it instead", ErrConflict)
		}
		return mapRepoErr(err, "product")
	}
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_delete_failed", "product_id", id, "error", err)
		}
	}
	return nil
}

// Search uses the search index when configured and the catalog text filter
// otherwise.
func (s *CatalogService) Search(ctx context.Context, q string, page, limit int) (transport.Page[models.Product], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return transport.Page[models.Product]{}, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if s.Index == nil {
		return s.ListProducts(ctx, transport.ProductFilter{Search: q, Page: page, Limit: limit})
	}

	page, offset, limit := util.Calculate(page, limit)
	total, ids, err := s.Index.Search(ctx, q, offset, limit)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	found, err := s.Repo.ProductsByIDs(ctx, ids)
	if err != nil {
		return transport.Page[models.Product]{}, err
	}
	items := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := found[id]; ok && p.IsActive {
			items = append(items, p)
		}
	}
	return newPage(items, page, limit, offset, total), nil
}

func (s *CatalogService) reindex(ctx context.Context, p models.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_failed", "product_id", p.ID, "error", err)
	}
}

// Reindex pushes every product to the search index.
func (s *CatalogService) Reindex(ctx context.Context, log *slog.Logger) error {
	if s.Index == nil {
		return nil
	}
	_, items, err := s.Repo.ListProducts(ctx, transport.ProductFilter{}, false, 0, -1)
	if err != nil {
		return err
	}
	for _, p := range items {
		if err := s.Index.IndexProduct(ctx, p); err != nil {
			return fmt.Errorf("reindex %s: %w", p.ID, err)
		}
	}
	log.Info("search_reindexed", "products", len(items))
	return nil
}

func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.Repo.ListTags(ctx)
}

func (s *CatalogService) CreateTag(ctx context.Context, req transport.CreateTagRequest, by uuid.UUID) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	tag, err := s.Repo.CreateTag(ctx, &models.Tag{Name: name, CreatedBy: optionalID(by)})
	if err != nil {
		return nil, mapRepoErr(err, "tag")
	}
	return tag, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return mapRepoErr(s.Repo.DeleteTag(ctx, id), "tag")
}

func (s *CatalogService) ListFragrances(ctx context.Context) ([]models.Fragrance, error) {
	return s.Repo.ListFragrances(ctx)
}

func (s *CatalogService) GetFragrance(ctx context.Context, id uuid.UUID) (*models.Fragrance, error) {
	f, err := s.Repo.GetFragrance(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "fragrance")
	}
	return f, nil
}

func (s *CatalogService) CreateFragrance(ctx context.Context, req transport.CreateFragranceRequest, by uuid.UUID) (*models.Fragrance, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	f, err := s.Repo.CreateFragrance(ctx, &models.Fragrance{
		Name:        name,
		Description: req.Description,
		Image:       req.Image,
		Notes:       req.Notes,
		InStock:     inStock,
		CreatedBy:   optionalID(by),
	})
	if err != nil {
		return nil, mapRepoErr(err, "fragrance")
	}
	return f, nil
}

func (s *CatalogService) UpdateFragrance(ctx context.Context, id uuid.UUID, req transport.PatchFragranceRequest) (*models.Fragrance, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	f, err := s.Repo.UpdateFragrance(ctx, id, req.Changes())
	if err != nil {
		return nil, mapRepoErr(err, "fragrance")
	}
	return f, nil
}

func (s *CatalogService) DeleteFragrance(ctx context.Context, id uuid.UUID) error {
	return mapRepoErr(s.Repo.DeleteFragrance(ctx, id), "fragrance")
}

// RateProduct records one rating per user and product and returns the
// product's refreshed average and review count.
func (s *CatalogService) RateProduct(ctx context.Context, productID, userID uuid.UUID, req transport.RateProductRequest) (transport.RatingResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return transport.RatingResponse{}, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	avg, count, err := s.Repo.CreateReview(ctx, &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return transport.RatingResponse{}, ErrAlreadyRated
		}
		return transport.RatingResponse{}, mapRepoErr(err, "product")
	}
	return transport.RatingResponse{Rating: avg, Reviews: count}, nil
}

func (s *CatalogService) GetUserRating(ctx context.Context, productID, userID uuid.UUID) (transport.UserRatingResponse, error) {
	rev, err := s.Repo.GetReview(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transport.UserRatingResponse{}, nil
		}
		return transport.UserRatingResponse{}, err
	}
	return transport.UserRatingResponse{Rated: true, Rating: rev.Rating}, nil
}

func newPage[T any](items []T, page, limit, offset int, total int64) transport.Page[T] {
	if items == nil {
		items = []T{}
	}
	return transport.Page[T]{
		Data: items,
		Pagination: transport.Pagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: util.HasMore(offset, len(items), total),
		},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
