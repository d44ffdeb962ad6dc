package transport

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name                string           `json:"name"`
	Description         string           `json:"description"`
	Price               decimal.Decimal  `json:"price"`
	OriginalPrice       *decimal.Decimal `json:"originalPrice"`
	Images              []string         `json:"images"`
	Features            []string         `json:"features"`
	StockQuantity       int              `json:"stock_quantity"`
	IsActive            *bool            `json:"is_active"`
	AllowCustomMessage  bool             `json:"allow_custom_message"`
	Tags                []uuid.UUID      `json:"tags"`
	AvailableFragrances []uuid.UUID      `json:"available_fragrances"`
}

// PatchProductRequest is a partial update: nil fields are left untouched.
type PatchProductRequest struct {
	Name                *string          `json:"name"`
	Description         *string          `json:"description"`
	Price               *decimal.Decimal `json:"price"`
	OriginalPrice       *decimal.Decimal `json:"originalPrice"`
	Images              *[]string        `json:"images"`
	Features            *[]string        `json:"features"`
	StockQuantity       *int             `json:"stock_quantity"`
	IsActive            *bool            `json:"is_active"`
	AllowCustomMessage  *bool            `json:"allow_custom_message"`
	Tags                *[]uuid.UUID     `json:"tags"`
	AvailableFragrances *[]uuid.UUID     `json:"available_fragrances"`
}

// Changes returns the column updates carried by the request. Association sets
// (tags, fragrances) are not columns and are applied separately.
func (r PatchProductRequest) Changes() map[string]any {
	ch := map[string]any{}
	if r.Name != nil {
		ch["name"] = *r.Name
	}
	if r.Description != nil {
		ch["description"] = *r.Description
	}
	if r.Price != nil {
		ch["price"] = *r.Price
	}
	if r.OriginalPrice != nil {
		ch["original_price"] = *r.OriginalPrice
	}
	if r.Images != nil {
		ch["images"] = jsonColumn(*r.Images)
	}
	if r.Features != nil {
		ch["features"] = jsonColumn(*r.Features)
	}
	if r.StockQuantity != nil {
		ch["stock_quantity"] = *r.StockQuantity
	}
	if r.IsActive != nil {
		ch["is_active"] = *r.IsActive
	}
	if r.AllowCustomMessage != nil {
		ch["allow_custom_message"] = *r.AllowCustomMessage
	}
	return ch
}

type ProductFilter struct {
	Search    string
	Tag       string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating *float64
	Sort      string
	Page      int
	Limit     int
}

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

type CreateTagRequest struct {
	Name string `json:"name"`
}

type CreateFragranceRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Notes       models.FragranceNotes `json:"notes"`
	InStock     *bool                 `json:"in_stock"`
}

type PatchFragranceRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Image       *string                `json:"image"`
	Notes       *models.FragranceNotes `json:"notes"`
	InStock     *bool                  `json:"in_stock"`
}

func (r PatchFragranceRequest) Changes() map[string]any {
	ch := map[string]any{}
	if r.Name != nil {
		ch["name"] = *r.Name
	}
	if r.Description != nil {
		ch["description"] = *r.Description
	}
	if r.Image != nil {
		ch["image"] = *r.Image
	}
	if r.Notes != nil {
		ch["notes"] = jsonColumn(*r.Notes)
	}
	if r.InStock != nil {
		ch["in_stock"] = *r.InStock
	}
	return ch
}

type RateProductRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type RatingResponse struct {
	Rating  float64 `json:"rating"`
	Reviews int64   `json:"reviews"`
}

type UserRatingResponse struct {
	Rated  bool `json:"rated"`
	Rating int  `json:"rating"`
}
