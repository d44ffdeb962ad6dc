package transport

import (
	"github.com/Skotchmaster/scent_shop/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalesPoint struct {
	Date       string          `json:"date"`
	TotalSales decimal.Decimal `json:"totalSales"`
	OrderCount int64           `json:"orderCount"`
}

type TopProduct struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

type AnalyticsResponse struct {
	Range              string        `json:"range"`
	SalesData          []SalesPoint  `json:"salesData"`
	TopProducts        []TopProduct  `json:"topProducts"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
}
