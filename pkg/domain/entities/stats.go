package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStats summarizes one product over a trailing window. The
// pointer fields are populated only when the corresponding column
// exists in the loaded schema.
type ProductStats struct {
	Product       ProductID        `json:"product"`
	WindowDays    int              `json:"window_days"`
	Records       int              `json:"records"`
	TotalSold     float64          `json:"total_sold"`
	AvgDailySold  float64          `json:"avg_daily_sold"`
	CurrentStock  int64            `json:"current_stock"`
	MinStock      int64            `json:"min_stock"`
	MaxStock      int64            `json:"max_stock"`
	StockoutDays  int              `json:"stockout_days"`
	TotalRevenue  *decimal.Decimal `json:"total_revenue,omitempty"`
	MeanPrice     *decimal.Decimal `json:"mean_price,omitempty"`
	TotalProduced *float64         `json:"total_produced,omitempty"`
}

// CategoryStats holds per-group sales aggregates for one categorical
// value (a weather condition, a supplier...). Sold sums and means are
// rounded to 2 decimal places.
type CategoryStats struct {
	Category  string  `json:"category"`
	TotalSold float64 `json:"total_sold"`
	AvgSold   float64 `json:"avg_sold"`
	Days      int     `json:"days"`
}

// PromotionImpact compares mean daily sales with and without an active
// promotion over a window.
type PromotionImpact struct {
	Product       ProductID `json:"product"`
	PromoDays     int       `json:"promo_days"`
	BaseDays      int       `json:"base_days"`
	AvgSoldPromo  float64   `json:"avg_sold_promo"`
	AvgSoldBase   float64   `json:"avg_sold_base"`
	UpliftPercent float64   `json:"uplift_percent"`
}

// Summary holds store-wide aggregates.
type Summary struct {
	Records           int              `json:"records"`
	Products          int              `json:"products"`
	StartDate         time.Time        `json:"start_date"`
	EndDate           time.Time        `json:"end_date"`
	TotalSold         float64          `json:"total_sold"`
	AvgDailySold      float64          `json:"avg_daily_sold"`
	TotalCurrentStock int64            `json:"total_current_stock"`
	StockoutIncidents int              `json:"stockout_incidents"`
	TotalRevenue      *decimal.Decimal `json:"total_revenue,omitempty"`
	TotalProduced     *float64         `json:"total_produced,omitempty"`
}

// RestockEntry flags one product running below the restock threshold.
// DaysOfStock is rounded to 1 decimal place, AvgDailySales to 2.
type RestockEntry struct {
	Product       ProductID `json:"product"`
	CurrentStock  int64     `json:"current_stock"`
	DaysOfStock   float64   `json:"days_of_stock"`
	AvgDailySales float64   `json:"avg_daily_sales"`
}
