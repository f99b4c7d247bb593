package services

import (
	"sort"

	"github.com/stocklens/stocklens/pkg/domain/entities"
	"github.com/stocklens/stocklens/pkg/domain/repositories"
)

// DefaultThresholdDays is the days-of-stock level below which a product
// is flagged for restocking.
const DefaultThresholdDays = 7

// RestockService derives restock urgency from recent sales velocity.
type RestockService struct {
	ledger  repositories.LedgerRepository
	queries *QueryService
}

// NewRestockService creates a restock advisor over the given ledger.
func NewRestockService(ledger repositories.LedgerRepository) *RestockService {
	return &RestockService{
		ledger:  ledger,
		queries: NewQueryService(ledger),
	}
}

// LowStock returns the products whose days of stock fall below the
// threshold, most urgent first. Days of stock is current stock divided
// by 30-day mean daily sales; products with no recent stats or zero
// mean sales have infinite runway and are excluded rather than given a
// sentinel value, so no division by zero can occur. Ties keep the
// ledger's first-seen product order.
func (s *RestockService) LowStock(thresholdDays int) []entities.RestockEntry {
	if thresholdDays <= 0 {
		thresholdDays = DefaultThresholdDays
	}

	var entries []entities.RestockEntry
	for _, product := range s.ledger.Products() {
		stats := s.queries.ProductStats(product, DefaultStatsDays)
		if stats == nil || stats.AvgDailySold == 0 {
			continue
		}

		daysOfStock := float64(stats.CurrentStock) / stats.AvgDailySold
		if daysOfStock >= float64(thresholdDays) {
			continue
		}

		entries = append(entries, entities.RestockEntry{
			Product:       product,
			CurrentStock:  stats.CurrentStock,
			DaysOfStock:   round1(daysOfStock),
			AvgDailySales: round2(stats.AvgDailySold),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysOfStock < entries[j].DaysOfStock
	})

	return entries
}
