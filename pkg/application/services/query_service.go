package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stocklens/stocklens/pkg/domain/entities"
	"github.com/stocklens/stocklens/pkg/domain/repositories"
)

// Default window lengths, in days.
const (
	DefaultWindowDays = 90
	DefaultStatsDays  = 30
)

// QueryService provides read-only projections over the ledger. Every
// call re-reads current store state; no query holds a cursor across an
// append. Absence of matching data is a nil or empty result, never an
// error.
type QueryService struct {
	ledger repositories.LedgerRepository
}

// NewQueryService creates a query service over the given ledger.
func NewQueryService(ledger repositories.LedgerRepository) *QueryService {
	return &QueryService{ledger: ledger}
}

// Products returns the distinct products in first-seen order.
func (s *QueryService) Products() []entities.ProductID {
	return s.ledger.Products()
}

// Window returns the records whose date falls within days of the
// maximum date of the product-filtered subset. The maximum is computed
// after filtering, not globally, because the latest date can differ per
// product. An empty product matches all records. The result is sorted
// ascending by date.
func (s *QueryService) Window(product entities.ProductID, days int) []entities.Record {
	if days <= 0 {
		days = DefaultWindowDays
	}

	var filtered []entities.Record
	for _, rec := range s.ledger.Records() {
		if product != "" && rec.Product != product {
			continue
		}
		filtered = append(filtered, rec)
	}
	if len(filtered) == 0 {
		return nil
	}

	maxDate := filtered[len(filtered)-1].Date
	cutoff := maxDate.AddDate(0, 0, -days)

	var window []entities.Record
	for _, rec := range filtered {
		if !rec.Date.Before(cutoff) {
			window = append(window, rec)
		}
	}
	return window
}

// ProductStats computes summary statistics for one product over a
// trailing window. Returns nil when the window is empty. Revenue,
// price, and production figures are included only when the loaded
// schema carries the corresponding columns.
func (s *QueryService) ProductStats(product entities.ProductID, days int) *entities.ProductStats {
	if days <= 0 {
		days = DefaultStatsDays
	}

	window := s.Window(product, days)
	if len(window) == 0 {
		return nil
	}

	stats := &entities.ProductStats{
		Product:    product,
		WindowDays: days,
		Records:    len(window),
		MinStock:   window[0].StockLevel,
		MaxStock:   window[0].StockLevel,
	}

	for _, rec := range window {
		stats.TotalSold += rec.SoldUnits
		if rec.StockLevel < stats.MinStock {
			stats.MinStock = rec.StockLevel
		}
		if rec.StockLevel > stats.MaxStock {
			stats.MaxStock = rec.StockLevel
		}
		if rec.Stockout {
			stats.StockoutDays++
		}
	}
	stats.AvgDailySold = stats.TotalSold / float64(len(window))
	stats.CurrentStock = window[len(window)-1].StockLevel

	schema := s.ledger.Schema()
	if schema.HasRevenue() {
		total := sumAttr(window, entities.ColRevenue)
		stats.TotalRevenue = &total
	}
	if schema.HasPrice() {
		if mean, ok := meanAttr(window, entities.ColPrice); ok {
			stats.MeanPrice = &mean
		}
	}
	if schema.HasProduction() {
		var produced float64
		for _, rec := range window {
			produced += rec.ProducedUnits
		}
		stats.TotalProduced = &produced
	}

	return stats
}

// StockoutHistory returns the records in the window flagged as
// stockouts. The store derives the flag from a zero stock level when
// the source data does not supply one, so the zero-stock fallback of
// flagless schemas is covered by the same predicate.
func (s *QueryService) StockoutHistory(product entities.ProductID, days int) []entities.Record {
	var stockouts []entities.Record
	for _, rec := range s.Window(product, days) {
		if rec.Stockout {
			stockouts = append(stockouts, rec)
		}
	}
	return stockouts
}

// SalesByCategory groups the product's window by a categorical field
// and aggregates daily sold units per group, rounded to 2 decimal
// places. The second return is false when the field is not part of the
// loaded schema. Records with an empty category cell are skipped.
func (s *QueryService) SalesByCategory(product entities.ProductID, categoryField string, days int) ([]entities.CategoryStats, bool) {
	if !s.ledger.Schema().Has(categoryField) {
		return nil, false
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range s.Window(product, days) {
		category, ok := rec.FieldText(categoryField)
		if !ok || category == "" {
			continue
		}
		totals[category] += rec.SoldUnits
		counts[category]++
	}

	groups := make([]entities.CategoryStats, 0, len(totals))
	for category, total := range totals {
		groups = append(groups, entities.CategoryStats{
			Category:  category,
			TotalSold: round2(total),
			AvgSold:   round2(total / float64(counts[category])),
			Days:      counts[category],
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Category < groups[j].Category
	})

	return groups, true
}

// PromotionImpact splits the product's window into promotion-active and
// baseline days and reports the percentage sales uplift. Returns nil
// when the promotion column is absent, when either partition is empty,
// or when baseline mean sales are zero; uplift is undefined in those
// cases, not infinite or zero.
func (s *QueryService) PromotionImpact(product entities.ProductID, days int) *entities.PromotionImpact {
	if !s.ledger.Schema().HasPromotion() {
		return nil
	}

	var promoSold, baseSold float64
	var promoDays, baseDays int
	for _, rec := range s.Window(product, days) {
		if rec.PromotionActive {
			promoSold += rec.SoldUnits
			promoDays++
		} else {
			baseSold += rec.SoldUnits
			baseDays++
		}
	}
	if promoDays == 0 || baseDays == 0 {
		return nil
	}

	avgPromo := promoSold / float64(promoDays)
	avgBase := baseSold / float64(baseDays)
	if avgBase == 0 {
		return nil
	}

	return &entities.PromotionImpact{
		Product:       product,
		PromoDays:     promoDays,
		BaseDays:      baseDays,
		AvgSoldPromo:  round2(avgPromo),
		AvgSoldBase:   round2(avgBase),
		UpliftPercent: round2((avgPromo/avgBase - 1) * 100),
	}
}

// Search returns the records matching all filters. A filter with
// multiple values is a membership test; filters on fields absent from
// the schema are silently ignored. Values are compared against the
// canonical text form of each field.
func (s *QueryService) Search(filters map[string][]string) []entities.Record {
	schema := s.ledger.Schema()

	active := make(map[string][]string, len(filters))
	for field, values := range filters {
		if schema.Has(field) {
			active[field] = values
		}
	}

	var matches []entities.Record
	for _, rec := range s.ledger.Records() {
		if matchesFilters(rec, active) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// Summary computes store-wide totals. The total current stock is the
// sum of each product's latest stock level, not a sum over all rows.
func (s *QueryService) Summary() entities.Summary {
	records := s.ledger.Records()
	summary := entities.Summary{
		Records:  len(records),
		Products: len(s.ledger.Products()),
	}
	if len(records) == 0 {
		return summary
	}

	summary.StartDate = records[0].Date
	summary.EndDate = records[len(records)-1].Date

	latestStock := make(map[entities.ProductID]int64)
	for _, rec := range records {
		summary.TotalSold += rec.SoldUnits
		if rec.Stockout {
			summary.StockoutIncidents++
		}
		latestStock[rec.Product] = rec.StockLevel
	}
	summary.AvgDailySold = summary.TotalSold / float64(len(records))
	for _, stock := range latestStock {
		summary.TotalCurrentStock += stock
	}

	schema := s.ledger.Schema()
	if schema.HasRevenue() {
		total := sumAttr(records, entities.ColRevenue)
		summary.TotalRevenue = &total
	}
	if schema.HasProduction() {
		var produced float64
		for _, rec := range records {
			produced += rec.ProducedUnits
		}
		summary.TotalProduced = &produced
	}

	return summary
}

func matchesFilters(rec entities.Record, filters map[string][]string) bool {
	for field, values := range filters {
		text, ok := rec.FieldText(field)
		if !ok {
			return false
		}
		found := false
		for _, v := range values {
			if text == v {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sumAttr(records []entities.Record, name string) decimal.Decimal {
	total := decimal.Zero
	for _, rec := range records {
		if v, ok := rec.AttrNumber(name); ok {
			total = total.Add(decimal.NewFromFloat(v))
		}
	}
	return total
}

// meanAttr averages a numeric attribute over the records that carry it,
// mirroring how a column mean skips missing cells.
func meanAttr(records []entities.Record, name string) (decimal.Decimal, bool) {
	total := decimal.Zero
	count := 0
	for _, rec := range records {
		if v, ok := rec.AttrNumber(name); ok {
			total = total.Add(decimal.NewFromFloat(v))
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, false
	}
	return total.Div(decimal.NewFromInt(int64(count))).Round(2), true
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round1(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
