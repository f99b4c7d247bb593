package entities

import (
	"strconv"
	"time"
)

// ProductID represents a unique product identifier
type ProductID string

// Fixed column vocabulary for the ledger's bulk input format. Column
// names are matched case-sensitively; anything outside this set is a
// pass-through column.
const (
	ColProduct       = "product"
	ColDate          = "date"
	ColStockLevel    = "current_stock_level"
	ColSoldUnits     = "daily_sold_units"
	ColProducedUnits = "daily_production_units"
	ColTemperature   = "temp_celsius"
	ColWeather       = "weather_condition"
	ColPromotion     = "promotion_active"
	ColStockout      = "is_stockout"

	// Well-known pass-through columns consumed opportunistically by
	// the stats layer. The engine never interprets any other
	// pass-through column.
	ColRevenue = "Revenue generated"
	ColPrice   = "Price"
)

// RequiredColumns lists the columns a bulk load cannot proceed without.
var RequiredColumns = []string{ColProduct, ColDate, ColStockLevel, ColSoldUnits}

var knownColumns = map[string]bool{
	ColProduct:       true,
	ColDate:          true,
	ColStockLevel:    true,
	ColSoldUnits:     true,
	ColProducedUnits: true,
	ColTemperature:   true,
	ColWeather:       true,
	ColPromotion:     true,
	ColStockout:      true,
}

// Record is one observation for one product on one calendar day.
type Record struct {
	Product         ProductID        `json:"product"`
	Date            time.Time        `json:"date"`
	StockLevel      int64            `json:"current_stock_level"`
	SoldUnits       float64          `json:"daily_sold_units"`
	ProducedUnits   float64          `json:"daily_production_units,omitempty"`
	Temperature     *float64         `json:"temp_celsius,omitempty"`
	Weather         string           `json:"weather_condition,omitempty"`
	PromotionActive bool             `json:"promotion_active"`
	Stockout        bool             `json:"is_stockout"`
	Attrs           map[string]Value `json:"attrs,omitempty"`
}

// FieldText returns the canonical text form of a named field, covering
// both core columns and pass-through attributes. The second return is
// false when the record has no value for the field.
func (r Record) FieldText(name string) (string, bool) {
	switch name {
	case ColProduct:
		return string(r.Product), true
	case ColDate:
		return r.Date.Format(DateLayout), true
	case ColStockLevel:
		return strconv.FormatInt(r.StockLevel, 10), true
	case ColSoldUnits:
		return formatNumber(r.SoldUnits), true
	case ColProducedUnits:
		return formatNumber(r.ProducedUnits), true
	case ColTemperature:
		if r.Temperature == nil {
			return "", false
		}
		return formatNumber(*r.Temperature), true
	case ColWeather:
		if r.Weather == "" {
			return "", false
		}
		return r.Weather, true
	case ColPromotion:
		return strconv.FormatBool(r.PromotionActive), true
	case ColStockout:
		return strconv.FormatBool(r.Stockout), true
	}
	v, ok := r.Attrs[name]
	if !ok {
		return "", false
	}
	return v.Text(), true
}

// AttrNumber returns the numeric value of a pass-through attribute, or
// false when the attribute is absent or non-numeric.
func (r Record) AttrNumber(name string) (float64, bool) {
	v, ok := r.Attrs[name]
	if !ok {
		return 0, false
	}
	return v.Number()
}

// CloneAttrs returns an independent copy of the record's attribute bag.
func (r Record) CloneAttrs() map[string]Value {
	if r.Attrs == nil {
		return nil
	}
	attrs := make(map[string]Value, len(r.Attrs))
	for k, v := range r.Attrs {
		attrs[k] = v
	}
	return attrs
}

// DateLayout is the canonical calendar-day rendering used across the
// engine for export, search, and the API.
const DateLayout = "2006-01-02"

// Day truncates a timestamp to calendar-day granularity in UTC.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AppendRequest carries the caller-supplied fields for a single-record
// append. Pass-through attributes are never supplied here; the store
// carries them forward from the product's most recent record.
type AppendRequest struct {
	Product         ProductID
	Date            time.Time
	StockLevel      int64
	SoldUnits       float64
	ProducedUnits   float64
	Temperature     *float64
	Weather         string
	PromotionActive bool
}

// RawRow is one unparsed input row keyed by column name.
type RawRow map[string]string

// RawTable is an unparsed bulk input batch: the source column order
// plus one RawRow per observation.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
