package memory

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/stocklens/stocklens/pkg/domain/entities"
	"github.com/stocklens/stocklens/pkg/domain/repositories"
)

// LedgerRepository provides in-memory storage for the inventory ledger.
// Records are kept sorted ascending by date; a per-product index of the
// most recent record supports carry-forward on append without a full
// table scan.
type LedgerRepository struct {
	schema  entities.Schema
	records []entities.Record
	last    map[entities.ProductID]entities.Record
}

// Verify interface compliance
var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// Date layouts accepted by bulk load, tried in order. Day-first versus
// month-first numeric forms are ambiguous and rejected.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"02-Jan-2006",
}

// NewLedgerRepository bulk-loads a raw table into a ledger. Rows are
// normalized (negative stock and sales clamped to zero, missing sales
// and production zero-filled, stockout flag derived when not supplied)
// and sorted ascending by date. Duplicate (product, date) rows are kept
// as-is; downstream sums and means double-count them by design of the
// ledger format.
func NewLedgerRepository(table entities.RawTable) (*LedgerRepository, error) {
	schema := entities.NewSchema(table.Columns)
	if missing := schema.MissingRequired(); len(missing) > 0 {
		return nil, &entities.SchemaError{Missing: missing}
	}

	repo := &LedgerRepository{
		schema:  schema,
		records: make([]entities.Record, 0, len(table.Rows)),
		last:    make(map[entities.ProductID]entities.Record),
	}

	for i, row := range table.Rows {
		record, err := parseRecord(schema, row, i+1)
		if err != nil {
			return nil, err
		}
		repo.records = append(repo.records, record)
	}

	sort.SliceStable(repo.records, func(i, j int) bool {
		return repo.records[i].Date.Before(repo.records[j].Date)
	})
	repo.rebuildLastIndex()

	return repo, nil
}

// Records returns the full collection in ascending date order.
func (r *LedgerRepository) Records() []entities.Record {
	return append([]entities.Record(nil), r.records...)
}

// Schema returns the loaded column set.
func (r *LedgerRepository) Schema() entities.Schema {
	return r.schema
}

// Products returns distinct products in order of first appearance in
// the date-sorted collection.
func (r *LedgerRepository) Products() []entities.ProductID {
	seen := make(map[entities.ProductID]bool, len(r.last))
	var products []entities.ProductID
	for _, rec := range r.records {
		if !seen[rec.Product] {
			seen[rec.Product] = true
			products = append(products, rec.Product)
		}
	}
	return products
}

// Append inserts one new record. Pass-through attributes are carried
// forward from the product's most recent record when one exists; the
// stockout flag is re-derived from the supplied stock level. The full
// collection is re-sorted afterward, which is acceptable because
// appends are rare interactive operations, not a bulk-ingest path.
func (r *LedgerRepository) Append(req entities.AppendRequest) (entities.Record, error) {
	record := entities.Record{
		Product:         req.Product,
		Date:            entities.Day(req.Date),
		StockLevel:      clampInt(req.StockLevel),
		SoldUnits:       clampFloat(req.SoldUnits),
		ProducedUnits:   clampFloat(req.ProducedUnits),
		Temperature:     req.Temperature,
		Weather:         req.Weather,
		PromotionActive: req.PromotionActive,
	}
	record.Stockout = record.StockLevel == 0

	if prev, ok := r.last[req.Product]; ok {
		record.Attrs = prev.CloneAttrs()
	}

	r.records = append(r.records, record)
	sort.SliceStable(r.records, func(i, j int) bool {
		return r.records[i].Date.Before(r.records[j].Date)
	})

	if prev, ok := r.last[req.Product]; !ok || !record.Date.Before(prev.Date) {
		r.last[req.Product] = record
	}

	return record, nil
}

// Len returns the number of records in the ledger.
func (r *LedgerRepository) Len() int {
	return len(r.records)
}

func (r *LedgerRepository) rebuildLastIndex() {
	// Records are sorted ascending, so the last write per product wins.
	for _, rec := range r.records {
		r.last[rec.Product] = rec
	}
}

func parseRecord(schema entities.Schema, row entities.RawRow, rowNum int) (entities.Record, error) {
	record := entities.Record{
		Product: entities.ProductID(row[entities.ColProduct]),
	}

	date, err := parseDate(row[entities.ColDate])
	if err != nil {
		return entities.Record{}, &entities.FormatError{Field: entities.ColDate, Value: row[entities.ColDate], Row: rowNum}
	}
	record.Date = date

	stock, err := parseNumeric(row[entities.ColStockLevel])
	if err != nil {
		return entities.Record{}, &entities.FormatError{Field: entities.ColStockLevel, Value: row[entities.ColStockLevel], Row: rowNum}
	}
	record.StockLevel = clampInt(int64(stock))

	sold, err := parseNumeric(row[entities.ColSoldUnits])
	if err != nil {
		return entities.Record{}, &entities.FormatError{Field: entities.ColSoldUnits, Value: row[entities.ColSoldUnits], Row: rowNum}
	}
	record.SoldUnits = clampFloat(sold)

	if schema.HasProduction() {
		produced, err := parseNumeric(row[entities.ColProducedUnits])
		if err != nil {
			return entities.Record{}, &entities.FormatError{Field: entities.ColProducedUnits, Value: row[entities.ColProducedUnits], Row: rowNum}
		}
		record.ProducedUnits = clampFloat(produced)
	}

	if schema.HasTemperature() {
		if raw := strings.TrimSpace(row[entities.ColTemperature]); raw != "" {
			temp, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return entities.Record{}, &entities.FormatError{Field: entities.ColTemperature, Value: raw, Row: rowNum}
			}
			record.Temperature = &temp
		}
	}

	if schema.HasWeather() {
		record.Weather = strings.TrimSpace(row[entities.ColWeather])
	}

	if schema.HasPromotion() {
		if raw := strings.TrimSpace(row[entities.ColPromotion]); raw != "" {
			active, err := parseBool(raw)
			if err != nil {
				return entities.Record{}, &entities.FormatError{Field: entities.ColPromotion, Value: raw, Row: rowNum}
			}
			record.PromotionActive = active
		}
	}

	// A supplied stockout flag is accepted as-is to allow upstream
	// overrides; it is derived only when the column or cell is absent.
	derived := true
	if schema.HasStockoutFlag() {
		if raw := strings.TrimSpace(row[entities.ColStockout]); raw != "" {
			flag, err := parseBool(raw)
			if err != nil {
				return entities.Record{}, &entities.FormatError{Field: entities.ColStockout, Value: raw, Row: rowNum}
			}
			record.Stockout = flag
			derived = false
		}
	}
	if derived {
		record.Stockout = record.StockLevel == 0
	}

	for _, col := range schema.PassThrough() {
		raw, ok := row[col]
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if record.Attrs == nil {
			record.Attrs = make(map[string]entities.Value)
		}
		record.Attrs[col] = entities.ParseValue(strings.TrimSpace(raw))
	}

	return record, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return entities.Day(t), nil
		}
	}
	return time.Time{}, strconv.ErrSyntax
}

// parseNumeric treats an empty cell as zero; zero-fill is the ledger's
// missing-value semantics and flows into all sums and means downstream.
func parseNumeric(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	}
	return false, strconv.ErrSyntax
}

func clampInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampFloat(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
