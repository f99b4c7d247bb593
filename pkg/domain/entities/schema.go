package entities

// Schema describes the column set of a loaded ledger: the full source
// column order plus the subset of pass-through columns. Capability
// checks (does the data carry revenue, promotion flags, weather...)
// are answered here once per store instead of per query.
type Schema struct {
	columns     []string
	passThrough []string
	present     map[string]bool
}

// NewSchema builds a Schema from the source column order.
func NewSchema(columns []string) Schema {
	s := Schema{
		columns: append([]string(nil), columns...),
		present: make(map[string]bool, len(columns)),
	}
	for _, col := range columns {
		s.present[col] = true
		if !knownColumns[col] {
			s.passThrough = append(s.passThrough, col)
		}
	}
	return s
}

// Columns returns all source columns in their original order.
func (s Schema) Columns() []string {
	return append([]string(nil), s.columns...)
}

// PassThrough returns the pass-through columns in source order.
func (s Schema) PassThrough() []string {
	return append([]string(nil), s.passThrough...)
}

// Has reports whether a column exists in the loaded data.
func (s Schema) Has(column string) bool {
	return s.present[column]
}

// MissingRequired returns the required columns absent from the schema.
func (s Schema) MissingRequired() []string {
	var missing []string
	for _, col := range RequiredColumns {
		if !s.present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

// Capability checks for the optional column vocabulary.

func (s Schema) HasProduction() bool   { return s.present[ColProducedUnits] }
func (s Schema) HasTemperature() bool  { return s.present[ColTemperature] }
func (s Schema) HasWeather() bool      { return s.present[ColWeather] }
func (s Schema) HasPromotion() bool    { return s.present[ColPromotion] }
func (s Schema) HasStockoutFlag() bool { return s.present[ColStockout] }
func (s Schema) HasRevenue() bool      { return s.present[ColRevenue] }
func (s Schema) HasPrice() bool        { return s.present[ColPrice] }
