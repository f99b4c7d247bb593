package repositories

import (
	"github.com/stocklens/stocklens/pkg/domain/entities"
)

// LedgerRepository defines the interface for the inventory ledger: an
// exclusively owned, date-ordered collection of product-day records.
// Query layers read through Records/Schema/Products; Append is the only
// incremental mutator. Implementations are not safe for concurrent
// writers; the ledger contemplates a single caller context.
type LedgerRepository interface {
	// Records returns the full collection in ascending date order.
	Records() []entities.Record

	// Schema returns the column set of the loaded data.
	Schema() entities.Schema

	// Products returns the distinct product identifiers in order of
	// first appearance in the date-sorted collection.
	Products() []entities.ProductID

	// Append inserts one new record, carrying forward the product's
	// most recent pass-through values and re-deriving the stockout
	// flag. The collection is re-sorted afterward.
	Append(req entities.AppendRequest) (entities.Record, error)
}
