package models

import "time"

// Mode selects how the ledger books quantities.
type Mode string

const (
	// ModeCatalog tracks total capacity alongside the remaining quantity and
	// writes a per-recipient record for every issue.
	ModeCatalog Mode = "catalog"
	// ModePlain tracks a single quantity; issue and restock adjust it
	// directly and no recipient records are written.
	ModePlain Mode = "plain"
)

// TracksIssuance reports whether issues produce recipient records.
func (m Mode) TracksIssuance() bool { return m == ModeCatalog }

// StockItem is the model for the 'uniform_items' collection.
//
// Remaining is the quantity on hand. Total is the catalog capacity; in plain
// mode it is kept in lockstep with Remaining so both modes share one schema.
// Status is derived from Remaining at read time and never persisted.
type StockItem struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	Name       string      `json:"name" bson:"name"`
	CategoryID string      `json:"category_id,omitempty" bson:"category,omitempty"`
	Total      int         `json:"total_quantity" bson:"total_quantity"`
	Remaining  int         `json:"remaining_quantity" bson:"remaining_quantity"`
	Status     StockStatus `json:"status,omitempty" bson:"-"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
}
