package models

// StockStatus is the display state derived from the remaining quantity.
type StockStatus string

const (
	StatusInStock    StockStatus = "in_stock"
	StatusLowStock   StockStatus = "low_stock"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// DefaultLowStockThreshold is the remaining quantity below which an item
// counts as low stock.
const DefaultLowStockThreshold = 5

// ClassifyStatus maps a remaining quantity to its display status. A
// non-positive threshold falls back to the default.
func ClassifyStatus(remaining, threshold int) StockStatus {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	switch {
	case remaining <= 0:
		return StatusOutOfStock
	case remaining < threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
