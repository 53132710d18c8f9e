package models

import "time"

// StockAlert flags one item at or below the low-stock threshold.
type StockAlert struct {
	ItemID    string      `json:"item_id"`
	Name      string      `json:"name"`
	Remaining int         `json:"remaining"`
	Status    StockStatus `json:"status"`
}

// StockReport is a point-in-time summary of the inventory by status.
type StockReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	TotalItems  int          `json:"total_items"`
	InStock     int          `json:"in_stock"`
	LowStock    int          `json:"low_stock"`
	OutOfStock  int          `json:"out_of_stock"`
	Alerts      []StockAlert `json:"alerts,omitempty"`
}
