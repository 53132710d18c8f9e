// Package repository defines the storage contract shared by the MongoDB and
// in-memory implementations. Write operations return the updated entity so
// callers never need a read-back or cache layer.
package repository

import (
	"context"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ItemUpdate is a partial update for a stock item. Nil fields are left
// untouched. Setting Category to an empty string clears the reference.
type ItemUpdate struct {
	Name      *string
	Category  *string
	Total     *int
	Remaining *int
}

// IssuanceUpdate is a partial correction for an issuance record.
type IssuanceUpdate struct {
	StudentName *string
	Quantity    *int
	IssueDate   *string
}

// Store is the persistence surface for categories, items and the issuance
// ledger. Implementations return models.ErrNotFound (wrapped) for missing
// entities and models.ErrInsufficientStock when a conditional decrement
// misses.
type Store interface {
	AddCategory(ctx context.Context, category models.Category) (models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	AddItem(ctx context.Context, item models.StockItem) (models.StockItem, error)
	GetItem(ctx context.Context, id string) (models.StockItem, error)
	ListItems(ctx context.Context) ([]models.StockItem, error)
	UpdateItem(ctx context.Context, id string, update ItemUpdate) (models.StockItem, error)
	DeleteItem(ctx context.Context, id string) error

	// AdjustQuantity applies delta to the item's remaining quantity as one
	// atomic read-modify-write; the write only lands when the result stays
	// non-negative. adjustTotal applies the same delta to the total quantity.
	AdjustQuantity(ctx context.Context, id string, delta int, adjustTotal bool) (models.StockItem, error)

	AddIssuance(ctx context.Context, record models.IssuanceRecord) (models.IssuanceRecord, error)
	GetIssuance(ctx context.Context, id string) (models.IssuanceRecord, error)
	// ListIssuances returns records newest first; limit <= 0 means all.
	ListIssuances(ctx context.Context, limit int) ([]models.IssuanceRecord, error)
	UpdateIssuance(ctx context.Context, id string, update IssuanceUpdate) (models.IssuanceRecord, error)
	DeleteIssuance(ctx context.Context, id string) error
}
