// Package inventory owns the stock items and categories and enforces the
// quantity invariants. Every mutation takes the caller's session explicitly
// and rejects read-only roles before touching the store.
package inventory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/access"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// Service implements the inventory operations over a repository.Store.
type Service struct {
	store     repository.Store
	mode      models.Mode
	threshold int
	logger    *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(store repository.Store, mode models.Mode, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = models.DefaultLowStockThreshold
	}
	return &Service{store: store, mode: mode, threshold: threshold, logger: logger}
}

// ListOptions filters ListItems. Zero values match everything.
type ListOptions struct {
	Search string
	Status models.StockStatus
}

// AddCategory creates a category. Name uniqueness is not enforced.
func (s *Service) AddCategory(ctx context.Context, sess access.Session, name string) (models.Category, error) {
	if !sess.CanMutate() {
		return models.Category{}, fmt.Errorf("add category: %w", models.ErrPermissionDenied)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, fmt.Errorf("add category: name is required: %w", models.ErrValidation)
	}

	category, err := s.store.AddCategory(ctx, models.Category{Name: name})
	if err != nil {
		return models.Category{}, err
	}
	s.logger.Info("category added", zap.String("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// DeleteCategory removes a category. Items referencing it keep their
// dangling reference and display as uncategorized.
func (s *Service) DeleteCategory(ctx context.Context, sess access.Session, id string) error {
	if !sess.CanMutate() {
		return fmt.Errorf("delete category: %w", models.ErrPermissionDenied)
	}
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.logger.Info("category deleted", zap.String("id", id))
	return nil
}

// AddItem creates a stock item. The initial quantity seeds both the
// remaining quantity and the catalog total.
func (s *Service) AddItem(ctx context.Context, sess access.Session, name, categoryID string, initialQuantity int) (models.StockItem, error) {
	if !sess.CanMutate() {
		return models.StockItem{}, fmt.Errorf("add item: %w", models.ErrPermissionDenied)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return models.StockItem{}, fmt.Errorf("add item: name is required: %w", models.ErrValidation)
	}
	if initialQuantity < 0 {
		return models.StockItem{}, fmt.Errorf("add item: quantity must not be negative: %w", models.ErrValidation)
	}

	item, err := s.store.AddItem(ctx, models.StockItem{
		Name:       name,
		CategoryID: categoryID,
		Total:      initialQuantity,
		Remaining:  initialQuantity,
	})
	if err != nil {
		return models.StockItem{}, err
	}
	s.logger.Info("item added",
		zap.String("id", item.ID),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Remaining))
	return s.classified(item), nil
}

// GetItem returns one item with its derived status.
func (s *Service) GetItem(ctx context.Context, id string) (models.StockItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return models.StockItem{}, err
	}
	return s.classified(item), nil
}

// ListItems returns items matching the options, each with its derived status.
func (s *Service) ListItems(ctx context.Context, opts ListOptions) ([]models.StockItem, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))
	filtered := make([]models.StockItem, 0, len(items))
	for _, item := range items {
		item = s.classified(item)
		if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
			continue
		}
		if opts.Status != "" && item.Status != opts.Status {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered, nil
}

// UpdateItem overwrites the supplied fields. When quantities change, the
// result must keep remaining quantity within 0..total.
func (s *Service) UpdateItem(ctx context.Context, sess access.Session, id string, update repository.ItemUpdate) (models.StockItem, error) {
	if !sess.CanMutate() {
		return models.StockItem{}, fmt.Errorf("update item: %w", models.ErrPermissionDenied)
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return models.StockItem{}, fmt.Errorf("update item: name must not be empty: %w", models.ErrValidation)
	}

	current, err := s.store.GetItem(ctx, id)
	if err != nil {
		return models.StockItem{}, err
	}

	total := current.Total
	remaining := current.Remaining
	if update.Total != nil {
		total = *update.Total
	}
	if update.Remaining != nil {
		remaining = *update.Remaining
	}
	if remaining < 0 || total < 0 {
		return models.StockItem{}, fmt.Errorf("update item: quantities must not be negative: %w", models.ErrValidation)
	}
	if s.mode == models.ModeCatalog && remaining > total {
		return models.StockItem{}, fmt.Errorf("update item: remaining %d exceeds total %d: %w", remaining, total, models.ErrValidation)
	}
	if s.mode == models.ModePlain && update.Remaining != nil {
		// Plain mode has a single quantity; keep both columns in lockstep.
		update.Total = update.Remaining
	}

	item, err := s.store.UpdateItem(ctx, id, update)
	if err != nil {
		return models.StockItem{}, err
	}
	s.logger.Info("item updated", zap.String("id", id))
	return s.classified(item), nil
}

// DeleteItem removes the item. Issuance records referencing it are kept and
// display the deleted-item fallback.
func (s *Service) DeleteItem(ctx context.Context, sess access.Session, id string) error {
	if !sess.CanMutate() {
		return fmt.Errorf("delete item: %w", models.ErrPermissionDenied)
	}
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("id", id))
	return nil
}

// AdjustQuantity is the atomic primitive behind issue and restock. delta
// must be non-zero; a decrement below zero fails with insufficient stock and
// leaves the item untouched. adjustTotal applies the delta to the catalog
// total as well.
func (s *Service) AdjustQuantity(ctx context.Context, sess access.Session, id string, delta int, adjustTotal bool) (models.StockItem, error) {
	if !sess.CanMutate() {
		return models.StockItem{}, fmt.Errorf("adjust quantity: %w", models.ErrPermissionDenied)
	}
	if delta == 0 {
		return models.StockItem{}, fmt.Errorf("adjust quantity: delta must not be zero: %w", models.ErrValidation)
	}

	item, err := s.store.AdjustQuantity(ctx, id, delta, adjustTotal)
	if err != nil {
		return models.StockItem{}, err
	}
	s.logger.Info("quantity adjusted",
		zap.String("id", id),
		zap.Int("delta", delta),
		zap.Int("remaining", item.Remaining))
	return s.classified(item), nil
}

func (s *Service) classified(item models.StockItem) models.StockItem {
	item.Status = models.ClassifyStatus(item.Remaining, s.threshold)
	return item
}
