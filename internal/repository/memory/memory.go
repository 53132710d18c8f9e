// Package memory is an in-process repository.Store used by the test suite
// and as the server's fallback when no MongoDB URI is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// Store keeps all entities in maps guarded by one mutex. Every mutation is
// a single critical section, which gives AdjustQuantity the same atomic
// read-modify-write guarantee the MongoDB implementation gets from a
// conditional update.
type Store struct {
	mu         sync.Mutex
	seq        int
	categories map[string]models.Category
	items      map[string]models.StockItem
	issuances  map[string]models.IssuanceRecord
	now        func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		categories: make(map[string]models.Category),
		items:      make(map[string]models.StockItem),
		issuances:  make(map[string]models.IssuanceRecord),
		now:        time.Now,
	}
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Store) AddCategory(_ context.Context, category models.Category) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category.ID = s.nextID("cat")
	category.CreatedAt = s.now().UTC()
	s.categories[category.ID] = category
	return category, nil
}

func (s *Store) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *Store) DeleteCategory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return fmt.Errorf("category %s: %w", id, models.ErrNotFound)
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) AddItem(_ context.Context, item models.StockItem) (models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextID("itm")
	item.UpdatedAt = s.now().UTC()
	s.items[item.ID] = item
	return item, nil
}

func (s *Store) GetItem(_ context.Context, id string) (models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	return item, nil
}

func (s *Store) ListItems(_ context.Context) ([]models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.StockItem, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (s *Store) UpdateItem(_ context.Context, id string, update repository.ItemUpdate) (models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Category != nil {
		item.CategoryID = *update.Category
	}
	if update.Total != nil {
		item.Total = *update.Total
	}
	if update.Remaining != nil {
		item.Remaining = *update.Remaining
	}
	item.UpdatedAt = s.now().UTC()
	s.items[id] = item
	return item, nil
}

func (s *Store) DeleteItem(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

func (s *Store) AdjustQuantity(_ context.Context, id string, delta int, adjustTotal bool) (models.StockItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrNotFound)
	}
	if item.Remaining+delta < 0 {
		return models.StockItem{}, fmt.Errorf("item %s: %w", id, models.ErrInsufficientStock)
	}
	item.Remaining += delta
	if adjustTotal {
		item.Total += delta
	}
	item.UpdatedAt = s.now().UTC()
	s.items[id] = item
	return item, nil
}

func (s *Store) AddIssuance(_ context.Context, record models.IssuanceRecord) (models.IssuanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextID("iss")
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.now().UTC()
	}
	s.issuances[record.ID] = record
	return record, nil
}

func (s *Store) GetIssuance(_ context.Context, id string) (models.IssuanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.issuances[id]
	if !ok {
		return models.IssuanceRecord{}, fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	return record, nil
}

func (s *Store) ListIssuances(_ context.Context, limit int) ([]models.IssuanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.IssuanceRecord, 0, len(s.issuances))
	for _, r := range s.issuances {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Store) UpdateIssuance(_ context.Context, id string, update repository.IssuanceUpdate) (models.IssuanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.issuances[id]
	if !ok {
		return models.IssuanceRecord{}, fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	if update.StudentName != nil {
		record.StudentName = *update.StudentName
	}
	if update.Quantity != nil {
		record.Quantity = *update.Quantity
	}
	if update.IssueDate != nil {
		record.IssueDate = *update.IssueDate
	}
	s.issuances[id] = record
	return record, nil
}

func (s *Store) DeleteIssuance(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issuances[id]; !ok {
		return fmt.Errorf("issuance %s: %w", id, models.ErrNotFound)
	}
	delete(s.issuances, id)
	return nil
}
