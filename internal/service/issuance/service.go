// Package issuance records who received how much of which item and when.
// Issue runs a small request lifecycle: validation rejects bad requests
// before any state changes, and a record write that fails after the stock
// decrement is compensated so no partial issuance survives.
package issuance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/access"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// State tracks a pending issue request through its lifecycle.
type State string

const (
	StateDraft      State = "draft"
	StateValidating State = "validating"
	StateApplying   State = "applying"
	StateCommitted  State = "committed"
	StateRejected   State = "rejected"
	StateFailed     State = "failed"
)

// Stock is the slice of the inventory service the ledger depends on.
type Stock interface {
	GetItem(ctx context.Context, id string) (models.StockItem, error)
	AdjustQuantity(ctx context.Context, sess access.Session, id string, delta int, adjustTotal bool) (models.StockItem, error)
}

// Exporter receives committed records for the optional spreadsheet sink.
// Export failures are logged, never surfaced: the issuance is already
// committed when the exporter runs.
type Exporter interface {
	AppendIssuance(ctx context.Context, record models.IssuanceRecord, itemName string) error
}

// IssueRequest carries the caller's input for one issue operation.
type IssueRequest struct {
	ItemID      string
	StudentName string
	Quantity    int
	IssueDate   string
}

// Result reports the terminal state of an issue request. Record is set only
// on commit in catalog mode; Item is the post-adjustment stock item.
type Result struct {
	State  State
	Record *models.IssuanceRecord
	Item   *models.StockItem
}

// Service implements the issuance ledger over a repository.Store and the
// inventory's quantity primitive.
type Service struct {
	store    repository.Store
	stock    Stock
	exporter Exporter
	mode     models.Mode
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new ledger instance. exporter may be nil.
func NewService(store repository.Store, stock Stock, exporter Exporter, mode models.Mode, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		stock:    stock,
		exporter: exporter,
		mode:     mode,
		logger:   logger,
		now:      time.Now,
	}
}

// Issue validates the request, decrements the item's remaining quantity and,
// in catalog mode, writes the recipient record. The decrement and the record
// form one logical unit: if the record write fails the decrement is rolled
// back and the result is Failed. Nothing is retried; resubmission is the
// caller's call.
func (s *Service) Issue(ctx context.Context, sess access.Session, req IssueRequest) (Result, error) {
	res := Result{State: StateValidating}

	if !sess.CanMutate() {
		res.State = StateRejected
		return res, fmt.Errorf("issue: %w", models.ErrPermissionDenied)
	}
	if req.Quantity <= 0 {
		res.State = StateRejected
		return res, fmt.Errorf("issue: quantity must be positive: %w", models.ErrValidation)
	}
	req.StudentName = strings.TrimSpace(req.StudentName)
	if s.mode.TracksIssuance() && req.StudentName == "" {
		res.State = StateRejected
		return res, fmt.Errorf("issue: student name is required: %w", models.ErrValidation)
	}
	issueDate, err := s.normalizeDate(req.IssueDate)
	if err != nil {
		res.State = StateRejected
		return res, err
	}

	item, err := s.stock.GetItem(ctx, req.ItemID)
	if err != nil {
		res.State = StateRejected
		if errors.Is(err, models.ErrNotFound) {
			return res, fmt.Errorf("issue: unknown item %s: %w", req.ItemID, models.ErrValidation)
		}
		return res, err
	}
	if req.Quantity > item.Remaining {
		res.State = StateRejected
		return res, fmt.Errorf("issue: %d requested, %d remaining: %w", req.Quantity, item.Remaining, models.ErrInsufficientStock)
	}

	res.State = StateApplying

	// In plain mode the total column mirrors the remaining quantity, so the
	// delta applies to both. Catalog issues leave the total untouched.
	adjustTotal := !s.mode.TracksIssuance()
	updated, err := s.stock.AdjustQuantity(ctx, sess, req.ItemID, -req.Quantity, adjustTotal)
	if err != nil {
		res.State = StateFailed
		if errors.Is(err, models.ErrInsufficientStock) {
			// Lost a race between the pre-flight check and the write.
			res.State = StateRejected
		}
		return res, fmt.Errorf("issue: %w", err)
	}
	res.Item = &updated

	if !s.mode.TracksIssuance() {
		res.State = StateCommitted
		s.logger.Info("stock issued",
			zap.String("item_id", req.ItemID),
			zap.Int("quantity", req.Quantity),
			zap.Int("remaining", updated.Remaining))
		return res, nil
	}

	record, err := s.store.AddIssuance(ctx, models.IssuanceRecord{
		ItemID:      req.ItemID,
		StudentName: req.StudentName,
		Quantity:    req.Quantity,
		IssueDate:   issueDate,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		if _, rbErr := s.stock.AdjustQuantity(ctx, sess, req.ItemID, req.Quantity, adjustTotal); rbErr != nil {
			s.logger.Error("issuance rollback failed; stock decrement not compensated",
				zap.String("item_id", req.ItemID),
				zap.Int("quantity", req.Quantity),
				zap.Error(rbErr))
		}
		res.State = StateFailed
		res.Item = nil
		return res, fmt.Errorf("issue: record write: %w: %w", models.ErrPersistence, err)
	}
	res.Record = &record
	res.State = StateCommitted

	s.logger.Info("uniform issued",
		zap.String("record_id", record.ID),
		zap.String("item_id", req.ItemID),
		zap.String("student", record.StudentName),
		zap.Int("quantity", record.Quantity))

	if s.exporter != nil {
		if err := s.exporter.AppendIssuance(ctx, record, item.Name); err != nil {
			s.logger.Warn("issuance export failed", zap.String("record_id", record.ID), zap.Error(err))
		}
	}
	return res, nil
}

// Restock adds quantity back into the catalog. Both the remaining quantity
// and the total grow; there is no upper bound and no record is written.
func (s *Service) Restock(ctx context.Context, sess access.Session, itemID string, quantity int) (models.StockItem, error) {
	if !sess.CanMutate() {
		return models.StockItem{}, fmt.Errorf("restock: %w", models.ErrPermissionDenied)
	}
	if quantity <= 0 {
		return models.StockItem{}, fmt.Errorf("restock: quantity must be positive: %w", models.ErrValidation)
	}

	item, err := s.stock.AdjustQuantity(ctx, sess, itemID, quantity, true)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.StockItem{}, fmt.Errorf("restock: unknown item %s: %w", itemID, models.ErrValidation)
		}
		return models.StockItem{}, fmt.Errorf("restock: %w", err)
	}

	s.logger.Info("item restocked",
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity),
		zap.Int("remaining", item.Remaining))
	return item, nil
}

// ListRecords returns the ledger newest first, joined with live item and
// category names. Dangling references fall back to the display labels
// instead of failing.
func (s *Service) ListRecords(ctx context.Context) ([]models.IssuanceView, error) {
	records, err := s.store.ListIssuances(ctx, 0)
	if err != nil {
		return nil, err
	}
	return s.joinRecords(ctx, records)
}

// RecentMovements projects the latest records into the activity feed.
func (s *Service) RecentMovements(ctx context.Context, limit int) ([]models.Movement, error) {
	if limit <= 0 {
		limit = 10
	}
	records, err := s.store.ListIssuances(ctx, limit)
	if err != nil {
		return nil, err
	}
	views, err := s.joinRecords(ctx, records)
	if err != nil {
		return nil, err
	}

	movements := make([]models.Movement, 0, len(views))
	for _, v := range views {
		movements = append(movements, models.Movement{
			ID:          v.ID,
			ItemName:    v.ItemName,
			Type:        "issued",
			Quantity:    v.Quantity,
			StudentName: v.StudentName,
			CreatedAt:   v.CreatedAt,
		})
	}
	return movements, nil
}

// CorrectRecord edits a record's recipient, quantity or date. It never
// re-adjusts the referenced item's stock: history edits are independent of
// live quantities.
func (s *Service) CorrectRecord(ctx context.Context, sess access.Session, id string, update repository.IssuanceUpdate) (models.IssuanceRecord, error) {
	if !sess.CanMutate() {
		return models.IssuanceRecord{}, fmt.Errorf("correct record: %w", models.ErrPermissionDenied)
	}
	if update.StudentName != nil {
		trimmed := strings.TrimSpace(*update.StudentName)
		if trimmed == "" {
			return models.IssuanceRecord{}, fmt.Errorf("correct record: student name must not be empty: %w", models.ErrValidation)
		}
		update.StudentName = &trimmed
	}
	if update.Quantity != nil && *update.Quantity <= 0 {
		return models.IssuanceRecord{}, fmt.Errorf("correct record: quantity must be positive: %w", models.ErrValidation)
	}
	if update.IssueDate != nil {
		normalized, err := s.normalizeDate(*update.IssueDate)
		if err != nil {
			return models.IssuanceRecord{}, err
		}
		update.IssueDate = &normalized
	}

	record, err := s.store.UpdateIssuance(ctx, id, update)
	if err != nil {
		return models.IssuanceRecord{}, err
	}
	s.logger.Info("issuance corrected", zap.String("record_id", id))
	return record, nil
}

// DeleteRecord removes a record from the ledger. Stock is left untouched.
func (s *Service) DeleteRecord(ctx context.Context, sess access.Session, id string) error {
	if !sess.CanMutate() {
		return fmt.Errorf("delete record: %w", models.ErrPermissionDenied)
	}
	if err := s.store.DeleteIssuance(ctx, id); err != nil {
		return err
	}
	s.logger.Info("issuance deleted", zap.String("record_id", id))
	return nil
}

func (s *Service) joinRecords(ctx context.Context, records []models.IssuanceRecord) ([]models.IssuanceView, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	itemsByID := make(map[string]models.StockItem, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}

	views := make([]models.IssuanceView, 0, len(records))
	for _, r := range records {
		view := models.IssuanceView{
			IssuanceRecord: r,
			ItemName:       models.DeletedItemLabel,
			CategoryName:   models.UncategorizedLabel,
		}
		if item, ok := itemsByID[r.ItemID]; ok {
			view.ItemName = item.Name
			if name, ok := categoryNames[item.CategoryID]; ok {
				view.CategoryName = name
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.now().UTC().Format(models.IssueDateLayout), nil
	}
	if _, err := time.Parse(models.IssueDateLayout, value); err != nil {
		return "", fmt.Errorf("issue date %q must be %s: %w", value, models.IssueDateLayout, models.ErrValidation)
	}
	return value, nil
}
