// Package reporting builds stock summaries for the scheduled alert job and
// the reports endpoint.
package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

// Service aggregates inventory state into reports.
type Service struct {
	store     repository.Store
	threshold int
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(store repository.Store, threshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold <= 0 {
		threshold = models.DefaultLowStockThreshold
	}
	return &Service{store: store, threshold: threshold, logger: logger, now: time.Now}
}

// StockSummary counts items per derived status and collects the low and
// out-of-stock items as alerts.
func (s *Service) StockSummary(ctx context.Context) (models.StockReport, error) {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return models.StockReport{}, fmt.Errorf("stock summary: %w", err)
	}

	report := models.StockReport{
		GeneratedAt: s.now().UTC(),
		TotalItems:  len(items),
	}
	for _, item := range items {
		status := models.ClassifyStatus(item.Remaining, s.threshold)
		switch status {
		case models.StatusInStock:
			report.InStock++
		case models.StatusLowStock:
			report.LowStock++
		case models.StatusOutOfStock:
			report.OutOfStock++
		}
		if status != models.StatusInStock {
			report.Alerts = append(report.Alerts, models.StockAlert{
				ItemID:    item.ID,
				Name:      item.Name,
				Remaining: item.Remaining,
				Status:    status,
			})
		}
	}
	return report, nil
}

// FormatSummary renders a report as the alert message body.
func (s *Service) FormatSummary(report models.StockReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock report %s: %d items, %d in stock, %d low, %d out.",
		report.GeneratedAt.Format("2006-01-02"),
		report.TotalItems, report.InStock, report.LowStock, report.OutOfStock)
	for _, alert := range report.Alerts {
		if alert.Status == models.StatusOutOfStock {
			fmt.Fprintf(&b, "\n- %s is out of stock.", alert.Name)
			continue
		}
		fmt.Fprintf(&b, "\n- %s is low: %d remaining.", alert.Name, alert.Remaining)
	}
	return b.String()
}
