package reporting

import (
	"context"
	"strings"
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

func TestStockSummaryCounts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewService(store, models.DefaultLowStockThreshold, nil)

	seed := []struct {
		name      string
		remaining int
	}{
		{"Shirt", 10},
		{"Tie", 4},
		{"Belt", 1},
		{"Blazer", 0},
	}
	for _, s := range seed {
		if _, err := store.AddItem(ctx, models.StockItem{Name: s.name, Total: 20, Remaining: s.remaining}); err != nil {
			t.Fatalf("seed %s: %v", s.name, err)
		}
	}

	report, err := svc.StockSummary(ctx)
	if err != nil {
		t.Fatalf("StockSummary: %v", err)
	}
	if report.TotalItems != 4 || report.InStock != 1 || report.LowStock != 2 || report.OutOfStock != 1 {
		t.Errorf("report = %+v, want totals 4/1/2/1", report)
	}
	if len(report.Alerts) != 3 {
		t.Errorf("alerts = %d, want 3", len(report.Alerts))
	}
}

func TestStockSummaryEmptyInventory(t *testing.T) {
	svc := NewService(memory.New(), 5, nil)

	report, err := svc.StockSummary(context.Background())
	if err != nil {
		t.Fatalf("StockSummary: %v", err)
	}
	if report.TotalItems != 0 || len(report.Alerts) != 0 {
		t.Errorf("empty inventory report = %+v", report)
	}
}

func TestFormatSummaryMentionsAlerts(t *testing.T) {
	svc := NewService(memory.New(), 5, nil)

	message := svc.FormatSummary(models.StockReport{
		TotalItems: 3, InStock: 1, LowStock: 1, OutOfStock: 1,
		Alerts: []models.StockAlert{
			{Name: "Tie", Remaining: 2, Status: models.StatusLowStock},
			{Name: "Blazer", Remaining: 0, Status: models.StatusOutOfStock},
		},
	})

	if !strings.Contains(message, "Tie is low: 2 remaining.") {
		t.Errorf("message missing low-stock line: %q", message)
	}
	if !strings.Contains(message, "Blazer is out of stock.") {
		t.Errorf("message missing out-of-stock line: %q", message)
	}
}
