package config

import (
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Inventory.Mode != models.ModeCatalog {
		t.Errorf("mode = %q, want catalog", cfg.Inventory.Mode)
	}
	if cfg.Inventory.LowStockThreshold != models.DefaultLowStockThreshold {
		t.Errorf("threshold = %d, want %d", cfg.Inventory.LowStockThreshold, models.DefaultLowStockThreshold)
	}
	if cfg.SheetsEnabled() || cfg.AlertsEnabled() {
		t.Error("optional sinks should be disabled by default")
	}
}

func TestLoadPlainMode(t *testing.T) {
	t.Setenv("INVENTORY_MODE", "plain")
	cfg, err := Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inventory.Mode != models.ModePlain {
		t.Errorf("mode = %q, want plain", cfg.Inventory.Mode)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("INVENTORY_MODE", "hybrid")
	if _, err := Load("nonexistent.env"); err == nil {
		t.Fatal("Load with unknown mode should fail")
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "lots")
	if _, err := Load("nonexistent.env"); err == nil {
		t.Fatal("Load with non-integer threshold should fail")
	}

	t.Setenv("LOW_STOCK_THRESHOLD", "0")
	if _, err := Load("nonexistent.env"); err == nil {
		t.Fatal("Load with zero threshold should fail")
	}
}

func TestValidateSheetsRequiresCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SHEET_EXPORT_ID", "sheet-id")
	if _, err := Load("nonexistent.env"); err == nil {
		t.Fatal("sheets export without credentials path should fail validation")
	}

	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/creds.json")
	cfg, err := Load("nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.SheetsEnabled() {
		t.Error("sheets export should be enabled")
	}
}
