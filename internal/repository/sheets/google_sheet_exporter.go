package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const (
	issuancesRange = "Issuances!A:F"
	reportsRange   = "Reports!A:E"
	timestampFmt   = time.RFC3339
)

// Exporter is the append-only spreadsheet sink for ledger records and
// report snapshots.
type Exporter interface {
	AppendIssuance(ctx context.Context, record models.IssuanceRecord, itemName string) error
	AppendReport(ctx context.Context, report models.StockReport) error
}

// GoogleSheetExporter implements Exporter using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendIssuance appends one committed ledger record.
func (e *GoogleSheetExporter) AppendIssuance(ctx context.Context, record models.IssuanceRecord, itemName string) error {
	row := []interface{}{
		record.ID,
		record.StudentName,
		itemName,
		record.Quantity,
		record.IssueDate,
		record.CreatedAt.Format(timestampFmt),
	}
	return e.appendRow(ctx, issuancesRange, row)
}

// AppendReport appends one stock report snapshot.
func (e *GoogleSheetExporter) AppendReport(ctx context.Context, report models.StockReport) error {
	row := []interface{}{
		report.GeneratedAt.Format(timestampFmt),
		report.TotalItems,
		report.InStock,
		report.LowStock,
		report.OutOfStock,
	}
	return e.appendRow(ctx, reportsRange, row)
}

func (e *GoogleSheetExporter) appendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	e.logger.Debug("row exported", zap.String("range", sheetRange))
	return nil
}
