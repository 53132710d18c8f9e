package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/alert"
)

// Scheduler runs the recurring stock report job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	alertClient  alert.Client
	exporter     sheets.Exporter
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. alertClient and exporter
// may be nil when the corresponding sinks are not configured.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, alertClient alert.Client, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		alertClient:  alertClient,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runStockReport)
	if err != nil {
		s.logger.Error("failed to schedule stock report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runStockReport() {
	s.logger.Info("generating stock report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.StockSummary(ctx)
	if err != nil {
		s.logger.Error("failed to generate stock report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendReport(ctx, report); err != nil {
			s.logger.Error("failed to export stock report", zap.Error(err))
		}
	}

	if s.alertClient == nil || len(report.Alerts) == 0 {
		return
	}

	message := s.reportingSvc.FormatSummary(report)
	if err := s.alertClient.SendAlert(ctx, message); err != nil {
		s.logger.Error("failed to send stock alert", zap.Error(err))
		return
	}
	s.logger.Info("stock alert sent", zap.Int("alerts", len(report.Alerts)))
}
