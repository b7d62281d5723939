package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	"github.com/DanDopi/Zorg-Dossier-sub002/pkg/jobs"
)

type maintenanceClientLister interface {
	ListClientIDsWithActivePatterns(ctx context.Context) ([]string, error)
}

type maintenanceSettingsReader interface {
	Get(ctx context.Context, clientID string) (*models.SchedulingSettings, error)
}

// MaintenanceConfig tunes the background schedule maintenance sweep.
type MaintenanceConfig struct {
	Interval          time.Duration
	Workers           int
	DefaultWeeksAhead int
}

// MaintenanceService keeps every client's schedule topped up. On each sweep it
// enqueues one job per client with active patterns; workers extend that
// client's shifts out to their weeks-ahead window.
type MaintenanceService struct {
	clients   maintenanceClientLister
	settings  maintenanceSettingsReader
	generator *ShiftGeneratorService
	queue     *jobs.Queue
	interval  time.Duration
	weeks     int
	logger    *zap.Logger
	now       func() time.Time
}

// NewMaintenanceService wires the maintenance worker.
func NewMaintenanceService(clients maintenanceClientLister, settings maintenanceSettingsReader, generator *ShiftGeneratorService, cfg MaintenanceConfig, logger *zap.Logger) *MaintenanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.DefaultWeeksAhead < minWeeksAhead || cfg.DefaultWeeksAhead > maxWeeksAhead {
		cfg.DefaultWeeksAhead = 8
	}

	s := &MaintenanceService{
		clients:   clients,
		settings:  settings,
		generator: generator,
		interval:  cfg.Interval,
		weeks:     cfg.DefaultWeeksAhead,
		logger:    logger,
		now:       time.Now,
	}
	s.queue = jobs.NewQueue("schedule-maintenance", s.handleJob, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the worker pool and the periodic sweep. The first sweep runs
// after one interval so startup is not dominated by generation work.
func (s *MaintenanceService) Start(ctx context.Context) {
	s.queue.Start(ctx)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(ctx)
			}
		}
	}()
}

// Stop drains the worker pool.
func (s *MaintenanceService) Stop() {
	s.queue.Stop()
}

// Sweep enqueues a maintenance job for every client with active patterns.
func (s *MaintenanceService) Sweep(ctx context.Context) {
	clientIDs, err := s.clients.ListClientIDsWithActivePatterns(ctx)
	if err != nil {
		s.logger.Warn("maintenance sweep failed to list clients", zap.Error(err))
		return
	}
	for _, clientID := range clientIDs {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    "schedule_maintenance",
			Payload: clientID,
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue maintenance job", zap.String("client_id", clientID), zap.Error(err))
		}
	}
	s.logger.Info("maintenance sweep enqueued", zap.Int("clients", len(clientIDs)))
}

func (s *MaintenanceService) handleJob(ctx context.Context, job jobs.Job) error {
	clientID, ok := job.Payload.(string)
	if !ok || clientID == "" {
		return fmt.Errorf("maintenance job %s has no client id", job.ID)
	}

	weeks := s.weeks
	settings, err := s.settings.Get(ctx, clientID)
	switch {
	case err == nil:
		if settings.WeeksAhead >= minWeeksAhead && settings.WeeksAhead <= maxWeeksAhead {
			weeks = settings.WeeksAhead
		}
	case errors.Is(err, sql.ErrNoRows):
		// No stored settings, keep the default window.
	default:
		return fmt.Errorf("load settings for %s: %w", clientID, err)
	}

	horizon := dateOnly(s.now()).AddDate(0, 0, weeks*7)
	summary, err := s.generator.GenerateForClient(ctx, clientID, "", horizon)
	if err != nil {
		return fmt.Errorf("maintain schedule for %s: %w", clientID, err)
	}
	if summary.Generated > 0 {
		s.logger.Info("schedule maintained",
			zap.String("client_id", clientID),
			zap.Int("generated", summary.Generated),
			zap.Int("skipped", summary.Skipped))
	}
	return nil
}
