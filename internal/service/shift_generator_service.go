package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

type generatorPatternRepository interface {
	ListActiveInWindow(ctx context.Context, clientID, patternID string, from, to time.Time) ([]models.ShiftPattern, error)
	FindByID(ctx context.Context, id string) (*models.ShiftPattern, error)
}

type generatorShiftTypeReader interface {
	FindByID(ctx context.Context, id string) (*models.ShiftType, error)
}

type shiftInserter interface {
	InsertIfAbsent(ctx context.Context, shift *models.Shift) (bool, error)
}

// ShiftGeneratorService expands active shift patterns into concrete shift
// instances up to the planning horizon.
type ShiftGeneratorService struct {
	patterns   generatorPatternRepository
	shiftTypes generatorShiftTypeReader
	shifts     shiftInserter
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewShiftGeneratorService wires generator dependencies.
func NewShiftGeneratorService(patterns generatorPatternRepository, shiftTypes generatorShiftTypeReader, shifts shiftInserter, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *ShiftGeneratorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftGeneratorService{
		patterns:   patterns,
		shiftTypes: shiftTypes,
		shifts:     shifts,
		cache:      cache,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// horizonEnd caps generation at December 31 of next calendar year.
func horizonEnd(today time.Time) time.Time {
	return time.Date(today.Year()+1, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Generate expands the client's active patterns (optionally narrowed to one)
// and upserts shift instances. Duplicates are skipped via the storage-level
// uniqueness constraint, so a re-run after a timeout picks up where the
// previous run stopped. A pattern that fails to expand is logged and skipped;
// the batch continues and the summary reflects what succeeded.
func (s *ShiftGeneratorService) Generate(ctx context.Context, actor *models.JWTClaims, clientID, patternID string) (*dto.GenerateShiftsResponse, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}

	if patternID != "" {
		pattern, err := s.patterns.FindByID(ctx, patternID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "shift pattern not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift pattern")
		}
		if pattern.ClientID != clientID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "pattern belongs to another client")
		}
	}

	today := dateOnly(s.now())
	return s.GenerateForClient(ctx, clientID, patternID, horizonEnd(today))
}

// GenerateForClient runs generation without an actor check, clipped to the
// given horizon. The maintenance worker calls this with the client's rolling
// weeks-ahead window; the API path calls it with the full planning horizon.
func (s *ShiftGeneratorService) GenerateForClient(ctx context.Context, clientID, patternID string, horizon time.Time) (*dto.GenerateShiftsResponse, error) {
	today := dateOnly(s.now())
	if horizon.After(horizonEnd(today)) {
		horizon = horizonEnd(today)
	}

	patterns, err := s.patterns.ListActiveInWindow(ctx, clientID, patternID, today, horizon)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift patterns")
	}

	summary := &dto.GenerateShiftsResponse{PatternsConsidered: len(patterns)}
	for _, pattern := range patterns {
		generated, skipped, err := s.generateForPattern(ctx, pattern, today, horizon)
		summary.Generated += generated
		summary.Skipped += skipped
		if err != nil {
			s.logger.Warn("pattern expansion failed, continuing batch",
				zap.String("pattern_id", pattern.ID),
				zap.String("client_id", clientID),
				zap.Error(err))
		}
	}

	s.metrics.RecordGeneration(summary.Generated, summary.Skipped)
	if summary.Generated > 0 {
		s.invalidateOverview(ctx, clientID)
	}
	return summary, nil
}

// generateForPattern processes dates oldest-first so a partial failure leaves
// a deterministic gap the next run fills in.
func (s *ShiftGeneratorService) generateForPattern(ctx context.Context, pattern models.ShiftPattern, today, horizon time.Time) (int, int, error) {
	shiftType, err := s.shiftTypes.FindByID(ctx, pattern.ShiftTypeID)
	if err != nil {
		return 0, 0, err
	}

	status := models.ShiftUnfilled
	if pattern.CaregiverID != nil {
		status = models.ShiftFilled
	}

	var generated, skipped int
	for _, date := range expandPattern(pattern, today, horizon) {
		patternID := pattern.ID
		shift := &models.Shift{
			ClientID:    pattern.ClientID,
			ShiftTypeID: pattern.ShiftTypeID,
			CaregiverID: pattern.CaregiverID,
			PatternID:   &patternID,
			Date:        date,
			StartTime:   shiftType.StartTime,
			EndTime:     shiftType.EndTime,
			Status:      status,
		}
		inserted, err := s.shifts.InsertIfAbsent(ctx, shift)
		if err != nil {
			return generated, skipped, err
		}
		if inserted {
			generated++
		} else {
			skipped++
		}
	}
	return generated, skipped, nil
}

func (s *ShiftGeneratorService) invalidateOverview(ctx context.Context, clientID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, overviewCachePattern(clientID)); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.String("client_id", clientID), zap.Error(err))
	}
}
