package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

type conflictShiftReader interface {
	ListConflictCandidates(ctx context.Context, caregiverID string, date time.Time, excludeShiftID string) ([]models.ShiftConflict, error)
}

// ConflictService detects overlapping shifts for a caregiver on a date. The
// result is advisory: callers decide whether to proceed with an assignment.
type ConflictService struct {
	shifts conflictShiftReader
	logger *zap.Logger
}

// NewConflictService wires conflict detection dependencies.
func NewConflictService(shifts conflictShiftReader, logger *zap.Logger) *ConflictService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConflictService{shifts: shifts, logger: logger}
}

// CheckConflicts loads the caregiver's non-cancelled shifts for the date and
// applies the wall-clock overlap test against the candidate range.
func (s *ConflictService) CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if req.CaregiverID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "caregiver_id is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must match 2006-01-02")
	}
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must match HH:mm")
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must match HH:mm")
	}

	candidates, err := s.shifts.ListConflictCandidates(ctx, req.CaregiverID, dateOnly(date), req.ExcludeShiftID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts for conflict check")
	}

	conflicts := make([]models.ShiftConflict, 0, len(candidates))
	for _, candidate := range candidates {
		existingStart, err := parseClock(candidate.StartTime)
		if err != nil {
			s.logger.Warn("shift has malformed start time", zap.String("shift_id", candidate.ShiftID), zap.Error(err))
			continue
		}
		existingEnd, err := parseClock(candidate.EndTime)
		if err != nil {
			s.logger.Warn("shift has malformed end time", zap.String("shift_id", candidate.ShiftID), zap.Error(err))
			continue
		}
		if timeRangesOverlap(start, end, existingStart, existingEnd) {
			conflicts = append(conflicts, candidate)
		}
	}

	return &dto.ConflictCheckResponse{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}
