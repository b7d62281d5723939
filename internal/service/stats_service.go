package service

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

type statsShiftReader interface {
	ListForOverview(ctx context.Context, clientID string, from, to time.Time) ([]models.ShiftWithNames, error)
}

type sickLeaveReader interface {
	ListApprovedSickLeave(ctx context.Context, clientID string, from, to time.Time) ([]models.TimeOffRequest, error)
}

// StatsService aggregates scheduling statistics for the client dashboard.
// All rates are percentages rounded to one decimal and 0 when the
// denominator is empty.
type StatsService struct {
	shifts   statsShiftReader
	timeOff  sickLeaveReader
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewStatsService wires statistics dependencies.
func NewStatsService(shifts statsShiftReader, timeOff sickLeaveReader, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{shifts: shifts, timeOff: timeOff, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// Overview computes the scheduling dashboard for a client over the coming
// year. The payload is cached per client and invalidated on shift mutations.
func (s *StatsService) Overview(ctx context.Context, actor *models.JWTClaims, clientID string) (*dto.SchedulingOverviewResponse, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}

	cacheKey := overviewCacheKey(clientID)
	if s.cache != nil {
		var cached dto.SchedulingOverviewResponse
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	today := dateOnly(s.now())
	windowEnd := today.AddDate(1, 0, 0)

	shifts, err := s.shifts.ListForOverview(ctx, clientID, today, windowEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shifts for overview")
	}
	sickLeave, err := s.timeOff.ListApprovedSickLeave(ctx, clientID, today, windowEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sick leave for overview")
	}

	overview := buildOverview(shifts, sickLeave, today, windowEnd)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, overview, s.cacheTTL); err != nil {
			s.logger.Warn("overview cache write failed", zap.String("client_id", clientID), zap.Error(err))
		}
	}
	return overview, nil
}

func buildOverview(shifts []models.ShiftWithNames, sickLeave []models.TimeOffRequest, windowStart, windowEnd time.Time) *dto.SchedulingOverviewResponse {
	overall := dto.OverallStats{}
	unfilledShifts := make([]dto.UnfilledShiftEntry, 0)
	perDate := make(map[string]*dto.UnfilledDateEntry)
	perCaregiver := make(map[string]*dto.CaregiverStats)

	for _, shift := range shifts {
		if shift.Status == models.ShiftCancelled {
			continue
		}
		overall.TotalShifts++

		dateKey := shift.Date.Format("2006-01-02")
		entry, ok := perDate[dateKey]
		if !ok {
			entry = &dto.UnfilledDateEntry{Date: dateKey}
			perDate[dateKey] = entry
		}
		entry.TotalCount++

		if dateOnly(shift.Date).Before(windowStart) {
			overall.PastShifts++
			if shift.Status == models.ShiftCompleted {
				overall.CompletedShifts++
			}
		}

		if shift.CaregiverID == nil {
			overall.UnfilledShifts++
			entry.UnfilledCount++
			unfilledShifts = append(unfilledShifts, dto.UnfilledShiftEntry{
				ShiftID:       shift.ID,
				Date:          dateKey,
				StartTime:     shift.StartTime,
				EndTime:       shift.EndTime,
				ShiftTypeName: shift.ShiftTypeName,
			})
			continue
		}

		overall.FilledShifts++
		caregiverID := *shift.CaregiverID
		stats, ok := perCaregiver[caregiverID]
		if !ok {
			name := caregiverID
			if shift.CaregiverName != nil {
				name = *shift.CaregiverName
			}
			stats = &dto.CaregiverStats{CaregiverID: caregiverID, CaregiverName: name}
			perCaregiver[caregiverID] = stats
		}
		stats.TotalShifts++
		stats.TotalHours += shiftHours(shift.StartTime, shift.EndTime)
	}

	overall.FillRate = percentage(overall.FilledShifts, overall.TotalShifts)
	overall.CompletionRate = percentage(overall.CompletedShifts, overall.PastShifts)

	for _, request := range sickLeave {
		stats, ok := perCaregiver[request.CaregiverID]
		if !ok {
			continue
		}
		overlapStart := maxDate(dateOnly(request.StartDate), windowStart)
		overlapEnd := minDate(dateOnly(request.EndDate), windowEnd)
		stats.SickDays += daysBetweenInclusive(overlapStart, overlapEnd)
	}

	caregiverStats := make([]dto.CaregiverStats, 0, len(perCaregiver))
	for _, stats := range perCaregiver {
		stats.AverageHoursPerWeek = round1(stats.TotalHours / 52)
		stats.TotalHours = round1(stats.TotalHours)
		stats.SicknessPercentage = percentage(stats.SickDays, stats.TotalShifts)
		caregiverStats = append(caregiverStats, *stats)
	}
	sort.Slice(caregiverStats, func(i, j int) bool {
		return caregiverStats[i].CaregiverName < caregiverStats[j].CaregiverName
	})

	unfilledDates := make([]dto.UnfilledDateEntry, 0, len(perDate))
	for _, entry := range perDate {
		if entry.UnfilledCount > 0 {
			unfilledDates = append(unfilledDates, *entry)
		}
	}
	sort.Slice(unfilledDates, func(i, j int) bool {
		return unfilledDates[i].Date < unfilledDates[j].Date
	})

	return &dto.SchedulingOverviewResponse{
		OverallStats:   overall,
		UnfilledShifts: unfilledShifts,
		UnfilledDates:  unfilledDates,
		CaregiverStats: caregiverStats,
	}
}

// percentage computes part/whole as a percentage rounded to one decimal.
// An empty denominator yields 0, never NaN.
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
