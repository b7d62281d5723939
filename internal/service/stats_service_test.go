package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

func namedShift(id, date, start, end string, status models.ShiftStatus, caregiverID, caregiverName string) models.ShiftWithNames {
	shift := models.ShiftWithNames{
		Shift: models.Shift{
			ID: id, ClientID: "client-1", Date: day(date),
			StartTime: start, EndTime: end, Status: status,
		},
		ShiftTypeName: "Day",
	}
	if caregiverID != "" {
		shift.CaregiverID = &caregiverID
		shift.CaregiverName = &caregiverName
	}
	return shift
}

func TestBuildOverviewEmptyWindow(t *testing.T) {
	overview := buildOverview(nil, nil, day("2024-06-15"), day("2025-06-15"))

	assert.Equal(t, 0, overview.OverallStats.TotalShifts)
	assert.Equal(t, 0.0, overview.OverallStats.FillRate)
	assert.Equal(t, 0.0, overview.OverallStats.CompletionRate)
	assert.Empty(t, overview.UnfilledShifts)
	assert.Empty(t, overview.UnfilledDates)
	assert.Empty(t, overview.CaregiverStats)
}

func TestBuildOverviewRatesAndCaregivers(t *testing.T) {
	shifts := []models.ShiftWithNames{
		namedShift("shift-0", "2024-06-10", "09:00", "17:00", models.ShiftCompleted, "caregiver-1", "Anna"),
		namedShift("shift-1", "2024-06-15", "09:00", "17:00", models.ShiftCompleted, "caregiver-1", "Anna"),
		namedShift("shift-2", "2024-06-20", "22:00", "06:00", models.ShiftFilled, "caregiver-1", "Anna"),
		namedShift("shift-3", "2024-06-20", "09:00", "17:00", models.ShiftUnfilled, "", ""),
		namedShift("shift-4", "2024-06-21", "09:00", "17:00", models.ShiftCancelled, "", ""),
	}
	sickLeave := []models.TimeOffRequest{
		{CaregiverID: "caregiver-1", StartDate: day("2024-06-18"), EndDate: day("2024-06-19"), Status: models.TimeOffApproved, RequestType: models.TimeOffSickLeave},
		{CaregiverID: "caregiver-unknown", StartDate: day("2024-06-18"), EndDate: day("2024-06-19"), Status: models.TimeOffApproved, RequestType: models.TimeOffSickLeave},
	}

	overview := buildOverview(shifts, sickLeave, day("2024-06-15"), day("2025-06-15"))

	overall := overview.OverallStats
	assert.Equal(t, 4, overall.TotalShifts)
	assert.Equal(t, 3, overall.FilledShifts)
	assert.Equal(t, 1, overall.UnfilledShifts)
	// shift-1 is dated today and does not count as past.
	assert.Equal(t, 1, overall.PastShifts)
	assert.Equal(t, 1, overall.CompletedShifts)
	assert.Equal(t, 75.0, overall.FillRate)
	assert.Equal(t, 100.0, overall.CompletionRate)

	require.Len(t, overview.UnfilledShifts, 1)
	assert.Equal(t, "shift-3", overview.UnfilledShifts[0].ShiftID)

	require.Len(t, overview.UnfilledDates, 1)
	assert.Equal(t, "2024-06-20", overview.UnfilledDates[0].Date)
	assert.Equal(t, 1, overview.UnfilledDates[0].UnfilledCount)
	assert.Equal(t, 2, overview.UnfilledDates[0].TotalCount)

	require.Len(t, overview.CaregiverStats, 1)
	anna := overview.CaregiverStats[0]
	assert.Equal(t, "Anna", anna.CaregiverName)
	assert.Equal(t, 3, anna.TotalShifts)
	assert.Equal(t, 24.0, anna.TotalHours)
	assert.Equal(t, 0.5, anna.AverageHoursPerWeek)
	assert.Equal(t, 2, anna.SickDays)
	// Two sick days against three shifts.
	assert.Equal(t, 66.7, anna.SicknessPercentage)
}

func TestBuildOverviewCompletionIgnoresToday(t *testing.T) {
	shifts := []models.ShiftWithNames{
		namedShift("shift-1", "2024-06-15", "09:00", "17:00", models.ShiftCompleted, "caregiver-1", "Anna"),
	}

	overview := buildOverview(shifts, nil, day("2024-06-15"), day("2025-06-15"))

	assert.Equal(t, 0, overview.OverallStats.PastShifts)
	assert.Equal(t, 0, overview.OverallStats.CompletedShifts)
	assert.Equal(t, 0.0, overview.OverallStats.CompletionRate)
}

func TestBuildOverviewSicknessCountsShiftsNotDates(t *testing.T) {
	shifts := []models.ShiftWithNames{
		namedShift("shift-1", "2024-06-20", "09:00", "17:00", models.ShiftFilled, "caregiver-1", "Anna"),
		namedShift("shift-2", "2024-06-20", "22:00", "06:00", models.ShiftFilled, "caregiver-1", "Anna"),
	}
	sickLeave := []models.TimeOffRequest{
		{CaregiverID: "caregiver-1", StartDate: day("2024-06-18"), EndDate: day("2024-06-18"), Status: models.TimeOffApproved, RequestType: models.TimeOffSickLeave},
	}

	overview := buildOverview(shifts, sickLeave, day("2024-06-15"), day("2025-06-15"))

	require.Len(t, overview.CaregiverStats, 1)
	anna := overview.CaregiverStats[0]
	// Two shifts on the same date both count in the denominator.
	assert.Equal(t, 2, anna.TotalShifts)
	assert.Equal(t, 1, anna.SickDays)
	assert.Equal(t, 50.0, anna.SicknessPercentage)
}

func TestBuildOverviewAverageHoursDividesByFixedYear(t *testing.T) {
	shifts := []models.ShiftWithNames{
		namedShift("shift-1", "2024-06-16", "09:00", "17:00", models.ShiftFilled, "caregiver-1", "Anna"),
	}

	// The divisor is 52 regardless of the window length.
	overview := buildOverview(shifts, nil, day("2024-06-15"), day("2024-06-29"))

	require.Len(t, overview.CaregiverStats, 1)
	anna := overview.CaregiverStats[0]
	assert.Equal(t, 8.0, anna.TotalHours)
	assert.Equal(t, 0.2, anna.AverageHoursPerWeek)
}

func TestBuildOverviewSortsOutput(t *testing.T) {
	shifts := []models.ShiftWithNames{
		namedShift("shift-1", "2024-07-01", "09:00", "17:00", models.ShiftUnfilled, "", ""),
		namedShift("shift-2", "2024-06-20", "09:00", "17:00", models.ShiftUnfilled, "", ""),
		namedShift("shift-3", "2024-06-25", "09:00", "17:00", models.ShiftFilled, "caregiver-2", "Zara"),
		namedShift("shift-4", "2024-06-25", "09:00", "17:00", models.ShiftFilled, "caregiver-1", "Anna"),
	}

	overview := buildOverview(shifts, nil, day("2024-06-15"), day("2025-06-15"))

	require.Len(t, overview.UnfilledDates, 2)
	assert.Equal(t, "2024-06-20", overview.UnfilledDates[0].Date)
	assert.Equal(t, "2024-07-01", overview.UnfilledDates[1].Date)

	require.Len(t, overview.CaregiverStats, 2)
	assert.Equal(t, "Anna", overview.CaregiverStats[0].CaregiverName)
	assert.Equal(t, "Zara", overview.CaregiverStats[1].CaregiverName)
}

func TestStatsServiceOverviewAuthz(t *testing.T) {
	service := NewStatsService(overviewReaderStub{}, sickLeaveReaderStub{}, nil, 0, zap.NewNop())
	service.now = func() time.Time { return day("2024-06-15") }

	_, err := service.Overview(context.Background(), nil, "client-1")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = service.Overview(context.Background(), clientClaims("client-2"), "client-1")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	resp, err := service.Overview(context.Background(), clientClaims("client-1"), "client-1")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.OverallStats.TotalShifts)
}

type overviewReaderStub struct {
	shifts []models.ShiftWithNames
}

func (s overviewReaderStub) ListForOverview(ctx context.Context, clientID string, from, to time.Time) ([]models.ShiftWithNames, error) {
	return s.shifts, nil
}

type sickLeaveReaderStub struct {
	requests []models.TimeOffRequest
}

func (s sickLeaveReaderStub) ListApprovedSickLeave(ctx context.Context, clientID string, from, to time.Time) ([]models.TimeOffRequest, error) {
	return s.requests, nil
}
