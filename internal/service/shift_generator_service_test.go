package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

func TestShiftGeneratorServiceGenerateIdempotent(t *testing.T) {
	end := day("2024-06-19")
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-10"), EndDate: &end, IsActive: true},
	})

	first, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "")
	require.NoError(t, err)
	assert.Equal(t, 5, first.Generated)
	assert.Equal(t, 0, first.Skipped)
	assert.Equal(t, 1, first.PatternsConsidered)

	second, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, 5, second.Skipped)
}

func TestShiftGeneratorServiceCopiesTypeTimesAndStatus(t *testing.T) {
	caregiverID := "caregiver-1"
	end := day("2024-06-16")
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", CaregiverID: &caregiverID, RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), EndDate: &end, IsActive: true},
	})

	_, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "")
	require.NoError(t, err)
	require.Len(t, fixture.shifts.items, 2)
	for _, shift := range fixture.shifts.items {
		assert.Equal(t, models.ShiftFilled, shift.Status)
		assert.Equal(t, "22:00", shift.StartTime)
		assert.Equal(t, "06:00", shift.EndTime)
		require.NotNil(t, shift.CaregiverID)
		assert.Equal(t, caregiverID, *shift.CaregiverID)
		require.NotNil(t, shift.PatternID)
		assert.Equal(t, "pattern-1", *shift.PatternID)
	}
}

func TestShiftGeneratorServiceUnfilledWithoutCaregiver(t *testing.T) {
	end := day("2024-06-15")
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), EndDate: &end, IsActive: true},
	})

	_, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "")
	require.NoError(t, err)
	require.Len(t, fixture.shifts.items, 1)
	assert.Equal(t, models.ShiftUnfilled, fixture.shifts.items[0].Status)
	assert.Nil(t, fixture.shifts.items[0].CaregiverID)
}

func TestShiftGeneratorServiceAuthz(t *testing.T) {
	fixture := newGeneratorFixture(t, nil)

	_, err := fixture.service.Generate(context.Background(), nil, "client-1", "")
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	_, err = fixture.service.Generate(context.Background(), &models.JWTClaims{UserID: "caregiver-1", Role: models.RoleCaregiver}, "client-1", "")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	_, err = fixture.service.Generate(context.Background(), clientClaims("client-2"), "client-1", "")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	// Admins may generate for any client.
	_, err = fixture.service.Generate(context.Background(), &models.JWTClaims{UserID: "admin-1", Role: models.RoleAdmin}, "client-1", "")
	assert.NoError(t, err)
}

func TestShiftGeneratorServicePatternScoping(t *testing.T) {
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-other", ClientID: "client-2", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), IsActive: true},
	})

	_, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "missing")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "pattern-other")
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestShiftGeneratorServiceContinuesAfterPatternFailure(t *testing.T) {
	end := day("2024-06-16")
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-broken", ClientID: "client-1", ShiftTypeID: "type-missing", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), EndDate: &end, IsActive: true},
		{ID: "pattern-ok", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), EndDate: &end, IsActive: true},
	})

	summary, err := fixture.service.Generate(context.Background(), clientClaims("client-1"), "client-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.PatternsConsidered)
	assert.Equal(t, 2, summary.Generated)
	for _, shift := range fixture.shifts.items {
		assert.Equal(t, "pattern-ok", *shift.PatternID)
	}
}

func TestShiftGeneratorServiceClampsHorizon(t *testing.T) {
	fixture := newGeneratorFixture(t, []models.ShiftPattern{
		{ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1", RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-15"), IsActive: true},
	})

	// A horizon far past December 31 of next year is clipped to it.
	summary, err := fixture.service.GenerateForClient(context.Background(), "client-1", "", day("2030-01-01"))
	require.NoError(t, err)
	want := daysBetweenInclusive(day("2024-06-15"), day("2025-12-31"))
	assert.Equal(t, want, summary.Generated)
}

// --- Fixtures ---

type generatorFixture struct {
	service *ShiftGeneratorService
	shifts  *shiftInserterStub
}

func newGeneratorFixture(t *testing.T, patterns []models.ShiftPattern) generatorFixture {
	t.Helper()
	shifts := &shiftInserterStub{}
	svc := NewShiftGeneratorService(
		&generatorPatternRepoStub{patterns: patterns},
		shiftTypeReaderStub{types: map[string]*models.ShiftType{
			"type-1": {ID: "type-1", ClientID: "client-1", Name: "Night", StartTime: "22:00", EndTime: "06:00"},
		}},
		shifts,
		nil,
		nil,
		zap.NewNop(),
	)
	svc.now = func() time.Time { return day("2024-06-15") }
	return generatorFixture{service: svc, shifts: shifts}
}

func clientClaims(userID string) *models.JWTClaims {
	return &models.JWTClaims{UserID: userID, Role: models.RoleClient}
}

type generatorPatternRepoStub struct {
	patterns []models.ShiftPattern
}

func (s *generatorPatternRepoStub) ListActiveInWindow(ctx context.Context, clientID, patternID string, from, to time.Time) ([]models.ShiftPattern, error) {
	var out []models.ShiftPattern
	for _, p := range s.patterns {
		if !p.IsActive || p.ClientID != clientID {
			continue
		}
		if patternID != "" && p.ID != patternID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *generatorPatternRepoStub) FindByID(ctx context.Context, id string) (*models.ShiftPattern, error) {
	for _, p := range s.patterns {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

type shiftTypeReaderStub struct {
	types map[string]*models.ShiftType
}

func (s shiftTypeReaderStub) FindByID(ctx context.Context, id string) (*models.ShiftType, error) {
	if st, ok := s.types[id]; ok {
		copied := *st
		return &copied, nil
	}
	return nil, errors.New("shift type lookup failed")
}

type shiftInserterStub struct {
	mu    sync.Mutex
	items []models.Shift
	seen  map[string]struct{}
}

func (s *shiftInserterStub) InsertIfAbsent(ctx context.Context, shift *models.Shift) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	key := shift.ClientID + "|" + shift.ShiftTypeID + "|" + shift.Date.Format("2006-01-02")
	if _, ok := s.seen[key]; ok {
		return false, nil
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, *shift)
	return true, nil
}

func (s *shiftInserterStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
