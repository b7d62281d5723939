package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

func validPatternRequest() dto.ShiftPatternRequest {
	return dto.ShiftPatternRequest{
		ShiftTypeID:    "type-1",
		RecurrenceType: "WEEKLY",
		StartDate:      "2024-07-01",
	}
}

func newPatternServiceFixture(t *testing.T, patterns ...*models.ShiftPattern) (*ShiftPatternService, *patternRepoStub) {
	t.Helper()
	repo := &patternRepoStub{items: make(map[string]*models.ShiftPattern)}
	for _, p := range patterns {
		repo.items[p.ID] = p
	}
	shiftTypes := newShiftTypeRepoStub()
	shiftTypes.items["type-1"] = &models.ShiftType{ID: "type-1", ClientID: "client-1", Name: "Day", StartTime: "09:00", EndTime: "17:00"}
	shiftTypes.items["type-other"] = &models.ShiftType{ID: "type-other", ClientID: "client-2", Name: "Day", StartTime: "09:00", EndTime: "17:00"}
	users := userReaderStub{users: map[string]*models.User{
		"caregiver-1":        {ID: "caregiver-1", Role: models.RoleCaregiver, Active: true},
		"caregiver-inactive": {ID: "caregiver-inactive", Role: models.RoleCaregiver, Active: false},
		"client-1":           {ID: "client-1", Role: models.RoleClient, Active: true},
	}}
	return NewShiftPatternService(repo, shiftTypes, users, nil), repo
}

func TestShiftPatternServiceCreate(t *testing.T) {
	t.Run("success defaults to active", func(t *testing.T) {
		service, repo := newPatternServiceFixture(t)
		created, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", validPatternRequest())
		require.NoError(t, err)
		assert.True(t, created.IsActive)
		assert.Equal(t, models.RecurrenceWeekly, created.RecurrenceType)
		assert.Equal(t, day("2024-07-01"), created.StartDate)
		assert.Len(t, repo.items, 1)
	})

	t.Run("with caregiver", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		caregiverID := "caregiver-1"
		req := validPatternRequest()
		req.CaregiverID = &caregiverID
		created, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", req)
		require.NoError(t, err)
		require.NotNil(t, created.CaregiverID)
		assert.Equal(t, caregiverID, *created.CaregiverID)
	})

	t.Run("unknown recurrence", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		req := validPatternRequest()
		req.RecurrenceType = "EVERY_FULL_MOON"
		_, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", req)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("end before start", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		end := "2024-06-01"
		req := validPatternRequest()
		req.EndDate = &end
		_, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", req)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("shift type of another client", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		req := validPatternRequest()
		req.ShiftTypeID = "type-other"
		_, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", req)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("caregiver must be an active caregiver", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		for _, id := range []string{"client-1", "caregiver-inactive", "nobody"} {
			caregiverID := id
			req := validPatternRequest()
			req.CaregiverID = &caregiverID
			_, err := service.Create(context.Background(), clientClaims("client-1"), "client-1", req)
			require.Error(t, err, id)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		}
	})
}

func TestShiftPatternServiceUpdate(t *testing.T) {
	existing := &models.ShiftPattern{
		ID: "pattern-1", ClientID: "client-1", ShiftTypeID: "type-1",
		RecurrenceType: models.RecurrenceDaily, StartDate: day("2024-06-01"), IsActive: true,
		CreatedAt: day("2024-05-01"),
	}

	t.Run("preserves identity", func(t *testing.T) {
		service, repo := newPatternServiceFixture(t, existing)
		inactive := false
		req := validPatternRequest()
		req.IsActive = &inactive
		updated, err := service.Update(context.Background(), clientClaims("client-1"), "pattern-1", req)
		require.NoError(t, err)
		assert.Equal(t, "pattern-1", updated.ID)
		assert.Equal(t, day("2024-05-01"), updated.CreatedAt)
		assert.False(t, updated.IsActive)
		assert.False(t, repo.items["pattern-1"].IsActive)
	})

	t.Run("other client forbidden", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t, existing)
		_, err := service.Update(context.Background(), clientClaims("client-2"), "pattern-1", validPatternRequest())
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	})

	t.Run("missing pattern", func(t *testing.T) {
		service, _ := newPatternServiceFixture(t)
		_, err := service.Update(context.Background(), clientClaims("client-1"), "missing", validPatternRequest())
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftPatternServiceDelete(t *testing.T) {
	service, repo := newPatternServiceFixture(t, &models.ShiftPattern{ID: "pattern-1", ClientID: "client-1"})

	require.NoError(t, service.Delete(context.Background(), clientClaims("client-1"), "pattern-1"))
	assert.NotContains(t, repo.items, "pattern-1")

	err := service.Delete(context.Background(), clientClaims("client-1"), "pattern-1")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

type patternRepoStub struct {
	items map[string]*models.ShiftPattern
	seq   int
}

func (s *patternRepoStub) ListByClient(ctx context.Context, clientID string) ([]models.ShiftPattern, error) {
	var out []models.ShiftPattern
	for _, p := range s.items {
		if p.ClientID == clientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *patternRepoStub) FindByID(ctx context.Context, id string) (*models.ShiftPattern, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (s *patternRepoStub) Create(ctx context.Context, pattern *models.ShiftPattern) error {
	s.seq++
	if pattern.ID == "" {
		pattern.ID = "pattern-" + string(rune('0'+s.seq))
	}
	copied := *pattern
	s.items[pattern.ID] = &copied
	return nil
}

func (s *patternRepoStub) Update(ctx context.Context, pattern *models.ShiftPattern) error {
	if _, ok := s.items[pattern.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *pattern
	s.items[pattern.ID] = &copied
	return nil
}

func (s *patternRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}
