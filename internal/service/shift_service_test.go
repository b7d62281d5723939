package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

func TestShiftServiceGetByID(t *testing.T) {
	caregiverID := "caregiver-1"
	fixture := newShiftFixture(t, &models.Shift{
		ID: "shift-1", ClientID: "client-1", CaregiverID: &caregiverID,
		Date: day("2024-06-10"), Status: models.ShiftFilled,
	})

	t.Run("owner", func(t *testing.T) {
		shift, err := fixture.service.GetByID(context.Background(), clientClaims("client-1"), "shift-1")
		require.NoError(t, err)
		assert.Equal(t, "shift-1", shift.ID)
	})

	t.Run("assigned caregiver", func(t *testing.T) {
		_, err := fixture.service.GetByID(context.Background(), &models.JWTClaims{UserID: caregiverID, Role: models.RoleCaregiver}, "shift-1")
		assert.NoError(t, err)
	})

	t.Run("other caregiver", func(t *testing.T) {
		_, err := fixture.service.GetByID(context.Background(), &models.JWTClaims{UserID: "caregiver-2", Role: models.RoleCaregiver}, "shift-1")
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	})

	t.Run("other client", func(t *testing.T) {
		_, err := fixture.service.GetByID(context.Background(), clientClaims("client-2"), "shift-1")
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	})

	t.Run("unknown shift", func(t *testing.T) {
		_, err := fixture.service.GetByID(context.Background(), clientClaims("client-1"), "missing")
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftServiceAssign(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-20"))
		shift, err := fixture.service.Assign(context.Background(), clientClaims("client-1"), "shift-1", dto.AssignShiftRequest{CaregiverID: "caregiver-1"})
		require.NoError(t, err)
		assert.Equal(t, models.ShiftFilled, shift.Status)
		require.NotNil(t, shift.CaregiverID)
		assert.Equal(t, "caregiver-1", *shift.CaregiverID)
		assert.Equal(t, models.ShiftFilled, fixture.shifts.items["shift-1"].Status)
	})

	t.Run("already filled", func(t *testing.T) {
		filled := unfilledShift("shift-1", "2024-06-20")
		filled.Status = models.ShiftFilled
		fixture := newShiftFixture(t, filled)
		_, err := fixture.service.Assign(context.Background(), clientClaims("client-1"), "shift-1", dto.AssignShiftRequest{CaregiverID: "caregiver-1"})
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
	})

	t.Run("unknown caregiver", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-20"))
		_, err := fixture.service.Assign(context.Background(), clientClaims("client-1"), "shift-1", dto.AssignShiftRequest{CaregiverID: "nobody"})
		assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	})

	t.Run("assignee is a client", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-20"))
		_, err := fixture.service.Assign(context.Background(), clientClaims("client-1"), "shift-1", dto.AssignShiftRequest{CaregiverID: "client-1"})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("inactive caregiver", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-20"))
		_, err := fixture.service.Assign(context.Background(), clientClaims("client-1"), "shift-1", dto.AssignShiftRequest{CaregiverID: "caregiver-inactive"})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftServiceComplete(t *testing.T) {
	t.Run("success on a past shift", func(t *testing.T) {
		filled := unfilledShift("shift-1", "2024-06-10")
		filled.Status = models.ShiftFilled
		fixture := newShiftFixture(t, filled)
		shift, err := fixture.service.Complete(context.Background(), clientClaims("client-1"), "shift-1")
		require.NoError(t, err)
		assert.Equal(t, models.ShiftCompleted, shift.Status)
	})

	t.Run("future shift", func(t *testing.T) {
		filled := unfilledShift("shift-1", "2024-06-20")
		filled.Status = models.ShiftFilled
		fixture := newShiftFixture(t, filled)
		_, err := fixture.service.Complete(context.Background(), clientClaims("client-1"), "shift-1")
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("unfilled shift", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-10"))
		_, err := fixture.service.Complete(context.Background(), clientClaims("client-1"), "shift-1")
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftServiceCancel(t *testing.T) {
	t.Run("unfilled", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-20"))
		shift, err := fixture.service.Cancel(context.Background(), clientClaims("client-1"), "shift-1")
		require.NoError(t, err)
		assert.Equal(t, models.ShiftCancelled, shift.Status)
	})

	t.Run("completed stays on record", func(t *testing.T) {
		done := unfilledShift("shift-1", "2024-06-10")
		done.Status = models.ShiftCompleted
		fixture := newShiftFixture(t, done)
		_, err := fixture.service.Cancel(context.Background(), clientClaims("client-1"), "shift-1")
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftServiceSubmitTimeCorrection(t *testing.T) {
	caregiverID := "caregiver-1"
	pastFilled := func() *models.Shift {
		return &models.Shift{
			ID: "shift-1", ClientID: "client-1", CaregiverID: &caregiverID,
			Date: day("2024-06-10"), StartTime: "09:00", EndTime: "17:00",
			Status: models.ShiftFilled,
		}
	}
	caregiver := &models.JWTClaims{UserID: caregiverID, Role: models.RoleCaregiver}

	t.Run("success lands pending", func(t *testing.T) {
		fixture := newShiftFixture(t, pastFilled())
		note := "stayed late"
		shift, err := fixture.service.SubmitTimeCorrection(context.Background(), caregiver, "shift-1", dto.TimeCorrectionRequest{
			ActualStartTime: "09:15",
			ActualEndTime:   "18:00",
			Note:            &note,
		})
		require.NoError(t, err)
		require.NotNil(t, shift.TimeCorrection)
		assert.Equal(t, models.TimeCorrectionPending, *shift.TimeCorrection)
		assert.Equal(t, "09:15", *shift.ActualStartTime)
		assert.Equal(t, "18:00", *shift.ActualEndTime)
		assert.NotNil(t, shift.TimeCorrectionAt)
	})

	t.Run("not the assigned caregiver", func(t *testing.T) {
		fixture := newShiftFixture(t, pastFilled())
		other := &models.JWTClaims{UserID: "caregiver-2", Role: models.RoleCaregiver}
		_, err := fixture.service.SubmitTimeCorrection(context.Background(), other, "shift-1", dto.TimeCorrectionRequest{ActualStartTime: "09:00", ActualEndTime: "17:00"})
		assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	})

	t.Run("future shift", func(t *testing.T) {
		future := pastFilled()
		future.Date = day("2024-06-20")
		fixture := newShiftFixture(t, future)
		_, err := fixture.service.SubmitTimeCorrection(context.Background(), caregiver, "shift-1", dto.TimeCorrectionRequest{ActualStartTime: "09:00", ActualEndTime: "17:00"})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})

	t.Run("shift dated today", func(t *testing.T) {
		today := pastFilled()
		today.Date = day("2024-06-15")
		fixture := newShiftFixture(t, today)
		_, err := fixture.service.SubmitTimeCorrection(context.Background(), caregiver, "shift-1", dto.TimeCorrectionRequest{ActualStartTime: "09:00", ActualEndTime: "17:00"})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
		assert.Nil(t, fixture.shifts.items["shift-1"].TimeCorrection)
	})

	t.Run("malformed times", func(t *testing.T) {
		fixture := newShiftFixture(t, pastFilled())
		_, err := fixture.service.SubmitTimeCorrection(context.Background(), caregiver, "shift-1", dto.TimeCorrectionRequest{ActualStartTime: "9:00", ActualEndTime: "17:00"})
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	})
}

func TestShiftServiceSetVerification(t *testing.T) {
	caregiverID := "caregiver-1"
	pastFilled := func() *models.Shift {
		return &models.Shift{
			ID: "shift-1", ClientID: "client-1", CaregiverID: &caregiverID,
			Date: day("2024-06-10"), Status: models.ShiftCompleted,
		}
	}

	t.Run("verify sets timestamp", func(t *testing.T) {
		fixture := newShiftFixture(t, pastFilled())
		shift, err := fixture.service.SetVerification(context.Background(), clientClaims("client-1"), "shift-1", true)
		require.NoError(t, err)
		assert.True(t, shift.ClientVerified)
		assert.NotNil(t, shift.ClientVerifiedAt)
	})

	t.Run("unverify clears timestamp", func(t *testing.T) {
		verified := pastFilled()
		verified.ClientVerified = true
		at := day("2024-06-11")
		verified.ClientVerifiedAt = &at
		fixture := newShiftFixture(t, verified)
		shift, err := fixture.service.SetVerification(context.Background(), clientClaims("client-1"), "shift-1", false)
		require.NoError(t, err)
		assert.False(t, shift.ClientVerified)
		assert.Nil(t, shift.ClientVerifiedAt)
	})

	t.Run("no caregiver", func(t *testing.T) {
		fixture := newShiftFixture(t, unfilledShift("shift-1", "2024-06-10"))
		_, err := fixture.service.SetVerification(context.Background(), clientClaims("client-1"), "shift-1", true)
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
	})

	t.Run("future shift", func(t *testing.T) {
		future := pastFilled()
		future.Date = day("2024-06-20")
		fixture := newShiftFixture(t, future)
		_, err := fixture.service.SetVerification(context.Background(), clientClaims("client-1"), "shift-1", true)
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
	})

	t.Run("shift dated today", func(t *testing.T) {
		today := pastFilled()
		today.Date = day("2024-06-15")
		fixture := newShiftFixture(t, today)
		_, err := fixture.service.SetVerification(context.Background(), clientClaims("client-1"), "shift-1", true)
		assert.Equal(t, appErrors.ErrStateConflict.Code, appErrors.FromError(err).Code)
		assert.False(t, fixture.shifts.items["shift-1"].ClientVerified)
	})
}

// --- Fixtures ---

type shiftFixture struct {
	service *ShiftService
	shifts  *lifecycleShiftRepoStub
}

func newShiftFixture(t *testing.T, shifts ...*models.Shift) shiftFixture {
	t.Helper()
	repo := &lifecycleShiftRepoStub{items: make(map[string]*models.Shift)}
	for _, shift := range shifts {
		repo.items[shift.ID] = shift
	}
	users := userReaderStub{users: map[string]*models.User{
		"caregiver-1":        {ID: "caregiver-1", Role: models.RoleCaregiver, Active: true},
		"caregiver-inactive": {ID: "caregiver-inactive", Role: models.RoleCaregiver, Active: false},
		"client-1":           {ID: "client-1", Role: models.RoleClient, Active: true},
	}}
	svc := NewShiftService(repo, users, nil, zap.NewNop())
	svc.now = func() time.Time { return day("2024-06-15") }
	return shiftFixture{service: svc, shifts: repo}
}

func unfilledShift(id, date string) *models.Shift {
	return &models.Shift{
		ID: id, ClientID: "client-1", Date: day(date),
		StartTime: "09:00", EndTime: "17:00", Status: models.ShiftUnfilled,
	}
}

type lifecycleShiftRepoStub struct {
	items map[string]*models.Shift
}

func (s *lifecycleShiftRepoStub) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	shift, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *shift
	return &copied, nil
}

func (s *lifecycleShiftRepoStub) UpdateAssignment(ctx context.Context, id string, caregiverID *string, status models.ShiftStatus) error {
	shift, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	shift.CaregiverID = caregiverID
	shift.Status = status
	return nil
}

func (s *lifecycleShiftRepoStub) UpdateStatus(ctx context.Context, id string, status models.ShiftStatus) error {
	shift, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	shift.Status = status
	return nil
}

func (s *lifecycleShiftRepoStub) UpdateTimeCorrection(ctx context.Context, id, actualStart, actualEnd string, note *string, status models.TimeCorrectionStatus, at time.Time) error {
	shift, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	shift.ActualStartTime = &actualStart
	shift.ActualEndTime = &actualEnd
	shift.CaregiverNote = note
	shift.TimeCorrection = &status
	shift.TimeCorrectionAt = &at
	return nil
}

func (s *lifecycleShiftRepoStub) UpdateVerification(ctx context.Context, id string, verified bool, verifiedAt *time.Time) error {
	shift, ok := s.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	shift.ClientVerified = verified
	shift.ClientVerifiedAt = verifiedAt
	return nil
}

type userReaderStub struct {
	users map[string]*models.User
}

func (s userReaderStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *user
	return &copied, nil
}
