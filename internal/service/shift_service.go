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

type lifecycleShiftRepository interface {
	FindByID(ctx context.Context, id string) (*models.Shift, error)
	UpdateAssignment(ctx context.Context, id string, caregiverID *string, status models.ShiftStatus) error
	UpdateStatus(ctx context.Context, id string, status models.ShiftStatus) error
	UpdateTimeCorrection(ctx context.Context, id, actualStart, actualEnd string, note *string, status models.TimeCorrectionStatus, at time.Time) error
	UpdateVerification(ctx context.Context, id string, verified bool, verifiedAt *time.Time) error
}

type lifecycleUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ShiftService drives the shift lifecycle: assignment, completion,
// cancellation, caregiver time correction and client verification.
type ShiftService struct {
	shifts lifecycleShiftRepository
	users  lifecycleUserReader
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
}

// NewShiftService wires lifecycle dependencies.
func NewShiftService(shifts lifecycleShiftRepository, users lifecycleUserReader, cache *CacheService, logger *zap.Logger) *ShiftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{shifts: shifts, users: users, cache: cache, logger: logger, now: time.Now}
}

// GetByID loads a shift visible to the actor: the owning client, the assigned
// caregiver, or an admin.
func (s *ShiftService) GetByID(ctx context.Context, actor *models.JWTClaims, id string) (*models.Shift, error) {
	shift, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireClientOwner(actor, shift.ClientID); err != nil {
		if actor == nil || actor.Role != models.RoleCaregiver {
			return nil, err
		}
		if shift.CaregiverID == nil || *shift.CaregiverID != actor.UserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "not assigned to this shift")
		}
	}
	return shift, nil
}

// Assign fills an unfilled shift with a caregiver.
func (s *ShiftService) Assign(ctx context.Context, actor *models.JWTClaims, shiftID string, req dto.AssignShiftRequest) (*models.Shift, error) {
	shift, err := s.load(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := requireClientOwner(actor, shift.ClientID); err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftUnfilled {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "only unfilled shifts can be assigned")
	}

	caregiver, err := s.users.FindByID(ctx, req.CaregiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "caregiver not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caregiver")
	}
	if caregiver.Role != models.RoleCaregiver {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignee is not a caregiver")
	}
	if !caregiver.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "caregiver account is inactive")
	}

	if err := s.shifts.UpdateAssignment(ctx, shiftID, &caregiver.ID, models.ShiftFilled); err != nil {
		return nil, s.mapUpdateError(err)
	}
	s.invalidate(ctx, shift.ClientID)

	shift.CaregiverID = &caregiver.ID
	shift.Status = models.ShiftFilled
	return shift, nil
}

// Complete marks a filled, non-future shift as worked.
func (s *ShiftService) Complete(ctx context.Context, actor *models.JWTClaims, shiftID string) (*models.Shift, error) {
	shift, err := s.load(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := requireClientOwner(actor, shift.ClientID); err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftFilled {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "only filled shifts can be completed")
	}
	if dateOnly(shift.Date).After(dateOnly(s.now())) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot complete a future shift")
	}

	if err := s.shifts.UpdateStatus(ctx, shiftID, models.ShiftCompleted); err != nil {
		return nil, s.mapUpdateError(err)
	}
	s.invalidate(ctx, shift.ClientID)

	shift.Status = models.ShiftCompleted
	return shift, nil
}

// Cancel withdraws an unfilled or filled shift. Completed shifts stay on
// record.
func (s *ShiftService) Cancel(ctx context.Context, actor *models.JWTClaims, shiftID string) (*models.Shift, error) {
	shift, err := s.load(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := requireClientOwner(actor, shift.ClientID); err != nil {
		return nil, err
	}
	if shift.Status != models.ShiftUnfilled && shift.Status != models.ShiftFilled {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "only unfilled or filled shifts can be cancelled")
	}

	if err := s.shifts.UpdateStatus(ctx, shiftID, models.ShiftCancelled); err != nil {
		return nil, s.mapUpdateError(err)
	}
	s.invalidate(ctx, shift.ClientID)

	shift.Status = models.ShiftCancelled
	return shift, nil
}

// SubmitTimeCorrection records the times a caregiver actually worked on a
// past shift. The submission lands in PENDING state for client review.
func (s *ShiftService) SubmitTimeCorrection(ctx context.Context, actor *models.JWTClaims, shiftID string, req dto.TimeCorrectionRequest) (*models.Shift, error) {
	shift, err := s.load(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignedCaregiver(actor, shift); err != nil {
		return nil, err
	}
	if !dateOnly(shift.Date).Before(dateOnly(s.now())) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "can only correct shifts dated before today")
	}
	if shift.Status != models.ShiftFilled && shift.Status != models.ShiftCompleted {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift is not in a correctable state")
	}
	if _, err := parseClock(req.ActualStartTime); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "actual_start_time must match HH:mm")
	}
	if _, err := parseClock(req.ActualEndTime); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "actual_end_time must match HH:mm")
	}

	submittedAt := s.now().UTC()
	if err := s.shifts.UpdateTimeCorrection(ctx, shiftID, req.ActualStartTime, req.ActualEndTime, req.Note, models.TimeCorrectionPending, submittedAt); err != nil {
		return nil, s.mapUpdateError(err)
	}

	pending := models.TimeCorrectionPending
	shift.ActualStartTime = &req.ActualStartTime
	shift.ActualEndTime = &req.ActualEndTime
	shift.CaregiverNote = req.Note
	shift.TimeCorrection = &pending
	shift.TimeCorrectionAt = &submittedAt
	return shift, nil
}

// SetVerification toggles the client's confirmation that a past shift was
// worked as recorded. Verification is independent of the lifecycle status.
func (s *ShiftService) SetVerification(ctx context.Context, actor *models.JWTClaims, shiftID string, verified bool) (*models.Shift, error) {
	shift, err := s.load(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if err := requireClientOwner(actor, shift.ClientID); err != nil {
		return nil, err
	}
	if shift.CaregiverID == nil {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "shift has no caregiver to verify")
	}
	if shift.Status != models.ShiftFilled && shift.Status != models.ShiftCompleted {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "shift is not in a verifiable state")
	}
	if !dateOnly(shift.Date).Before(dateOnly(s.now())) {
		return nil, appErrors.Clone(appErrors.ErrStateConflict, "can only verify shifts dated before today")
	}

	var verifiedAt *time.Time
	if verified {
		at := s.now().UTC()
		verifiedAt = &at
	}
	if err := s.shifts.UpdateVerification(ctx, shiftID, verified, verifiedAt); err != nil {
		return nil, s.mapUpdateError(err)
	}

	shift.ClientVerified = verified
	shift.ClientVerifiedAt = verifiedAt
	return shift, nil
}

func (s *ShiftService) load(ctx context.Context, id string) (*models.Shift, error) {
	shift, err := s.shifts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift")
	}
	return shift, nil
}

func (s *ShiftService) mapUpdateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "shift not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift")
}

func (s *ShiftService) invalidate(ctx context.Context, clientID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, overviewCachePattern(clientID)); err != nil {
		s.logger.Warn("overview cache invalidation failed", zap.String("client_id", clientID), zap.Error(err))
	}
}
