package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

type patternRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]models.ShiftPattern, error)
	FindByID(ctx context.Context, id string) (*models.ShiftPattern, error)
	Create(ctx context.Context, pattern *models.ShiftPattern) error
	Update(ctx context.Context, pattern *models.ShiftPattern) error
	Delete(ctx context.Context, id string) error
}

type patternShiftTypeReader interface {
	FindByID(ctx context.Context, id string) (*models.ShiftType, error)
}

type patternUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ShiftPatternService manages recurrence rules. Patterns only describe future
// generation; editing one never touches shifts that already exist.
type ShiftPatternService struct {
	patterns   patternRepository
	shiftTypes patternShiftTypeReader
	users      patternUserReader
	validator  *validator.Validate
}

// NewShiftPatternService constructs a shift pattern service.
func NewShiftPatternService(patterns patternRepository, shiftTypes patternShiftTypeReader, users patternUserReader, validate *validator.Validate) *ShiftPatternService {
	if validate == nil {
		validate = validator.New()
	}
	return &ShiftPatternService{patterns: patterns, shiftTypes: shiftTypes, users: users, validator: validate}
}

// List returns the client's patterns, newest first.
func (s *ShiftPatternService) List(ctx context.Context, actor *models.JWTClaims, clientID string) ([]models.ShiftPattern, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	patterns, err := s.patterns.ListByClient(ctx, clientID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shift patterns")
	}
	return patterns, nil
}

// Create stores a new pattern after validating its recurrence and references.
func (s *ShiftPatternService) Create(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.ShiftPatternRequest) (*models.ShiftPattern, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	pattern, err := s.buildPattern(ctx, clientID, req)
	if err != nil {
		return nil, err
	}
	if err := s.patterns.Create(ctx, pattern); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift pattern")
	}
	return pattern, nil
}

// Update replaces a pattern's rule. Future generation runs follow the new
// rule; existing shifts are untouched.
func (s *ShiftPatternService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.ShiftPatternRequest) (*models.ShiftPattern, error) {
	existing, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	pattern, err := s.buildPattern(ctx, existing.ClientID, req)
	if err != nil {
		return nil, err
	}
	pattern.ID = existing.ID
	pattern.CreatedAt = existing.CreatedAt

	if err := s.patterns.Update(ctx, pattern); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift pattern not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift pattern")
	}
	return pattern, nil
}

// Delete removes a pattern. Generated shifts keep living their own lifecycle.
func (s *ShiftPatternService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.patterns.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "shift pattern not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift pattern")
	}
	return nil
}

func (s *ShiftPatternService) loadOwned(ctx context.Context, actor *models.JWTClaims, id string) (*models.ShiftPattern, error) {
	pattern, err := s.patterns.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift pattern not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift pattern")
	}
	if err := requireClientOwner(actor, pattern.ClientID); err != nil {
		return nil, err
	}
	return pattern, nil
}

func (s *ShiftPatternService) buildPattern(ctx context.Context, clientID string, req dto.ShiftPatternRequest) (*models.ShiftPattern, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift pattern payload")
	}

	recurrence := models.RecurrenceType(req.RecurrenceType)
	if !recurrence.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown recurrence type")
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must match 2006-01-02")
	}
	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must match 2006-01-02")
		}
		if parsed.Before(startDate) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "end_date cannot precede start_date")
		}
		endDate = &parsed
	}

	shiftType, err := s.shiftTypes.FindByID(ctx, req.ShiftTypeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "shift type does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift type")
	}
	if shiftType.ClientID != clientID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "shift type belongs to another client")
	}

	if req.CaregiverID != nil {
		caregiver, err := s.users.FindByID(ctx, *req.CaregiverID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "caregiver does not exist")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load caregiver")
		}
		if caregiver.Role != models.RoleCaregiver {
			return nil, appErrors.Clone(appErrors.ErrValidation, "assignee is not a caregiver")
		}
		if !caregiver.Active {
			return nil, appErrors.Clone(appErrors.ErrValidation, "caregiver account is inactive")
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return &models.ShiftPattern{
		ClientID:       clientID,
		ShiftTypeID:    req.ShiftTypeID,
		CaregiverID:    req.CaregiverID,
		RecurrenceType: recurrence,
		StartDate:      dateOnly(startDate),
		EndDate:        endDate,
		IsActive:       isActive,
	}, nil
}
