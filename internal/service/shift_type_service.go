package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type shiftTypeRepository interface {
	ListByClient(ctx context.Context, clientID string) ([]models.ShiftType, error)
	FindByID(ctx context.Context, id string) (*models.ShiftType, error)
	Create(ctx context.Context, shiftType *models.ShiftType) error
	Update(ctx context.Context, shiftType *models.ShiftType) error
	Delete(ctx context.Context, id string) error
	CountReferences(ctx context.Context, id string) (int, error)
}

// ShiftTypeService manages the per-client catalogue of shift time templates.
type ShiftTypeService struct {
	repo      shiftTypeRepository
	validator *validator.Validate
}

// NewShiftTypeService constructs a shift type service.
func NewShiftTypeService(repo shiftTypeRepository, validate *validator.Validate) *ShiftTypeService {
	if validate == nil {
		validate = validator.New()
	}
	return &ShiftTypeService{repo: repo, validator: validate}
}

// List returns the client's shift types ordered by name.
func (s *ShiftTypeService) List(ctx context.Context, actor *models.JWTClaims, clientID string) ([]models.ShiftType, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	types, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list shift types")
	}
	return types, nil
}

// Create stores a new shift type for the client.
func (s *ShiftTypeService) Create(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.ShiftTypeRequest) (*models.ShiftType, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	shiftType := &models.ShiftType{
		ClientID:  clientID,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Color:     req.Color,
	}
	if err := s.repo.Create(ctx, shiftType); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create shift type")
	}
	return shiftType, nil
}

// Update modifies an existing shift type. Already-generated shifts keep the
// times they were created with.
func (s *ShiftTypeService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.ShiftTypeRequest) (*models.ShiftType, error) {
	shiftType, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(req); err != nil {
		return nil, err
	}

	shiftType.Name = req.Name
	shiftType.StartTime = req.StartTime
	shiftType.EndTime = req.EndTime
	shiftType.Color = req.Color
	if err := s.repo.Update(ctx, shiftType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update shift type")
	}
	return shiftType, nil
}

// Delete removes a shift type that no shift or pattern references.
func (s *ShiftTypeService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}

	references, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count shift type references")
	}
	if references > 0 {
		return appErrors.Clone(appErrors.ErrStateConflict, "shift type is still referenced by shifts or patterns")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "shift type not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete shift type")
	}
	return nil
}

func (s *ShiftTypeService) loadOwned(ctx context.Context, actor *models.JWTClaims, id string) (*models.ShiftType, error) {
	shiftType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "shift type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load shift type")
	}
	if err := requireClientOwner(actor, shiftType.ClientID); err != nil {
		return nil, err
	}
	return shiftType, nil
}

func (s *ShiftTypeService) validate(req dto.ShiftTypeRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid shift type payload")
	}
	if _, err := parseClock(req.StartTime); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "start_time must match HH:mm")
	}
	if _, err := parseClock(req.EndTime); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must match HH:mm")
	}
	if !colorPattern.MatchString(req.Color) {
		return appErrors.Clone(appErrors.ErrValidation, "color must be a hex value like #RRGGBB")
	}
	return nil
}
