package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/dto"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

const (
	minWeeksAhead = 1
	maxWeeksAhead = 52
)

type settingsRepository interface {
	Get(ctx context.Context, clientID string) (*models.SchedulingSettings, error)
	Upsert(ctx context.Context, settings *models.SchedulingSettings) error
}

// SchedulingSettingsService manages per-client schedule maintenance settings.
type SchedulingSettingsService struct {
	repo              settingsRepository
	defaultWeeksAhead int
}

// NewSchedulingSettingsService constructs a settings service.
func NewSchedulingSettingsService(repo settingsRepository, defaultWeeksAhead int) *SchedulingSettingsService {
	if defaultWeeksAhead < minWeeksAhead || defaultWeeksAhead > maxWeeksAhead {
		defaultWeeksAhead = 8
	}
	return &SchedulingSettingsService{repo: repo, defaultWeeksAhead: defaultWeeksAhead}
}

// Get returns the client's settings, falling back to defaults when none are
// stored yet.
func (s *SchedulingSettingsService) Get(ctx context.Context, actor *models.JWTClaims, clientID string) (*models.SchedulingSettings, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	settings, err := s.repo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.SchedulingSettings{ClientID: clientID, WeeksAhead: s.defaultWeeksAhead}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load scheduling settings")
	}
	return settings, nil
}

// Update stores new settings for the client.
func (s *SchedulingSettingsService) Update(ctx context.Context, actor *models.JWTClaims, clientID string, req dto.SchedulingSettingsRequest) (*models.SchedulingSettings, error) {
	if err := requireClientOwner(actor, clientID); err != nil {
		return nil, err
	}
	if req.WeeksAhead < minWeeksAhead || req.WeeksAhead > maxWeeksAhead {
		return nil, appErrors.Clone(appErrors.ErrValidation, "weeks_ahead must be between 1 and 52")
	}

	settings := &models.SchedulingSettings{ClientID: clientID, WeeksAhead: req.WeeksAhead}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store scheduling settings")
	}
	return settings, nil
}
