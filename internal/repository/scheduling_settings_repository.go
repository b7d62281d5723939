package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

// SchedulingSettingsRepository provides persistence for per-client settings.
type SchedulingSettingsRepository struct {
	db *sqlx.DB
}

// NewSchedulingSettingsRepository creates a new settings repository.
func NewSchedulingSettingsRepository(db *sqlx.DB) *SchedulingSettingsRepository {
	return &SchedulingSettingsRepository{db: db}
}

// Get loads settings for a client; callers fall back to defaults on
// sql.ErrNoRows.
func (r *SchedulingSettingsRepository) Get(ctx context.Context, clientID string) (*models.SchedulingSettings, error) {
	const query = `SELECT client_id, weeks_ahead, created_at, updated_at FROM scheduling_settings WHERE client_id = $1`
	var settings models.SchedulingSettings
	if err := r.db.GetContext(ctx, &settings, query, clientID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert stores settings, replacing any existing row for the client.
func (r *SchedulingSettingsRepository) Upsert(ctx context.Context, settings *models.SchedulingSettings) error {
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	const query = `INSERT INTO scheduling_settings (client_id, weeks_ahead, created_at, updated_at) VALUES (:client_id, :weeks_ahead, :created_at, :updated_at) ON CONFLICT (client_id) DO UPDATE SET weeks_ahead = EXCLUDED.weeks_ahead, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("upsert scheduling settings: %w", err)
	}
	return nil
}
