package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

// ShiftPatternRepository provides persistence for shift patterns.
type ShiftPatternRepository struct {
	db *sqlx.DB
}

// NewShiftPatternRepository creates a new shift pattern repository.
func NewShiftPatternRepository(db *sqlx.DB) *ShiftPatternRepository {
	return &ShiftPatternRepository{db: db}
}

const patternColumns = `id, client_id, shift_type_id, caregiver_id, recurrence_type, start_date, end_date, is_active, created_at, updated_at`

// ListByClient returns all patterns owned by a client, newest first.
func (r *ShiftPatternRepository) ListByClient(ctx context.Context, clientID string) ([]models.ShiftPattern, error) {
	query := fmt.Sprintf(`SELECT %s FROM shift_patterns WHERE client_id = $1 ORDER BY created_at DESC`, patternColumns)
	var patterns []models.ShiftPattern
	if err := r.db.SelectContext(ctx, &patterns, query, clientID); err != nil {
		return nil, fmt.Errorf("list shift patterns: %w", err)
	}
	return patterns, nil
}

// ListActiveInWindow returns active patterns whose effective range intersects
// [from, to], optionally narrowed to a single pattern id. Patterns come back
// in creation order so generation output is deterministic.
func (r *ShiftPatternRepository) ListActiveInWindow(ctx context.Context, clientID, patternID string, from, to time.Time) ([]models.ShiftPattern, error) {
	query := fmt.Sprintf(`SELECT %s FROM shift_patterns WHERE client_id = $1 AND is_active = TRUE AND start_date <= $2 AND (end_date IS NULL OR end_date >= $3) AND ($4 = '' OR id = $4) ORDER BY created_at ASC`, patternColumns)
	var patterns []models.ShiftPattern
	if err := r.db.SelectContext(ctx, &patterns, query, clientID, to, from, patternID); err != nil {
		return nil, fmt.Errorf("list active shift patterns: %w", err)
	}
	return patterns, nil
}

// ListClientIDsWithActivePatterns returns the distinct clients that have at
// least one active pattern, for the maintenance sweep.
func (r *ShiftPatternRepository) ListClientIDsWithActivePatterns(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT client_id FROM shift_patterns WHERE is_active = TRUE ORDER BY client_id ASC`
	var clientIDs []string
	if err := r.db.SelectContext(ctx, &clientIDs, query); err != nil {
		return nil, fmt.Errorf("list clients with active patterns: %w", err)
	}
	return clientIDs, nil
}

// FindByID loads a pattern by id.
func (r *ShiftPatternRepository) FindByID(ctx context.Context, id string) (*models.ShiftPattern, error) {
	query := fmt.Sprintf(`SELECT %s FROM shift_patterns WHERE id = $1`, patternColumns)
	var pattern models.ShiftPattern
	if err := r.db.GetContext(ctx, &pattern, query, id); err != nil {
		return nil, err
	}
	return &pattern, nil
}

// Create stores a new pattern.
func (r *ShiftPatternRepository) Create(ctx context.Context, pattern *models.ShiftPattern) error {
	if pattern.ID == "" {
		pattern.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	pattern.CreatedAt = now
	pattern.UpdatedAt = now

	const query = `INSERT INTO shift_patterns (id, client_id, shift_type_id, caregiver_id, recurrence_type, start_date, end_date, is_active, created_at, updated_at) VALUES (:id, :client_id, :shift_type_id, :caregiver_id, :recurrence_type, :start_date, :end_date, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, pattern); err != nil {
		return fmt.Errorf("create shift pattern: %w", err)
	}
	return nil
}

// Update modifies an existing pattern.
func (r *ShiftPatternRepository) Update(ctx context.Context, pattern *models.ShiftPattern) error {
	pattern.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shift_patterns SET shift_type_id = :shift_type_id, caregiver_id = :caregiver_id, recurrence_type = :recurrence_type, start_date = :start_date, end_date = :end_date, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, pattern)
	if err != nil {
		return fmt.Errorf("update shift pattern: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a pattern by id. Shifts generated from it keep their
// pattern_id reference for audit via ON DELETE SET NULL at the schema level.
func (r *ShiftPatternRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shift_patterns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift pattern: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
