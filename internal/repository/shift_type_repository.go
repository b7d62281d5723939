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

// ShiftTypeRepository provides persistence for shift types.
type ShiftTypeRepository struct {
	db *sqlx.DB
}

// NewShiftTypeRepository creates a new shift type repository.
func NewShiftTypeRepository(db *sqlx.DB) *ShiftTypeRepository {
	return &ShiftTypeRepository{db: db}
}

// ListByClient returns all shift types owned by a client ordered by name.
func (r *ShiftTypeRepository) ListByClient(ctx context.Context, clientID string) ([]models.ShiftType, error) {
	const query = `SELECT id, client_id, name, start_time, end_time, color, created_at, updated_at FROM shift_types WHERE client_id = $1 ORDER BY name ASC`
	var types []models.ShiftType
	if err := r.db.SelectContext(ctx, &types, query, clientID); err != nil {
		return nil, fmt.Errorf("list shift types: %w", err)
	}
	return types, nil
}

// FindByID loads a shift type by id.
func (r *ShiftTypeRepository) FindByID(ctx context.Context, id string) (*models.ShiftType, error) {
	const query = `SELECT id, client_id, name, start_time, end_time, color, created_at, updated_at FROM shift_types WHERE id = $1`
	var shiftType models.ShiftType
	if err := r.db.GetContext(ctx, &shiftType, query, id); err != nil {
		return nil, err
	}
	return &shiftType, nil
}

// Create stores a new shift type.
func (r *ShiftTypeRepository) Create(ctx context.Context, shiftType *models.ShiftType) error {
	if shiftType.ID == "" {
		shiftType.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	shiftType.CreatedAt = now
	shiftType.UpdatedAt = now

	const query = `INSERT INTO shift_types (id, client_id, name, start_time, end_time, color, created_at, updated_at) VALUES (:id, :client_id, :name, :start_time, :end_time, :color, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, shiftType); err != nil {
		return fmt.Errorf("create shift type: %w", err)
	}
	return nil
}

// Update modifies an existing shift type.
func (r *ShiftTypeRepository) Update(ctx context.Context, shiftType *models.ShiftType) error {
	shiftType.UpdatedAt = time.Now().UTC()
	const query = `UPDATE shift_types SET name = :name, start_time = :start_time, end_time = :end_time, color = :color, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, shiftType)
	if err != nil {
		return fmt.Errorf("update shift type: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a shift type by id.
func (r *ShiftTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shift_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift type: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountReferences returns how many shifts and patterns still reference the type.
func (r *ShiftTypeRepository) CountReferences(ctx context.Context, id string) (int, error) {
	const query = `SELECT (SELECT COUNT(*) FROM shifts WHERE shift_type_id = $1) + (SELECT COUNT(*) FROM shift_patterns WHERE shift_type_id = $1)`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count shift type references: %w", err)
	}
	return count, nil
}
