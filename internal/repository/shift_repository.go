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

// ShiftRepository provides persistence for shift instances.
type ShiftRepository struct {
	db *sqlx.DB
}

// NewShiftRepository creates a new shift repository.
func NewShiftRepository(db *sqlx.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftColumns = `id, client_id, shift_type_id, caregiver_id, pattern_id, is_pattern_override, date, start_time, end_time, status, actual_start_time, actual_end_time, caregiver_note, time_correction_status, time_correction_at, client_verified, client_verified_at, created_at, updated_at`

// InsertIfAbsent stores a shift unless one already exists for the same
// (client_id, shift_type_id, date). The uniqueness constraint makes the
// duplicate check atomic; a conflicting insert reports inserted = false.
func (r *ShiftRepository) InsertIfAbsent(ctx context.Context, shift *models.Shift) (bool, error) {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	shift.CreatedAt = now
	shift.UpdatedAt = now

	const query = `INSERT INTO shifts (id, client_id, shift_type_id, caregiver_id, pattern_id, is_pattern_override, date, start_time, end_time, status, client_verified, created_at, updated_at) VALUES (:id, :client_id, :shift_type_id, :caregiver_id, :pattern_id, :is_pattern_override, :date, :start_time, :end_time, :status, :client_verified, :created_at, :updated_at) ON CONFLICT (client_id, shift_type_id, date) DO NOTHING`
	result, err := r.db.NamedExecContext(ctx, query, shift)
	if err != nil {
		return false, fmt.Errorf("insert shift: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert shift rows affected: %w", err)
	}
	return affected > 0, nil
}

// FindByID loads a shift by id.
func (r *ShiftRepository) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	query := fmt.Sprintf(`SELECT %s FROM shifts WHERE id = $1`, shiftColumns)
	var shift models.Shift
	if err := r.db.GetContext(ctx, &shift, query, id); err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListConflictCandidates returns non-cancelled shifts for a caregiver on a
// date, joined with client and shift type names, optionally excluding one
// shift id.
func (r *ShiftRepository) ListConflictCandidates(ctx context.Context, caregiverID string, date time.Time, excludeShiftID string) ([]models.ShiftConflict, error) {
	const query = `SELECT s.id AS shift_id, s.client_id, u.full_name AS client_name, st.name AS shift_type_name, s.date, s.start_time, s.end_time, s.status
		FROM shifts s
		JOIN users u ON u.id = s.client_id
		JOIN shift_types st ON st.id = s.shift_type_id
		WHERE s.caregiver_id = $1 AND s.date = $2 AND s.status <> $3 AND ($4 = '' OR s.id <> $4)
		ORDER BY s.start_time ASC`
	var conflicts []models.ShiftConflict
	if err := r.db.SelectContext(ctx, &conflicts, query, caregiverID, date, models.ShiftCancelled, excludeShiftID); err != nil {
		return nil, fmt.Errorf("list conflict candidates: %w", err)
	}
	return conflicts, nil
}

// ListForOverview returns shifts for a client within [from, to] joined with
// shift type and caregiver names, ordered oldest first.
func (r *ShiftRepository) ListForOverview(ctx context.Context, clientID string, from, to time.Time) ([]models.ShiftWithNames, error) {
	const query = `SELECT s.id, s.client_id, s.shift_type_id, s.caregiver_id, s.pattern_id, s.is_pattern_override, s.date, s.start_time, s.end_time, s.status, s.actual_start_time, s.actual_end_time, s.caregiver_note, s.time_correction_status, s.time_correction_at, s.client_verified, s.client_verified_at, s.created_at, s.updated_at, st.name AS shift_type_name, u.full_name AS caregiver_name
		FROM shifts s
		JOIN shift_types st ON st.id = s.shift_type_id
		LEFT JOIN users u ON u.id = s.caregiver_id
		WHERE s.client_id = $1 AND s.date >= $2 AND s.date <= $3
		ORDER BY s.date ASC, s.start_time ASC`
	var shifts []models.ShiftWithNames
	if err := r.db.SelectContext(ctx, &shifts, query, clientID, from, to); err != nil {
		return nil, fmt.Errorf("list shifts for overview: %w", err)
	}
	return shifts, nil
}

// UpdateAssignment sets or clears the caregiver and adjusts the coarse status.
func (r *ShiftRepository) UpdateAssignment(ctx context.Context, id string, caregiverID *string, status models.ShiftStatus) error {
	const query = `UPDATE shifts SET caregiver_id = $1, status = $2, updated_at = $3 WHERE id = $4`
	return r.execOne(ctx, query, caregiverID, status, time.Now().UTC(), id)
}

// UpdateStatus transitions the coarse lifecycle status.
func (r *ShiftRepository) UpdateStatus(ctx context.Context, id string, status models.ShiftStatus) error {
	const query = `UPDATE shifts SET status = $1, updated_at = $2 WHERE id = $3`
	return r.execOne(ctx, query, status, time.Now().UTC(), id)
}

// UpdateTimeCorrection records a caregiver time correction submission.
func (r *ShiftRepository) UpdateTimeCorrection(ctx context.Context, id, actualStart, actualEnd string, note *string, status models.TimeCorrectionStatus, at time.Time) error {
	const query = `UPDATE shifts SET actual_start_time = $1, actual_end_time = $2, caregiver_note = $3, time_correction_status = $4, time_correction_at = $5, updated_at = $6 WHERE id = $7`
	return r.execOne(ctx, query, actualStart, actualEnd, note, status, at, time.Now().UTC(), id)
}

// UpdateVerification toggles client verification; verifiedAt is nil when
// toggling off.
func (r *ShiftRepository) UpdateVerification(ctx context.Context, id string, verified bool, verifiedAt *time.Time) error {
	const query = `UPDATE shifts SET client_verified = $1, client_verified_at = $2, updated_at = $3 WHERE id = $4`
	return r.execOne(ctx, query, verified, verifiedAt, time.Now().UTC(), id)
}

func (r *ShiftRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
