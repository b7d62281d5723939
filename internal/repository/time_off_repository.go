package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

// TimeOffRepository reads time-off requests owned by the absence module.
type TimeOffRepository struct {
	db *sqlx.DB
}

// NewTimeOffRepository creates a new time-off repository.
func NewTimeOffRepository(db *sqlx.DB) *TimeOffRepository {
	return &TimeOffRepository{db: db}
}

// ListApprovedSickLeave returns approved sick-leave requests for a client
// whose range intersects [from, to].
func (r *TimeOffRepository) ListApprovedSickLeave(ctx context.Context, clientID string, from, to time.Time) ([]models.TimeOffRequest, error) {
	const query = `SELECT id, caregiver_id, client_id, start_date, end_date, status, request_type, created_at, updated_at
		FROM time_off_requests
		WHERE client_id = $1 AND status = $2 AND request_type = $3 AND start_date <= $4 AND end_date >= $5
		ORDER BY start_date ASC`
	var requests []models.TimeOffRequest
	if err := r.db.SelectContext(ctx, &requests, query, clientID, models.TimeOffApproved, models.TimeOffSickLeave, to, from); err != nil {
		return nil, fmt.Errorf("list approved sick leave: %w", err)
	}
	return requests, nil
}
