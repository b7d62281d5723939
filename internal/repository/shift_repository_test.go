package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

func newShiftRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestShiftRepositoryInsertIfAbsent(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	shift := &models.Shift{
		ClientID:    "client-1",
		ShiftTypeID: "type-1",
		Date:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "17:00",
		Status:      models.ShiftUnfilled,
	}

	mock.ExpectExec("INSERT INTO shifts").WillReturnResult(sqlmock.NewResult(0, 1))
	inserted, err := repo.InsertIfAbsent(context.Background(), shift)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, shift.ID)

	// A conflicting (client_id, shift_type_id, date) insert affects no rows.
	mock.ExpectExec("INSERT INTO shifts").WillReturnResult(sqlmock.NewResult(0, 0))
	inserted, err = repo.InsertIfAbsent(context.Background(), shift)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "client_id", "shift_type_id", "caregiver_id", "pattern_id", "is_pattern_override", "date", "start_time", "end_time", "status", "actual_start_time", "actual_end_time", "caregiver_note", "time_correction_status", "time_correction_at", "client_verified", "client_verified_at", "created_at", "updated_at"}).
		AddRow("shift-1", "client-1", "type-1", nil, "pattern-1", false, now, "09:00", "17:00", "UNFILLED", nil, nil, nil, nil, nil, false, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM shifts WHERE id = $1")).
		WithArgs("shift-1").
		WillReturnRows(rows)

	shift, err := repo.FindByID(context.Background(), "shift-1")
	require.NoError(t, err)
	assert.Equal(t, "shift-1", shift.ID)
	assert.Equal(t, models.ShiftUnfilled, shift.Status)
	assert.Nil(t, shift.CaregiverID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM shifts WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryListConflictCandidates(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	date := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"shift_id", "client_id", "client_name", "shift_type_name", "date", "start_time", "end_time", "status"}).
		AddRow("shift-1", "client-2", "Jan de Vries", "Night", date, "22:00", "06:00", "FILLED")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.caregiver_id = $1 AND s.date = $2 AND s.status <> $3 AND ($4 = '' OR s.id <> $4)")).
		WithArgs("caregiver-1", date, models.ShiftCancelled, "exclude-1").
		WillReturnRows(rows)

	conflicts, err := repo.ListConflictCandidates(context.Background(), "caregiver-1", date, "exclude-1")
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "shift-1", conflicts[0].ShiftID)
	assert.Equal(t, "Jan de Vries", conflicts[0].ClientName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryListForOverview(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	from := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "client_id", "shift_type_id", "caregiver_id", "pattern_id", "is_pattern_override", "date", "start_time", "end_time", "status", "actual_start_time", "actual_end_time", "caregiver_note", "time_correction_status", "time_correction_at", "client_verified", "client_verified_at", "created_at", "updated_at", "shift_type_name", "caregiver_name"}).
		AddRow("shift-1", "client-1", "type-1", "caregiver-1", nil, false, from, "09:00", "17:00", "FILLED", nil, nil, nil, nil, nil, false, nil, now, now, "Day", "Anna")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.client_id = $1 AND s.date >= $2 AND s.date <= $3")).
		WithArgs("client-1", from, to).
		WillReturnRows(rows)

	shifts, err := repo.ListForOverview(context.Background(), "client-1", from, to)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Day", shifts[0].ShiftTypeName)
	require.NotNil(t, shifts[0].CaregiverName)
	assert.Equal(t, "Anna", *shifts[0].CaregiverName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shifts SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.ShiftCompleted, sqlmock.AnyArg(), "shift-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "shift-1", models.ShiftCompleted))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shifts SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(models.ShiftCompleted, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatus(context.Background(), "missing", models.ShiftCompleted)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryUpdateVerification(t *testing.T) {
	db, mock, cleanup := newShiftRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	at := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shifts SET client_verified = $1, client_verified_at = $2, updated_at = $3 WHERE id = $4")).
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg(), "shift-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateVerification(context.Background(), "shift-1", true, &at))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE shifts SET client_verified = $1, client_verified_at = $2, updated_at = $3 WHERE id = $4")).
		WithArgs(false, nil, sqlmock.AnyArg(), "shift-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateVerification(context.Background(), "shift-1", false, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
