package models

import "time"

// RecurrenceType enumerates the supported shift pattern cadences.
type RecurrenceType string

const (
	RecurrenceDaily        RecurrenceType = "DAILY"
	RecurrenceWeekly       RecurrenceType = "WEEKLY"
	RecurrenceBiweekly     RecurrenceType = "BIWEEKLY"
	RecurrenceFirstOfMonth RecurrenceType = "FIRST_OF_MONTH"
	RecurrenceLastOfMonth  RecurrenceType = "LAST_OF_MONTH"
)

// Valid reports whether the recurrence type is one of the supported kinds.
func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceFirstOfMonth, RecurrenceLastOfMonth:
		return true
	}
	return false
}

// ShiftType is a named time-of-day template scoped to one client.
// Times are wall-clock "HH:mm"; an end before the start means the shift
// crosses midnight.
type ShiftType struct {
	ID        string    `db:"id" json:"id"`
	ClientID  string    `db:"client_id" json:"client_id"`
	Name      string    `db:"name" json:"name"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	Color     string    `db:"color" json:"color"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ShiftPattern is a recurrence rule that expands into concrete shifts.
// The weekday anchor for WEEKLY/BIWEEKLY/FIRST_OF_MONTH/LAST_OF_MONTH is
// derived from StartDate; a single pattern supports exactly one weekday.
type ShiftPattern struct {
	ID             string         `db:"id" json:"id"`
	ClientID       string         `db:"client_id" json:"client_id"`
	ShiftTypeID    string         `db:"shift_type_id" json:"shift_type_id"`
	CaregiverID    *string        `db:"caregiver_id" json:"caregiver_id,omitempty"`
	RecurrenceType RecurrenceType `db:"recurrence_type" json:"recurrence_type"`
	StartDate      time.Time      `db:"start_date" json:"start_date"`
	EndDate        *time.Time     `db:"end_date" json:"end_date,omitempty"`
	IsActive       bool           `db:"is_active" json:"is_active"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// SchedulingSettings stores per-client schedule maintenance preferences.
type SchedulingSettings struct {
	ClientID   string    `db:"client_id" json:"client_id"`
	WeeksAhead int       `db:"weeks_ahead" json:"weeks_ahead"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
