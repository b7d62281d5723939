package models

import "time"

// ShiftStatus tracks the coarse lifecycle of a shift instance.
type ShiftStatus string

const (
	ShiftUnfilled  ShiftStatus = "UNFILLED"
	ShiftFilled    ShiftStatus = "FILLED"
	ShiftCompleted ShiftStatus = "COMPLETED"
	ShiftCancelled ShiftStatus = "CANCELLED"
)

// TimeCorrectionStatus tracks the review state of a caregiver time correction.
type TimeCorrectionStatus string

const (
	TimeCorrectionPending  TimeCorrectionStatus = "PENDING"
	TimeCorrectionApproved TimeCorrectionStatus = "APPROVED"
	TimeCorrectionRejected TimeCorrectionStatus = "REJECTED"
)

// Shift is one dated, timed occurrence of care coverage. StartTime/EndTime are
// copied from the shift type at creation, so later type edits never change
// already-generated shifts. Time correction and client verification are
// orthogonal to Status.
type Shift struct {
	ID                string                `db:"id" json:"id"`
	ClientID          string                `db:"client_id" json:"client_id"`
	ShiftTypeID       string                `db:"shift_type_id" json:"shift_type_id"`
	CaregiverID       *string               `db:"caregiver_id" json:"caregiver_id,omitempty"`
	PatternID         *string               `db:"pattern_id" json:"pattern_id,omitempty"`
	IsPatternOverride bool                  `db:"is_pattern_override" json:"is_pattern_override"`
	Date              time.Time             `db:"date" json:"date"`
	StartTime         string                `db:"start_time" json:"start_time"`
	EndTime           string                `db:"end_time" json:"end_time"`
	Status            ShiftStatus           `db:"status" json:"status"`
	ActualStartTime   *string               `db:"actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime     *string               `db:"actual_end_time" json:"actual_end_time,omitempty"`
	CaregiverNote     *string               `db:"caregiver_note" json:"caregiver_note,omitempty"`
	TimeCorrection    *TimeCorrectionStatus `db:"time_correction_status" json:"time_correction_status,omitempty"`
	TimeCorrectionAt  *time.Time            `db:"time_correction_at" json:"time_correction_at,omitempty"`
	ClientVerified    bool                  `db:"client_verified" json:"client_verified"`
	ClientVerifiedAt  *time.Time            `db:"client_verified_at" json:"client_verified_at,omitempty"`
	CreatedAt         time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time             `db:"updated_at" json:"updated_at"`
}

// ShiftWithNames is a shift joined with display names for overview and export.
type ShiftWithNames struct {
	Shift
	ShiftTypeName string  `db:"shift_type_name" json:"shift_type_name"`
	CaregiverName *string `db:"caregiver_name" json:"caregiver_name,omitempty"`
}

// ShiftConflict describes an existing shift that overlaps a candidate
// assignment, with enough detail for a human decision-maker.
type ShiftConflict struct {
	ShiftID       string      `db:"shift_id" json:"shift_id"`
	ClientID      string      `db:"client_id" json:"client_id"`
	ClientName    string      `db:"client_name" json:"client_name"`
	ShiftTypeName string      `db:"shift_type_name" json:"shift_type_name"`
	Date          time.Time   `db:"date" json:"date"`
	StartTime     string      `db:"start_time" json:"start_time"`
	EndTime       string      `db:"end_time" json:"end_time"`
	Status        ShiftStatus `db:"status" json:"status"`
}

// ShiftFilter describes query params for listing shifts.
type ShiftFilter struct {
	ClientID    string
	CaregiverID string
	Status      string
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}
