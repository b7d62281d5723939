package models

import "time"

// TimeOffStatus is the review state of a time-off request.
type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "PENDING"
	TimeOffApproved TimeOffStatus = "APPROVED"
	TimeOffRejected TimeOffStatus = "REJECTED"
)

// TimeOffRequestType categorises time-off requests.
type TimeOffRequestType string

const (
	TimeOffSickLeave TimeOffRequestType = "SICK_LEAVE"
	TimeOffVacation  TimeOffRequestType = "VACATION"
)

// TimeOffRequest is owned by the absence management module; scheduling reads
// it to derive sickness statistics.
type TimeOffRequest struct {
	ID          string             `db:"id" json:"id"`
	CaregiverID string             `db:"caregiver_id" json:"caregiver_id"`
	ClientID    string             `db:"client_id" json:"client_id"`
	StartDate   time.Time          `db:"start_date" json:"start_date"`
	EndDate     time.Time          `db:"end_date" json:"end_date"`
	Status      TimeOffStatus      `db:"status" json:"status"`
	RequestType TimeOffRequestType `db:"request_type" json:"request_type"`
	CreatedAt   time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at" json:"updated_at"`
}
