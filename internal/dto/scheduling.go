package dto

import "github.com/DanDopi/Zorg-Dossier-sub002/internal/models"

// GenerateShiftsRequest narrows generation to one pattern when PatternID is set.
type GenerateShiftsRequest struct {
	PatternID string `json:"pattern_id,omitempty"`
}

// GenerateShiftsResponse summarises a generation run. Patterns that failed to
// expand are skipped, so the counts can reflect a partial success.
type GenerateShiftsResponse struct {
	Generated          int `json:"generated"`
	Skipped            int `json:"skipped"`
	PatternsConsidered int `json:"patterns_considered"`
}

// ConflictCheckRequest describes a candidate caregiver assignment.
type ConflictCheckRequest struct {
	CaregiverID    string `json:"caregiver_id" validate:"required"`
	Date           string `json:"date" validate:"required"`
	StartTime      string `json:"start_time" validate:"required"`
	EndTime        string `json:"end_time" validate:"required"`
	ExcludeShiftID string `json:"exclude_shift_id,omitempty"`
}

// ConflictCheckResponse lists overlapping shifts for the candidate range.
type ConflictCheckResponse struct {
	HasConflict bool                   `json:"has_conflict"`
	Conflicts   []models.ShiftConflict `json:"conflicts"`
}

// ShiftTypeRequest creates or updates a shift type.
type ShiftTypeRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Color     string `json:"color" validate:"required"`
}

// ShiftPatternRequest creates or updates a shift pattern. Dates use 2006-01-02.
type ShiftPatternRequest struct {
	ShiftTypeID    string  `json:"shift_type_id" validate:"required"`
	CaregiverID    *string `json:"caregiver_id,omitempty"`
	RecurrenceType string  `json:"recurrence_type" validate:"required"`
	StartDate      string  `json:"start_date" validate:"required"`
	EndDate        *string `json:"end_date,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// AssignShiftRequest assigns a caregiver to an unfilled shift.
type AssignShiftRequest struct {
	CaregiverID string `json:"caregiver_id" validate:"required"`
}

// TimeCorrectionRequest submits actually-worked times for a past shift.
type TimeCorrectionRequest struct {
	ActualStartTime string  `json:"actual_start_time" validate:"required"`
	ActualEndTime   string  `json:"actual_end_time" validate:"required"`
	Note            *string `json:"note,omitempty"`
}

// VerifyShiftRequest toggles client verification on a past shift.
type VerifyShiftRequest struct {
	Verified *bool `json:"verified" validate:"required"`
}

// ExportLinkResponse is a shareable, signed download link for an archived
// roster export.
type ExportLinkResponse struct {
	Token     string `json:"token"`
	Filename  string `json:"filename"`
	ExpiresAt string `json:"expires_at"`
}

// SchedulingSettingsRequest updates per-client schedule maintenance settings.
type SchedulingSettingsRequest struct {
	WeeksAhead int `json:"weeks_ahead" validate:"required"`
}
