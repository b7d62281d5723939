package dto

// OverallStats aggregates fill and completion rates over the planning window.
// Rates are percentages rounded to one decimal; both are 0 when no shifts
// exist in the window.
type OverallStats struct {
	TotalShifts     int     `json:"total_shifts"`
	FilledShifts    int     `json:"filled_shifts"`
	UnfilledShifts  int     `json:"unfilled_shifts"`
	PastShifts      int     `json:"past_shifts"`
	CompletedShifts int     `json:"completed_shifts"`
	FillRate        float64 `json:"fill_rate"`
	CompletionRate  float64 `json:"completion_rate"`
}

// UnfilledShiftEntry is one shift still lacking a caregiver.
type UnfilledShiftEntry struct {
	ShiftID       string `json:"shift_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ShiftTypeName string `json:"shift_type_name"`
}

// UnfilledDateEntry groups unfilled shifts per date with fill context.
type UnfilledDateEntry struct {
	Date          string `json:"date"`
	UnfilledCount int    `json:"unfilled_count"`
	TotalCount    int    `json:"total_count"`
}

// CaregiverStats summarises one caregiver's workload within the window.
type CaregiverStats struct {
	CaregiverID         string  `json:"caregiver_id"`
	CaregiverName       string  `json:"caregiver_name"`
	TotalShifts         int     `json:"total_shifts"`
	TotalHours          float64 `json:"total_hours"`
	AverageHoursPerWeek float64 `json:"average_hours_per_week"`
	SickDays            int     `json:"sick_days"`
	SicknessPercentage  float64 `json:"sickness_percentage"`
}

// SchedulingOverviewResponse is the read-only scheduling dashboard payload.
type SchedulingOverviewResponse struct {
	OverallStats   OverallStats         `json:"overall_stats"`
	UnfilledShifts []UnfilledShiftEntry `json:"unfilled_shifts"`
	UnfilledDates  []UnfilledDateEntry  `json:"unfilled_dates"`
	CaregiverStats []CaregiverStats     `json:"caregiver_stats"`
}
