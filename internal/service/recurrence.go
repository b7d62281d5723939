package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
)

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// parseClock converts an "HH:mm" wall-clock string to minutes since midnight.
func parseClock(raw string) (int, error) {
	match := clockPattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:mm", raw)
	}
	hours := int(match[1][0]-'0')*10 + int(match[1][1]-'0')
	minutes := int(match[2][0]-'0')*10 + int(match[2][1]-'0')
	return hours*60 + minutes, nil
}

// timeRangesOverlap reports whether two wall-clock ranges overlap. A range
// whose end precedes its start crosses midnight and is extended by 24h.
// Because the ranges live on a clock circle, each one is also compared
// against the other shifted a day forward; that catches an overnight tail
// meeting an early-morning range. The test is half-open: touching
// boundaries do not overlap.
func timeRangesOverlap(start1, end1, start2, end2 int) bool {
	if end1 < start1 {
		end1 += minutesPerDay
	}
	if end2 < start2 {
		end2 += minutesPerDay
	}
	return linearOverlap(start1, end1, start2, end2) ||
		linearOverlap(start1, end1, start2+minutesPerDay, end2+minutesPerDay) ||
		linearOverlap(start1+minutesPerDay, end1+minutesPerDay, start2, end2)
}

func linearOverlap(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}

// shiftHours returns the duration of a shift in hours, applying the same
// midnight-wrap rule as the overlap test. Malformed times yield 0.
func shiftHours(startTime, endTime string) float64 {
	start, err := parseClock(startTime)
	if err != nil {
		return 0
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0
	}
	delta := end - start
	if delta < 0 {
		delta += minutesPerDay
	}
	return float64(delta) / 60
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetweenInclusive counts calendar days from a through b, both endpoints
// included. a after b yields 0.
func daysBetweenInclusive(a, b time.Time) int {
	a, b = dateOnly(a), dateOnly(b)
	if a.After(b) {
		return 0
	}
	return int(b.Sub(a).Hours()/24) + 1
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// firstWeekdayOfMonth returns the first date in the given month whose weekday
// matches the anchor.
func firstWeekdayOfMonth(year int, month time.Month, anchor time.Weekday) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != anchor {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// lastWeekdayOfMonth searches backward from the month's last day for the
// anchor weekday.
func lastWeekdayOfMonth(year int, month time.Month, anchor time.Weekday) time.Time {
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != anchor {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// expandPattern produces the ordered calendar dates on which a pattern fires
// within [today, horizonEnd]. It is a pure function of its inputs: the
// pattern is never mutated and repeated calls yield identical output.
//
// The weekday anchor for the non-daily kinds is the pattern start date's
// weekday. BIWEEKLY keeps its 14-day phase anchored to the original start
// date even when expansion first runs weeks later.
func expandPattern(pattern models.ShiftPattern, today, horizonEnd time.Time) []time.Time {
	patternStart := dateOnly(pattern.StartDate)
	today = dateOnly(today)
	horizonEnd = dateOnly(horizonEnd)

	windowStart := maxDate(patternStart, today)
	windowEnd := horizonEnd
	if pattern.EndDate != nil {
		windowEnd = minDate(dateOnly(*pattern.EndDate), horizonEnd)
	}
	if windowStart.After(windowEnd) {
		return nil
	}

	anchor := patternStart.Weekday()
	var dates []time.Time

	switch pattern.RecurrenceType {
	case models.RecurrenceDaily:
		for d := windowStart; !d.After(windowEnd); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	case models.RecurrenceWeekly:
		d := windowStart
		for d.Weekday() != anchor {
			d = d.AddDate(0, 0, 1)
		}
		for ; !d.After(windowEnd); d = d.AddDate(0, 0, 7) {
			dates = append(dates, d)
		}
	case models.RecurrenceBiweekly:
		for d := patternStart; !d.After(windowEnd); d = d.AddDate(0, 0, 14) {
			if d.Before(windowStart) {
				continue
			}
			dates = append(dates, d)
		}
	case models.RecurrenceFirstOfMonth:
		dates = monthlyDates(windowStart, windowEnd, anchor, firstWeekdayOfMonth)
	case models.RecurrenceLastOfMonth:
		dates = monthlyDates(windowStart, windowEnd, anchor, lastWeekdayOfMonth)
	}

	// Defensive re-clip against the raw pattern bounds.
	result := dates[:0]
	for _, d := range dates {
		if d.Before(patternStart) {
			continue
		}
		if pattern.EndDate != nil && d.After(dateOnly(*pattern.EndDate)) {
			continue
		}
		result = append(result, d)
	}
	return result
}

func monthlyDates(windowStart, windowEnd time.Time, anchor time.Weekday, pick func(int, time.Month, time.Weekday) time.Time) []time.Time {
	var dates []time.Time
	cursor := time.Date(windowStart.Year(), windowStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(windowEnd) {
		d := pick(cursor.Year(), cursor.Month(), anchor)
		if !d.Before(windowStart) && !d.After(windowEnd) {
			dates = append(dates, d)
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return dates
}
