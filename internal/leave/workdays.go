package leave

import "time"

// InclusiveDays is the raw calendar span end-start+1. It is what gets
// stored and displayed on a request; quota accounting uses WorkingDays.
func InclusiveDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// WorkingDays counts the days in [start, end] that are neither weekend
// nor in the holiday set (keys formatted YYYY-MM-DD). This is the unit
// deducted from quota on approval.
func WorkingDays(start, end time.Time, holidays map[string]struct{}) int {
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if _, isHoliday := holidays[d.Format("2006-01-02")]; isHoliday {
			continue
		}
		days++
	}
	return days
}
