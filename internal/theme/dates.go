package theme

import (
	"strconv"
	"time"
)

// Dates in a resume document are loose "YYYY-MM..." strings. Day precision
// is optional and anything malformed degrades to empty derived fields
// rather than an error.

var monthNames = map[string]string{
	"01": "January ",
	"02": "February ",
	"03": "March ",
	"04": "April ",
	"05": "May ",
	"06": "June ",
	"07": "July ",
	"08": "August ",
	"09": "September ",
	"10": "October ",
	"11": "November ",
	"12": "December ",
}

// substr mirrors the clamping substring the templates were designed
// around: out-of-range offsets yield "" instead of panicking.
func substr(s string, start, n int) string {
	if start >= len(s) {
		return ""
	}
	end := start + n
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}

// monthName reads the month digits of a YYYY-MM... string and returns the
// English month name with a trailing space, or "" when the input is
// missing, too short or out of range.
func monthName(date string) string {
	return monthNames[substr(date, 5, 2)]
}

// yearPrefix returns the leading four characters of a date string.
func yearPrefix(date string) string {
	return substr(date, 0, 4)
}

// yearMonth extracts the numeric year and month of a partial date.
func yearMonth(date string) (year, month int, ok bool) {
	y, err := strconv.Atoi(substr(date, 0, 4))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(substr(date, 5, 2))
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}

// normalizeRange populates the display fields a dated entry exposes to the
// template. A missing end date means the engagement is ongoing; an end
// year beyond the current one marks an in-progress program (education).
func normalizeRange(entry map[string]interface{}, startDate, endDate string, now time.Time) {
	if startDate != "" {
		entry["startDateYear"] = yearPrefix(startDate)
		if m := monthName(startDate); m != "" {
			entry["startDateMonth"] = m
		}
	}
	if endDate == "" {
		entry["endDateYear"] = "Present"
		return
	}
	year := yearPrefix(endDate)
	if m := monthName(endDate); m != "" {
		entry["endDateMonth"] = m
	}
	if y, err := strconv.Atoi(year); err == nil && y > now.Year() {
		year += " (expected)"
	}
	entry["endDateYear"] = year
}

// splitDate decomposes a single-date entry (awards, publications) into
// year, day and month display fields.
func splitDate(entry map[string]interface{}, date string) {
	entry["year"] = substr(date, 0, 4)
	entry["day"] = substr(date, 8, 2)
	if m := monthName(date); m != "" {
		entry["month"] = m
	}
}
