package theme

import (
	"strconv"
	"strings"
	"time"
)

// experienceString renders the elapsed time of an engagement as
// "<years> <months>", largest unit first, zero components dropped.
// The span runs from the first day of the start month through the whole
// end month; a missing end date means "up to now". Unparseable dates
// yield "".
func experienceString(startDate, endDate string, now time.Time) string {
	sy, sm, ok := yearMonth(startDate)
	if !ok {
		return ""
	}
	ey, em := now.Year(), int(now.Month())
	if endDate != "" {
		if y, m, ok := yearMonth(endDate); ok {
			ey, em = y, m
		} else {
			return ""
		}
	}
	// inclusive of the end month
	months := (ey-sy)*12 + (em - sm) + 1
	if months <= 0 {
		return ""
	}
	return formatDuration(months/12, months%12)
}

func formatDuration(years, months int) string {
	var parts []string
	if years > 0 {
		parts = append(parts, strconv.Itoa(years)+" "+plural("year", years))
	}
	if months > 0 {
		parts = append(parts, strconv.Itoa(months)+" "+plural("month", months))
	}
	return strings.Join(parts, " ")
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
