// ABOUTME: Date parsing and timezone conversion helpers
// ABOUTME: End-of-day close dates and local date-time round-tripping for forms
package validate

import (
	"time"
)

const (
	// dateLayout is the calendar-date form used for deal close dates.
	dateLayout = "2006-01-02"

	// LocalDateTimeLayout is the timezone-naive form produced by
	// datetime-local form inputs.
	LocalDateTimeLayout = "2006-01-02T15:04"

	// instantLayout serializes instants with millisecond precision.
	instantLayout = "2006-01-02T15:04:05.000Z07:00"
)

// endOfDayUTC interprets s as a calendar date and returns the final
// second of that day in UTC, serialized as an ISO instant. Deals close
// at end of day so "still open today" comparisons include the close
// date itself.
func endOfDayUTC(s string) (string, bool) {
	day, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return "", false
	}
	eod := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, time.UTC)
	return eod.Format(instantLayout), true
}

// LocalDateTimeToIso parses a timezone-naive date-time string in the
// local timezone and re-serializes it as a UTC ISO instant.
func LocalDateTimeToIso(s string) (string, error) {
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, time.Local)
	if err != nil {
		return "", errInvalidFormat("dueDate", "Due date is not a valid date.")
	}
	return t.UTC().Format(time.RFC3339), nil
}

// IsoToLocalDateTime converts a stored UTC ISO instant back into the
// timezone-naive display form used to pre-fill edit forms. It is the
// exact inverse of LocalDateTimeToIso for whole-minute timestamps.
func IsoToLocalDateTime(s string) (string, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return "", errInvalidFormat("dueDate", "Due date is not a valid date.")
	}
	return t.In(time.Local).Format(LocalDateTimeLayout), nil
}
