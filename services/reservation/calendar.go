package reservation

import (
	"fmt"
	"strconv"
	"time"

	"stayhaven/models"
)

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// MergeBookingsIndex walks every UTC calendar day from checkIn to
// checkOut inclusive and returns a copy of index with those days
// reserved. The input index is never mutated. The first already-reserved
// day aborts the merge with a date_conflict error naming that day.
//
// The caller is responsible for ensuring checkIn <= checkOut.
func MergeBookingsIndex(index models.BookingsIndex, checkIn, checkOut time.Time) (models.BookingsIndex, error) {
	merged := copyIndex(index)
	last := truncateToDay(checkOut)

	for cursor := truncateToDay(checkIn); !cursor.After(last); cursor = cursor.AddDate(0, 0, 1) {
		y, m, d := dayKeys(cursor)
		if merged[y] == nil {
			merged[y] = map[string]map[string]bool{}
		}
		if merged[y][m] == nil {
			merged[y][m] = map[string]bool{}
		}
		if merged[y][m][d] {
			return nil, &Error{
				Code:    CodeDateConflict,
				Message: fmt.Sprintf("selected dates overlap an existing booking on %s", cursor.Format(DayLayout)),
				Day:     cursor,
			}
		}
		merged[y][m][d] = true
	}
	return merged, nil
}

// dayKeys returns the index keys for a day: year, zero-based month and
// day-of-month as decimal strings.
func dayKeys(t time.Time) (string, string, string) {
	return strconv.Itoa(t.Year()), strconv.Itoa(int(t.Month()) - 1), strconv.Itoa(t.Day())
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func copyIndex(index models.BookingsIndex) models.BookingsIndex {
	out := make(models.BookingsIndex, len(index))
	for y, months := range index {
		out[y] = make(map[string]map[string]bool, len(months))
		for m, days := range months {
			out[y][m] = make(map[string]bool, len(days))
			for d, reserved := range days {
				out[y][m][d] = reserved
			}
		}
	}
	return out
}
