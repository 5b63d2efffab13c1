package reservation

import "time"

// TotalCharge computes the amount to collect for an inclusive stay:
// the nightly rate times the number of UTC calendar days from checkIn
// to checkOut. A same-day stay counts as one night.
func TotalCharge(nightlyRate int64, checkIn, checkOut time.Time) int64 {
	days := int64(truncateToDay(checkOut).Sub(truncateToDay(checkIn)).Hours()/24) + 1
	return nightlyRate * days
}
