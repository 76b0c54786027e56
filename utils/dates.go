package utils

import "time"

// Calendar state is day-granular; every date entering the core is
// truncated to midnight UTC first.

func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DateOnly(time.Now().UTC())
}

// NightsBetween counts whole nights in [checkIn, checkOut); the
// checkout day is not a night.
func NightsBetween(checkIn, checkOut time.Time) int {
	n := int(DateOnly(checkOut).Sub(DateOnly(checkIn)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// EachNight lists every night of a stay: [checkIn, checkOut).
func EachNight(checkIn, checkOut time.Time) []time.Time {
	var days []time.Time
	for d := DateOnly(checkIn); d.Before(DateOnly(checkOut)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// EachDayInclusive lists every day of [start, end], both ends included.
// Used for operator-facing schedules (maintenance, blocking) where the
// end date is a day, not a checkout.
func EachDayInclusive(start, end time.Time) []time.Time {
	var days []time.Time
	for d := DateOnly(start); !d.After(DateOnly(end)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
