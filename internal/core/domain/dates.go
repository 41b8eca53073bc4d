package domain

import "time"

// Check-in and check-out are pinned to fixed UTC boundaries so that any
// two date ranges compare the same way no matter what time-of-day the
// caller supplied. Check-out sits earlier in the day than check-in, so a
// one-night stay (day D to D+1) always has positive duration.
const (
	checkInHourUTC  = 14
	checkOutHourUTC = 12
)

// NormalizeCheckIn maps a calendar date to that day at 14:00 UTC.
// Idempotent: the same calendar day always yields the same instant.
func NormalizeCheckIn(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), checkInHourUTC, 0, 0, 0, time.UTC)
}

// NormalizeCheckOut maps a calendar date to that day at 12:00 UTC.
func NormalizeCheckOut(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), checkOutHourUTC, 0, 0, 0, time.UTC)
}

// Overlaps is the half-open interval test on [inA, outA) and [inB, outB).
// Two ranges do not overlap iff one ends at or before the other begins,
// so a check-out that lands exactly on another check-in is a legal
// back-to-back turnover.
func Overlaps(inA, outA, inB, outB time.Time) bool {
	if !outA.After(inB) {
		return false
	}
	if !inA.Before(outB) {
		return false
	}
	return true
}

// Nights is the number of billable nights between two normalized
// instants, rounding any partial day up. With the 14:00/12:00
// boundaries a one-night stay spans 22 hours and still bills one night.
func Nights(checkIn, checkOut time.Time) int {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}
