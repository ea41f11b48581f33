package feed

import (
	"slices"
	"time"
)

// day truncates t to UTC midnight. All cache-internal date math happens on
// whole days; hours and time zones from the booking flow are discarded here.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayDistance returns the absolute difference between a and b in whole days.
func dayDistance(a, b time.Time) int {
	d := day(a).Sub(day(b)) / (24 * time.Hour)
	if d < 0 {
		d = -d
	}
	return int(d)
}

// dedupeDays reduces dates to UTC midnight, removes duplicates, and sorts
// ascending. Returns nil for empty input.
func dedupeDays(dates []time.Time) []time.Time {
	if len(dates) == 0 {
		return nil
	}
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		out = append(out, day(d))
	}
	slices.SortFunc(out, time.Time.Compare)
	return slices.CompactFunc(out, time.Time.Equal)
}

// nearestDistance returns the minimum day-distance from any of dates to
// target. Returns a large sentinel for an empty date list so callers sort
// dateless entries last.
func nearestDistance(dates []time.Time, target time.Time) int {
	best := 1 << 30
	for _, d := range dates {
		if dist := dayDistance(d, target); dist < best {
			best = dist
		}
	}
	return best
}

// nearestDistanceAny returns the minimum day-distance between any date in
// dates and any date in targets.
func nearestDistanceAny(dates, targets []time.Time) int {
	best := 1 << 30
	for _, t := range targets {
		if dist := nearestDistance(dates, t); dist < best {
			best = dist
		}
	}
	return best
}

// allBefore reports whether every date in dates is strictly before cutoff.
// An empty date list counts as expired.
func allBefore(dates []time.Time, cutoff time.Time) bool {
	for _, d := range dates {
		if !d.Before(cutoff) {
			return false
		}
	}
	return true
}
