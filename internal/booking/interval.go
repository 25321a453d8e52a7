package booking

import "time"

// MinLeadTime is how far ahead of the current time a reservation must
// start. A start exactly MinLeadTime from now is accepted.
const MinLeadTime = 30 * time.Minute

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Touching endpoints do not overlap,
// so back-to-back bookings never conflict. This is the single overlap
// predicate used by both admission and availability checks.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// checkInterval applies the timing rules to a candidate interval in the
// documented order. The first failing rule wins; later rules are not
// evaluated.
func checkInterval(now, start, end time.Time) *InvalidIntervalError {
	switch {
	case start.Before(now):
		return &InvalidIntervalError{Reason: "start time cannot be in the past"}
	case start.Before(now.Add(MinLeadTime)):
		return &InvalidIntervalError{Reason: "reservations must start at least 30 minutes from now"}
	case !start.Before(end):
		return &InvalidIntervalError{Reason: "start time must be earlier than end time"}
	}
	return nil
}
