package subscription

import "time"

// NextOccurrence returns the first billing date strictly after the given
// time. Monthly billing days past the end of a month clamp to that month's
// last day, so a subscription billed on the 31st bills on Feb 28 (or 29).
func NextOccurrence(freq Frequency, billingDay int16, after time.Time) time.Time {
	switch freq {
	case FrequencyWeekly:
		next := truncateDay(after).AddDate(0, 0, 1)
		for int16(next.Weekday()) != billingDay%7 {
			next = next.AddDate(0, 0, 1)
		}
		return next
	case FrequencyYearly:
		y, m, _ := after.Date()
		next := clampedDate(y, m, int(billingDay), after.Location())
		if !next.After(after) {
			next = clampedDate(y+1, m, int(billingDay), after.Location())
		}
		return next
	default:
		y, m, _ := after.Date()
		next := clampedDate(y, m, int(billingDay), after.Location())
		if !next.After(after) {
			next = clampedDate(y, m+1, int(billingDay), after.Location())
		}
		return next
	}
}

// Advance returns the billing date that follows the subscription's current
// one, preserving the configured billing day across short months.
func (s *Subscription) Advance() time.Time {
	cur := s.NextBillingOn
	switch s.Frequency {
	case FrequencyWeekly:
		return cur.AddDate(0, 0, 7)
	case FrequencyYearly:
		y, m, _ := cur.Date()
		return clampedDate(y+1, m, int(s.BillingDay), cur.Location())
	default:
		y, m, _ := cur.Date()
		return clampedDate(y, m+1, int(s.BillingDay), cur.Location())
	}
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	if day < 1 {
		day = 1
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// daysIn handles month overflow the same way time.Date does, so a
// time.Month beyond December rolls into the next year before the day count
// is taken.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
