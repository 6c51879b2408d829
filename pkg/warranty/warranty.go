// Package warranty derives warranty deadlines from purchase dates.
package warranty

import "time"

// Days is the fixed warranty duration in calendar days.
const Days = 15

// ComputeEnd returns the warranty end date for a purchase date.
// The result must be stored alongside the purchase date at write time,
// never recomputed lazily at read time.
func ComputeEnd(purchaseDate time.Time) time.Time {
	return purchaseDate.AddDate(0, 0, Days)
}
