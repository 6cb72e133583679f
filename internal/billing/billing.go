// Package billing holds the rental billing arithmetic as pure functions.
// Nothing in here touches the database: callers read the documents they
// need, ask this package for a plan, then commit the plan's writes in one
// transaction. That split keeps every rule unit-testable.
package billing

import (
	"time"

	"github.com/akashad48/DnaikEquipRent-sub000/internal/domain"
)

// ClosePaise is the settlement tolerance: a settled rental whose balance is
// at or below this is considered fully paid. One paisa absorbs rounding.
const ClosePaise int64 = 1

// dateOnly strips the time-of-day so duration counting works on calendar
// days regardless of the timestamps callers pass in.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays counts billable days between start and end, inclusive of both.
// A same-day return bills one full day. An end before start is clamped to
// the start date rather than producing a negative duration.
func RentalDays(start, end time.Time) int32 {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 1
	}
	days := int32(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// DailyRatePaise sums ratePerDay x quantity across the rental's line items.
func DailyRatePaise(items []domain.RentalItem) int64 {
	var total int64
	for _, it := range items {
		total += it.RatePerDayPaise * int64(it.Quantity)
	}
	return total
}

// AccruedAmountPaise computes the rent accrued from start through end using
// the rates frozen on the line items.
func AccruedAmountPaise(items []domain.RentalItem, start, end time.Time) int64 {
	return int64(RentalDays(start, end)) * DailyRatePaise(items)
}

// StatusForSettled derives the post-settlement status: closed iff the
// outstanding balance is within the close tolerance.
func StatusForSettled(totalCalculatedPaise, totalPaidPaise int64) domain.RentalStatus {
	if totalCalculatedPaise-totalPaidPaise <= ClosePaise {
		return domain.RentalStatusClosed
	}
	return domain.RentalStatusPaymentDue
}
