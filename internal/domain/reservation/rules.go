package reservation

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const endOfDay = 24 * 60

// Constraints is everything fetched about a barber's availability for one
// candidate slot. Sources whose lookup failed arrive empty.
type Constraints struct {
	WorkDay        Lookup[models.WorkDay]
	BarberClosures []models.BarberClosure
	ShopClosures   []models.ShopClosure
	Recurring      []models.RecurringAppointment
	Breakouts      []models.Breakout
	SlotTaken      bool
}

// EvaluateRules applies the availability rules in precedence order and
// returns the first violation.
func EvaluateRules(cs Constraints, slot timezone.Slot) error {
	checks := []func() error{
		func() error { return CheckWorkingHours(cs.WorkDay, slot) },
		func() error { return CheckClosures(cs.BarberClosures, cs.ShopClosures, slot) },
		func() error { return CheckRecurring(cs.Recurring, slot) },
		func() error { return CheckBreakouts(cs.Breakouts, slot) },
		func() error { return CheckSlotTaken(cs.SlotTaken) },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// CheckWorkingHours blocks days without a working row and slots outside
// [start, end). A failed lookup imposes no constraint.
func CheckWorkingHours(wd Lookup[models.WorkDay], slot timezone.Slot) error {
	switch wd.State() {
	case LookupFailed:
		return nil
	case LookupNotFound:
		return httperr.ErrBusiness(httperr.CodeNotWorkingDay)
	}

	day := wd.Value()
	if !day.IsWorking {
		return httperr.ErrBusiness(httperr.CodeNotWorkingDay)
	}

	start, end := 0, endOfDay
	if day.StartTime != nil {
		if m, ok := timezone.ParseHM(*day.StartTime); ok {
			start = m
		}
	}
	if day.EndTime != nil {
		if m, ok := timezone.ParseHM(*day.EndTime); ok {
			end = m
		}
	}

	if slot.MinutesOfDay < start || slot.MinutesOfDay >= end {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkHours)
	}
	return nil
}

// CheckClosures compares YYYY-MM-DD strings, which order lexicographically.
func CheckClosures(
	barber []models.BarberClosure,
	shop []models.ShopClosure,
	slot timezone.Slot,
) error {
	for _, c := range barber {
		if inDateRange(slot.Date, c.StartDate, c.EndDate) {
			return httperr.ErrBusiness(httperr.CodeBarberClosed)
		}
	}
	for _, c := range shop {
		if inDateRange(slot.Date, c.StartDate, c.EndDate) {
			return httperr.ErrBusiness(httperr.CodeShopClosed)
		}
	}
	return nil
}

func CheckRecurring(recurring []models.RecurringAppointment, slot timezone.Slot) error {
	for _, r := range recurring {
		if !r.IsActive || r.DayOfWeek != slot.Weekday {
			continue
		}
		if m, ok := timezone.ParseHM(r.TimeSlot); ok && m == slot.MinutesOfDay {
			return httperr.ErrBusiness(httperr.CodeSlotRecurring)
		}
	}
	return nil
}

func CheckBreakouts(breakouts []models.Breakout, slot timezone.Slot) error {
	for _, b := range breakouts {
		if !b.IsActive || !BreakoutAppliesOn(b, slot) {
			continue
		}

		start, ok := timezone.ParseHM(b.StartTime)
		if !ok {
			continue
		}
		end := endOfDay
		if b.EndTime != nil {
			if m, ok := timezone.ParseHM(*b.EndTime); ok {
				end = m
			}
		}

		if slot.MinutesOfDay >= start && slot.MinutesOfDay < end {
			return httperr.ErrBusiness(httperr.CodeSlotInBreakout)
		}
	}
	return nil
}

// BreakoutAppliesOn reports whether the breakout covers the slot's day.
func BreakoutAppliesOn(b models.Breakout, slot timezone.Slot) bool {
	switch b.BreakoutType {
	case models.BreakoutSingle:
		return b.StartDate != nil && *b.StartDate == slot.Date
	case models.BreakoutDateRange:
		if b.StartDate == nil {
			return false
		}
		if b.EndDate == nil {
			return slot.Date >= *b.StartDate
		}
		return inDateRange(slot.Date, *b.StartDate, *b.EndDate)
	case models.BreakoutRecurring:
		return b.DayOfWeek != nil && *b.DayOfWeek == slot.Weekday
	}
	return false
}

// CheckSlotTaken is advisory outside the commit transaction.
func CheckSlotTaken(taken bool) error {
	if taken {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return nil
}

func inDateRange(date, start, end string) bool {
	return date >= start && date <= end
}
