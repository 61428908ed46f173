package reservation

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const (
	hourMs = int64(time.Hour / time.Millisecond)
	dayMs  = 24 * hourMs
)

// EvaluateBookingPolicy applies the customer booking policy to a candidate
// slot. Barbers and admins are exempt. Without a settings row only the
// past-time rule applies.
func EvaluateBookingPolicy(
	caller Caller,
	now time.Time,
	slot timezone.Slot,
	settings *models.BarberBookingSettings,
) error {
	if !caller.IsCustomer() {
		return nil
	}

	nowMs := now.UnixMilli()
	if slot.StartMs() <= nowMs {
		return httperr.ErrBusiness(httperr.CodePastAppointment)
	}

	if settings == nil {
		return nil
	}

	if settings.MinHoursBeforeBooking > 0 &&
		slot.StartMs()-nowMs < int64(settings.MinHoursBeforeBooking)*hourMs {
		return httperr.ErrBusiness(httperr.CodeTooClose)
	}

	if settings.MaxBookingDaysAhead > 0 &&
		slot.DayStartMs()-nowMs > int64(settings.MaxBookingDaysAhead)*dayMs {
		return httperr.ErrBusiness(httperr.CodeDateOutOfRange)
	}

	return nil
}

// EvaluateEditPolicy rejects customer edits of reservations that already
// started.
func EvaluateEditPolicy(caller Caller, now time.Time, current *models.Reservation) error {
	if !caller.IsCustomer() {
		return nil
	}
	if current.TimeTimestamp <= now.UnixMilli() {
		return httperr.ErrBusiness(httperr.CodeAlreadyPast)
	}
	return nil
}

// EvaluateCancelPolicy applies the minimum cancellation notice to customer
// cancels.
func EvaluateCancelPolicy(
	caller Caller,
	now time.Time,
	current *models.Reservation,
	settings *models.BarberBookingSettings,
) error {
	if !caller.IsCustomer() {
		return nil
	}

	nowMs := now.UnixMilli()
	if current.TimeTimestamp <= nowMs {
		return httperr.ErrBusiness(httperr.CodeAlreadyPast)
	}

	if settings != nil && settings.MinCancelHours > 0 &&
		current.TimeTimestamp-nowMs < int64(settings.MinCancelHours)*hourMs {
		return httperr.ErrBusiness(httperr.CodeCancelTooLate)
	}
	return nil
}
