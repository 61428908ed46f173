package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

// Reschedule moves a confirmed reservation in place. Identity is kept and
// the version advances by exactly one.
func Reschedule(
	r *models.Reservation,
	barberID uuid.UUID,
	serviceID uuid.UUID,
	slot timezone.Slot,
	now time.Time,
) error {
	if err := CanEdit(Status(r.Status)); err != nil {
		return err
	}

	r.BarberID = barberID
	r.ServiceID = serviceID
	ApplySlot(r, slot)
	r.Version++
	r.UpdatedAt = now
	return nil
}

func Cancel(
	r *models.Reservation,
	by CancelledBy,
	reason string,
	now time.Time,
) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	who := string(by)
	r.Status = string(StatusCancelled)
	r.CancelledBy = &who
	if reason != "" {
		r.CancellationReason = &reason
	}
	r.CancelledAt = &now
	r.Version++
	r.UpdatedAt = now
	return nil
}

// ApplySlot copies the normalized slot fields onto the reservation.
func ApplySlot(r *models.Reservation, slot timezone.Slot) {
	r.DateTimestamp = slot.DayStartMs()
	r.TimeTimestamp = slot.StartMs()
	r.DayName = slot.Weekday
	r.DayNum = slot.DayNum
}

// Unchanged reports whether an edit would leave the reservation as is.
func Unchanged(
	r *models.Reservation,
	barberID uuid.UUID,
	serviceID uuid.UUID,
	slot timezone.Slot,
) bool {
	return r.BarberID == barberID &&
		r.ServiceID == serviceID &&
		r.TimeTimestamp == slot.StartMs()
}

// Snapshot is the audit view of a reservation.
func Snapshot(r *models.Reservation) map[string]any {
	snap := map[string]any{
		"barberId":      r.BarberID,
		"serviceId":     r.ServiceID,
		"customerId":    r.CustomerID,
		"dateTimestamp": r.DateTimestamp,
		"timeTimestamp": r.TimeTimestamp,
		"dayName":       r.DayName,
		"status":        r.Status,
		"version":       r.Version,
	}
	if r.CancelledBy != nil {
		snap["cancelledBy"] = *r.CancelledBy
	}
	if r.CancellationReason != nil {
		snap["cancellationReason"] = *r.CancellationReason
	}
	return snap
}
