package reservation

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusConfirmed Status = models.ReservationConfirmed
	StatusCancelled Status = models.ReservationCancelled
)

type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "customer"
	CancelledByBarber   CancelledBy = "barber"
	CancelledBySystem   CancelledBy = "system"
)

func InitialStatus() Status {
	return StatusConfirmed
}

// CanEdit rejects edits of cancelled reservations.
func CanEdit(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled)
	}
	return nil
}

// CanCancel treats a repeated cancel as a lost race, never as success.
func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return ErrAlreadyCancelled()
	}
	return nil
}

// ErrAlreadyCancelled keeps the conflict code but tells the client there is
// nothing left to retry.
func ErrAlreadyCancelled() error {
	return httperr.ErrBusinessMsg(httperr.CodeConcurrencyConflict, "התור כבר בוטל.")
}
