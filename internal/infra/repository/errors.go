package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	barberSlotIndex   = "uq_reservations_barber_slot"
	customerSlotIndex = "uq_reservations_customer_slot"
)

// translateWriteError turns constraint violations on the reservation slot
// indexes into business errors. Business errors pass through untouched and
// anything else is a storage failure.
func translateWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := httperr.AsBusiness(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			switch pgErr.ConstraintName {
			case barberSlotIndex:
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			case customerSlotIndex:
				return httperr.ErrBusiness(httperr.CodeCustomerDoubleBooking)
			}
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
			return httperr.ErrBusiness(httperr.CodeConcurrencyConflict)
		}
		return domain.StorageError(op, err)
	}

	// sqlite reports the columns instead of the index name
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "reservations.barber_id"):
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		case strings.Contains(msg, "reservations.customer_id"):
			return httperr.ErrBusiness(httperr.CodeCustomerDoubleBooking)
		}
	}

	return domain.StorageError(op, err)
}

// translateCreateError is translateWriteError for the create commit. A
// create that still loses a serialization race after its retry lost it to
// a concurrent booking of the same slot.
func translateCreateError(err error) error {
	if isSerializationFailure(err) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return translateWriteError("create reservation", err)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgerrcode.SerializationFailure ||
		pgErr.Code == pgerrcode.DeadlockDetected
}

// retrySerialization runs fn a second time when postgres aborted the first
// attempt, so the re-checks can see what the other transaction committed.
func retrySerialization(fn func() error) error {
	err := fn()
	if isSerializationFailure(err) {
		err = fn()
	}
	return err
}
