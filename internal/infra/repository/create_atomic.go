package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// CreateAtomic is the only path that may declare a booking successful.
// Inside one transaction it locks the barber and customer rows, so bookings
// touching either are serialized, re-validates the slot and the customer,
// and inserts. The partial unique indexes stay as the last backstop.
func (r *ReservationGormRepository) CreateAtomic(
	ctx context.Context,
	p domain.CreateParams,
) (uuid.UUID, error) {

	var id uuid.UUID

	err := retrySerialization(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

			// --------------------------------------------------
			// Barber (locked)
			// --------------------------------------------------
			var barber models.Barber
			if err := forUpdate(tx).
				Where("id = ?", p.BarberID).
				First(&barber).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return httperr.ErrBusiness(httperr.CodeBarberNotFound)
				}
				return err
			}
			if barber.IsPaused {
				return httperr.ErrBusiness(httperr.CodeBarberPaused)
			}

			// --------------------------------------------------
			// Customer (locked when the profile exists)
			// --------------------------------------------------
			var customer models.Customer
			err := forUpdate(tx).Where("id = ?", p.CustomerID).First(&customer).Error
			switch {
			case err == nil:
				if customer.IsBlocked {
					return httperr.ErrBusiness(httperr.CodeCustomerBlocked)
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			blocked, err := count(tx.Model(&models.BlockedCustomer{}).
				Where("barber_id = ? AND phone IN ?", p.BarberID, phoneVariants(p.CustomerPhone)))
			if err != nil {
				return err
			}
			if blocked > 0 {
				return httperr.ErrBusiness(httperr.CodeCustomerBlocked)
			}

			// --------------------------------------------------
			// Slot
			// --------------------------------------------------
			taken, err := count(tx.Model(&models.Reservation{}).
				Where("barber_id = ? AND time_timestamp = ? AND status = ?",
					p.BarberID, p.Slot.StartMs(), models.ReservationConfirmed))
			if err != nil {
				return err
			}
			if taken > 0 {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}

			recurring, err := count(tx.Model(&models.RecurringAppointment{}).
				Where("barber_id = ? AND day_of_week = ? AND time_slot IN ? AND is_active = ?",
					p.BarberID, p.Slot.Weekday,
					[]string{p.Slot.TimeOfDay, p.Slot.TimeOfDay + ":00"}, true))
			if err != nil {
				return err
			}
			if recurring > 0 {
				return httperr.ErrBusiness(httperr.CodeSlotRecurring)
			}

			// --------------------------------------------------
			// Customer limits
			// --------------------------------------------------
			double, err := count(tx.Model(&models.Reservation{}).
				Where("customer_id = ? AND time_timestamp = ? AND status = ?",
					p.CustomerID, p.Slot.StartMs(), models.ReservationConfirmed))
			if err != nil {
				return err
			}
			if double > 0 {
				return httperr.ErrBusiness(httperr.CodeCustomerDoubleBooking)
			}

			if p.EnforceCustomerLimits {
				nowMs := p.Now.UnixMilli()

				if p.MaxFutureBookings > 0 {
					future, err := count(tx.Model(&models.Reservation{}).
						Where("customer_id = ? AND time_timestamp > ? AND status = ?",
							p.CustomerID, nowMs, models.ReservationConfirmed))
					if err != nil {
						return err
					}
					if future >= int64(p.MaxFutureBookings) {
						return httperr.ErrBusiness(httperr.CodeMaxBookingsReached)
					}
				}

				if p.MaxDaysAhead != nil && *p.MaxDaysAhead > 0 {
					window := time.Duration(*p.MaxDaysAhead) * 24 * time.Hour
					if p.Slot.DayStartMs()-nowMs > window.Milliseconds() {
						return httperr.ErrBusiness(httperr.CodeDateOutOfRange)
					}
				}
			}

			// --------------------------------------------------
			// Insert
			// --------------------------------------------------
			res := models.Reservation{
				BarberID:      p.BarberID,
				ServiceID:     p.ServiceID,
				CustomerID:    p.CustomerID,
				CustomerName:  p.CustomerName,
				CustomerPhone: p.CustomerPhone,
				Status:        string(domain.InitialStatus()),
				Version:       1,
				Notes:         p.Notes,
			}
			domain.ApplySlot(&res, p.Slot)

			if err := tx.Create(&res).Error; err != nil {
				return err
			}

			id = res.ID
			return nil
		}, txOptions(r.db)...)
	})

	if err != nil {
		return uuid.Nil, translateCreateError(err)
	}
	return id, nil
}

// txOptions pins postgres to read committed. Every statement after the
// barber lock takes a fresh snapshot, so a slot committed by the lock's
// previous holder is counted instead of surfacing as a serialization
// failure on insert.
func txOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	return []*sql.TxOptions{{Isolation: sql.LevelReadCommitted}}
}

func count(q *gorm.DB) (int64, error) {
	var n int64
	err := q.Count(&n).Error
	return n, err
}
