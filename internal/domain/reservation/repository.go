package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// CreateParams is the input of the atomic create. Every check made by the
// pre-check layer is made again under lock with these values.
type CreateParams struct {
	BarberID      uuid.UUID
	ServiceID     uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerPhone string
	Slot          timezone.Slot
	Notes         string

	// Customer limits are skipped for barber and admin callers.
	EnforceCustomerLimits bool
	MaxFutureBookings     int
	MaxDaysAhead          *int
	Now                   time.Time
}

// CancelParams carries the cancelled state produced by Cancel.
type CancelParams struct {
	ReservationID   uuid.UUID
	ExpectedVersion int
	CancelledBy     CancelledBy
	Reason          string
	At              time.Time
}

type Repository interface {
	// -------- Barber --------
	GetBarber(ctx context.Context, id uuid.UUID) Lookup[models.Barber]
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	IsPhoneBlocked(ctx context.Context, barberID uuid.UUID, phone string) (bool, error)
	GetBookingSettings(ctx context.Context, barberID uuid.UUID) Lookup[models.BarberBookingSettings]

	// -------- Service --------
	GetService(ctx context.Context, id uuid.UUID) Lookup[models.Service]

	// -------- Availability sources --------
	GetWorkDay(ctx context.Context, barberID uuid.UUID, dayOfWeek string) Lookup[models.WorkDay]
	ListBarberClosures(ctx context.Context, barberID uuid.UUID, date string) ([]models.BarberClosure, error)
	ListShopClosures(ctx context.Context, date string) ([]models.ShopClosure, error)
	ListRecurring(ctx context.Context, barberID uuid.UUID, dayOfWeek string) ([]models.RecurringAppointment, error)
	ListBreakouts(ctx context.Context, barberID uuid.UUID) ([]models.Breakout, error)
	IsSlotTaken(ctx context.Context, barberID uuid.UUID, slotMs int64, exclude *uuid.UUID) (bool, error)
	ListConfirmedForDay(ctx context.Context, barberID uuid.UUID, dayStartMs int64) ([]models.Reservation, error)

	// -------- Reservation --------
	GetReservation(ctx context.Context, id uuid.UUID) Lookup[models.Reservation]
	CreateAtomic(ctx context.Context, p CreateParams) (uuid.UUID, error)
	UpdateVersioned(ctx context.Context, next *models.Reservation, expectedVersion int) error
	CancelVersioned(ctx context.Context, p CancelParams) error
}
