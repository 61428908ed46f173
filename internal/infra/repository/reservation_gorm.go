package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

func lookup[T any](op string, err error, v T) domain.Lookup[T] {
	switch {
	case err == nil:
		return domain.Found(v)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFound[T]()
	default:
		return domain.Failed[T](domain.StorageError(op, err))
	}
}

// forUpdate adds a row lock where the dialect has one.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *ReservationGormRepository) GetBarber(
	ctx context.Context,
	id uuid.UUID,
) domain.Lookup[models.Barber] {

	var barber models.Barber
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&barber).Error
	return lookup("get barber", err, barber)
}

func (r *ReservationGormRepository) IsAdmin(
	ctx context.Context,
	userID uuid.UUID,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barber{}).
		Where("id = ? AND role = ?", userID, models.RoleAdmin).
		Count(&count).Error; err != nil {
		return false, domain.StorageError("check admin role", err)
	}
	return count > 0, nil
}

func (r *ReservationGormRepository) IsPhoneBlocked(
	ctx context.Context,
	barberID uuid.UUID,
	phone string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlockedCustomer{}).
		Where("barber_id = ? AND phone IN ?", barberID, phoneVariants(phone)).
		Count(&count).Error; err != nil {
		return false, domain.StorageError("check blocked customer", err)
	}
	return count > 0, nil
}

func (r *ReservationGormRepository) GetBookingSettings(
	ctx context.Context,
	barberID uuid.UUID,
) domain.Lookup[models.BarberBookingSettings] {

	var s models.BarberBookingSettings
	err := r.db.WithContext(ctx).Where("barber_id = ?", barberID).First(&s).Error
	return lookup("get booking settings", err, s)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *ReservationGormRepository) GetService(
	ctx context.Context,
	id uuid.UUID,
) domain.Lookup[models.Service] {

	var s models.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return lookup("get service", err, s)
}

// --------------------------------------------------
// Availability sources
// --------------------------------------------------

func (r *ReservationGormRepository) GetWorkDay(
	ctx context.Context,
	barberID uuid.UUID,
	dayOfWeek string,
) domain.Lookup[models.WorkDay] {

	var wd models.WorkDay
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ?", barberID, dayOfWeek).
		First(&wd).Error
	return lookup("get work day", err, wd)
}

func (r *ReservationGormRepository) ListBarberClosures(
	ctx context.Context,
	barberID uuid.UUID,
	date string,
) ([]models.BarberClosure, error) {

	var closures []models.BarberClosure
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_date <= ? AND end_date >= ?", barberID, date, date).
		Find(&closures).Error; err != nil {
		return nil, domain.StorageError("list barber closures", err)
	}
	return closures, nil
}

func (r *ReservationGormRepository) ListShopClosures(
	ctx context.Context,
	date string,
) ([]models.ShopClosure, error) {

	var closures []models.ShopClosure
	if err := r.db.WithContext(ctx).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&closures).Error; err != nil {
		return nil, domain.StorageError("list shop closures", err)
	}
	return closures, nil
}

func (r *ReservationGormRepository) ListRecurring(
	ctx context.Context,
	barberID uuid.UUID,
	dayOfWeek string,
) ([]models.RecurringAppointment, error) {

	var rec []models.RecurringAppointment
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND day_of_week = ? AND is_active = ?", barberID, dayOfWeek, true).
		Find(&rec).Error; err != nil {
		return nil, domain.StorageError("list recurring", err)
	}
	return rec, nil
}

func (r *ReservationGormRepository) ListBreakouts(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.Breakout, error) {

	var breakouts []models.Breakout
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND is_active = ?", barberID, true).
		Find(&breakouts).Error; err != nil {
		return nil, domain.StorageError("list breakouts", err)
	}
	return breakouts, nil
}

func (r *ReservationGormRepository) IsSlotTaken(
	ctx context.Context,
	barberID uuid.UUID,
	slotMs int64,
	exclude *uuid.UUID,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("barber_id = ? AND time_timestamp = ? AND status = ?",
			barberID, slotMs, models.ReservationConfirmed)
	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, domain.StorageError("check slot taken", err)
	}
	return count > 0, nil
}

func (r *ReservationGormRepository) ListConfirmedForDay(
	ctx context.Context,
	barberID uuid.UUID,
	dayStartMs int64,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date_timestamp = ? AND status = ?",
			barberID, dayStartMs, models.ReservationConfirmed).
		Order("time_timestamp ASC").
		Find(&res).Error; err != nil {
		return nil, domain.StorageError("list day reservations", err)
	}
	return res, nil
}

// --------------------------------------------------
// Reservation
// --------------------------------------------------

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id uuid.UUID,
) domain.Lookup[models.Reservation] {

	var res models.Reservation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return lookup("get reservation", err, res)
}

// UpdateVersioned writes a rescheduled reservation only if nobody changed or
// cancelled it since it was read.
func (r *ReservationGormRepository) UpdateVersioned(
	ctx context.Context,
	next *models.Reservation,
	expectedVersion int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ? AND version = ?",
			next.ID, models.ReservationConfirmed, expectedVersion).
		Updates(map[string]any{
			"barber_id":        next.BarberID,
			"service_id":       next.ServiceID,
			"date_timestamp":   next.DateTimestamp,
			"time_timestamp":   next.TimeTimestamp,
			"day_name":         next.DayName,
			"day_num":          next.DayNum,
			"version":          expectedVersion + 1,
			"reminder_sent_at": nil,
			"updated_at":       next.UpdatedAt,
		})
	if res.Error != nil {
		return translateWriteError("update reservation", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeConcurrencyConflict)
	}
	return nil
}

// CancelVersioned flips a confirmed reservation to cancelled. When no row
// matches, one extra read tells an earlier cancel apart from a concurrent
// edit. Both stay CONCURRENCY_CONFLICT.
func (r *ReservationGormRepository) CancelVersioned(
	ctx context.Context,
	p domain.CancelParams,
) error {

	var reason any
	if p.Reason != "" {
		reason = p.Reason
	}

	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND status = ? AND version = ?",
			p.ReservationID, models.ReservationConfirmed, p.ExpectedVersion).
		Updates(map[string]any{
			"status":              models.ReservationCancelled,
			"version":             p.ExpectedVersion + 1,
			"cancelled_by":        string(p.CancelledBy),
			"cancellation_reason": reason,
			"cancelled_at":        p.At,
			"updated_at":          p.At,
		})
	if res.Error != nil {
		return domain.StorageError("cancel reservation", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	current := r.GetReservation(ctx, p.ReservationID)
	if current.State() == domain.LookupFound &&
		current.Value().Status == models.ReservationCancelled {
		return domain.ErrAlreadyCancelled()
	}
	return httperr.ErrBusiness(httperr.CodeConcurrencyConflict)
}

func phoneVariants(phone string) []string {
	normalized := domain.NormalizePhone(phone)
	if normalized == phone {
		return []string{phone}
	}
	return []string{normalized, phone}
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
