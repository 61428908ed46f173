package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *ReservationGormRepository) ListDueReminders(
	ctx context.Context,
	fromMs int64,
	toMs int64,
) ([]models.Reservation, error) {

	var res []models.Reservation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reminder_sent_at IS NULL AND time_timestamp > ? AND time_timestamp <= ?",
			models.ReservationConfirmed, fromMs, toMs).
		Order("time_timestamp ASC").
		Find(&res).Error; err != nil {
		return nil, domain.StorageError("list due reminders", err)
	}
	return res, nil
}

// MarkReminderSent reports false when another run marked the row first.
func (r *ReservationGormRepository) MarkReminderSent(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND reminder_sent_at IS NULL", id).
		Update("reminder_sent_at", at)
	if res.Error != nil {
		return false, domain.StorageError("mark reminder sent", res.Error)
	}
	return res.RowsAffected > 0, nil
}
