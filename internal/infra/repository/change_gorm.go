package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Reservation changes (audit)
// --------------------------------------------------

func (r *ReservationGormRepository) InsertChange(
	ctx context.Context,
	change *models.ReservationChange,
) error {
	if err := r.db.WithContext(ctx).Create(change).Error; err != nil {
		return domain.StorageError("insert reservation change", err)
	}
	return nil
}

func (r *ReservationGormRepository) ListChanges(
	ctx context.Context,
	reservationID uuid.UUID,
	limit int,
	offset int,
) ([]models.ReservationChange, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.ReservationChange{}).
		Where("reservation_id = ?", reservationID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, domain.StorageError("count reservation changes", err)
	}

	var changes []models.ReservationChange
	if err := q.
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&changes).Error; err != nil {
		return nil, 0, domain.StorageError("list reservation changes", err)
	}
	return changes, total, nil
}
