package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// --------------------------------------------------
// Work days
// --------------------------------------------------

func (r *ReservationGormRepository) ListWorkDays(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.WorkDay, error) {

	var days []models.WorkDay
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Find(&days).Error; err != nil {
		return nil, domain.StorageError("list work days", err)
	}
	return days, nil
}

// ReplaceWorkDays swaps the whole week of a barber in one transaction.
func (r *ReservationGormRepository) ReplaceWorkDays(
	ctx context.Context,
	barberID uuid.UUID,
	days []models.WorkDay,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkDay{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		for i := range days {
			days[i].BarberID = barberID
		}
		return tx.Create(&days).Error
	})
	if err != nil {
		return domain.StorageError("replace work days", err)
	}
	return nil
}
