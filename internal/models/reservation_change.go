package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReservationChange is the append-only audit trail of a reservation.
type ReservationChange struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ReservationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"reservationId"`
	ChangedByType string     `gorm:"size:20;not null" json:"changedByType"`
	ChangedByID   *uuid.UUID `gorm:"type:uuid" json:"changedById"`
	ChangeType    string     `gorm:"size:30;not null" json:"changeType"`

	OldValues string `gorm:"type:text" json:"oldValues"`
	NewValues string `gorm:"type:text" json:"newValues"`
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *ReservationChange) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
