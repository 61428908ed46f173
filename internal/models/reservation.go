package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	BarberID   uuid.UUID `gorm:"type:uuid;not null;index" json:"barberId"`
	ServiceID  uuid.UUID `gorm:"type:uuid;not null" json:"serviceId"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`

	CustomerName  string `gorm:"size:100" json:"customerName"`
	CustomerPhone string `gorm:"size:20" json:"customerPhone"`

	// DateTimestamp is shop-time midnight of the booked day, TimeTimestamp
	// the normalized slot start. Both are unix milliseconds.
	DateTimestamp int64 `gorm:"not null;index" json:"dateTimestamp"`
	TimeTimestamp int64 `gorm:"not null;index" json:"timeTimestamp"`

	DayName string `gorm:"size:10" json:"dayName"`
	DayNum  int    `json:"dayNum"`

	Status  string `gorm:"size:20;not null" json:"status"`
	Version int    `gorm:"not null" json:"version"`

	CancelledBy        *string    `gorm:"size:20" json:"cancelledBy"`
	CancellationReason *string    `gorm:"size:255" json:"cancellationReason"`
	CancelledAt        *time.Time `json:"cancelledAt"`

	Notes          string     `gorm:"size:500" json:"notes"`
	ReminderSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
