package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBarber = "barber"
	RoleAdmin  = "admin"
)

type Barber struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null" json:"name"`
	Phone string    `gorm:"size:20" json:"phone"`
	Role  string    `gorm:"size:20;not null" json:"role"`

	// IsPaused stops new bookings without hiding the barber.
	IsPaused bool `json:"isPaused"`
	IsActive bool `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Barber) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// BarberBookingSettings are customer-facing booking policy knobs. Zero means
// "no limit" for each field.
type BarberBookingSettings struct {
	BarberID uuid.UUID `gorm:"type:uuid;primaryKey" json:"barberId"`

	MaxBookingDaysAhead   int `json:"maxBookingDaysAhead"`
	MinHoursBeforeBooking int `json:"minHoursBeforeBooking"`
	MinCancelHours        int `json:"minCancelHours"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type BlockedCustomer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_blocked_barber_phone" json:"barberId"`
	Phone    string    `gorm:"size:20;not null;uniqueIndex:uq_blocked_barber_phone" json:"phone"`
	Reason   string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"createdAt"`
}

func (b *BlockedCustomer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
