package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BreakoutSingle    = "single"
	BreakoutDateRange = "date_range"
	BreakoutRecurring = "recurring"
)

// WorkDay holds a barber's hours for one weekday. Nil start/end means the
// whole day.
type WorkDay struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_work_days_barber_day" json:"barberId"`
	DayOfWeek string    `gorm:"size:10;not null;uniqueIndex:uq_work_days_barber_day" json:"dayOfWeek"`
	IsWorking bool      `json:"isWorking"`
	StartTime *string   `gorm:"size:8" json:"startTime"`
	EndTime   *string   `gorm:"size:8" json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (w *WorkDay) BeforeCreate(tx *gorm.DB) error {
	ensureID(&w.ID)
	return nil
}

// RecurringAppointment reserves the same weekday and time every week.
type RecurringAppointment struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"barberId"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null" json:"customerId"`
	ServiceID  *uuid.UUID `gorm:"type:uuid" json:"serviceId"`
	DayOfWeek  string     `gorm:"size:10;not null" json:"dayOfWeek"`
	TimeSlot   string     `gorm:"size:8;not null" json:"timeSlot"`
	IsActive   bool       `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *RecurringAppointment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

// Breakout is a blocked interval [StartTime, EndTime). Which fields decide
// the applicable days depends on BreakoutType.
type Breakout struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID     uuid.UUID `gorm:"type:uuid;not null;index" json:"barberId"`
	BreakoutType string    `gorm:"size:20;not null" json:"breakoutType"`
	StartTime    string    `gorm:"size:8;not null" json:"startTime"`
	EndTime      *string   `gorm:"size:8" json:"endTime"`
	StartDate    *string   `gorm:"size:10" json:"startDate"`
	EndDate      *string   `gorm:"size:10" json:"endDate"`
	DayOfWeek    *string   `gorm:"size:10" json:"dayOfWeek"`
	Reason       string    `gorm:"size:255" json:"reason"`
	IsActive     bool      `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Breakout) BeforeCreate(tx *gorm.DB) error {
	ensureID(&b.ID)
	return nil
}

// BarberClosure is an inclusive YYYY-MM-DD range where one barber is away.
type BarberClosure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID  uuid.UUID `gorm:"type:uuid;not null;index" json:"barberId"`
	StartDate string    `gorm:"size:10;not null" json:"startDate"`
	EndDate   string    `gorm:"size:10;not null" json:"endDate"`
	Reason    *string   `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *BarberClosure) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// ShopClosure closes the whole shop for an inclusive date range.
type ShopClosure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StartDate string    `gorm:"size:10;not null" json:"startDate"`
	EndDate   string    `gorm:"size:10;not null" json:"endDate"`
	Reason    *string   `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *ShopClosure) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
