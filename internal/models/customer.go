package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer profile. Accounts are created by the auth service; this service
// only reads them.
type Customer struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null" json:"name"`
	Phone string    `gorm:"size:20;index" json:"phone"`

	// IsBlocked is the shop-wide block, independent of per-barber lists.
	IsBlocked bool `json:"isBlocked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
