package models

import (
	"time"

	"onepocket/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. JSON field names are
// camelCase across the API, matching the client's wire format.
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
