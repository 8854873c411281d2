package models

// Category is a user-defined expense grouping. Names are unique per user,
// case-insensitively; the index on (user_id, lower(name)) lives in the
// migrations because gorm tags cannot express expression indexes.
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"userId"`
	Name   string `gorm:"not null" json:"name"`
}
