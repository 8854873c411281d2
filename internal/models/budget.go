package models

// Budget is a spending ceiling for one category in one calendar month.
// A user has at most one budget per (category, month).
type Budget struct {
	Base
	UserID   string  `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_category_month" json:"userId"`
	Category string  `gorm:"not null;uniqueIndex:idx_budgets_user_category_month" json:"category"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Month    string  `gorm:"size:7;not null;uniqueIndex:idx_budgets_user_category_month" json:"month"`
}
