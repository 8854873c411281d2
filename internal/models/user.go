package models

// User represents an account holder. The password column stores a bcrypt
// hash and is never serialized.
type User struct {
	Base
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`

	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Budgets    []Budget   `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
