package models

import "time"

// PaymentMethod represents how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodUPI        PaymentMethod = "upi"
)

// Expense is a single spend entry. Reason doubles as the category label for
// reporting. Reimbursable marks an expense as expected to be paid back;
// Reimbursed marks it as settled, which removes it from listings and totals.
type Expense struct {
	Base
	UserID        string        `gorm:"type:uuid;not null;index" json:"userId"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Reason        string        `gorm:"not null" json:"reason"`
	Date          time.Time     `gorm:"not null;index" json:"date"`
	PaymentMethod PaymentMethod `gorm:"default:upi" json:"paymentMethod"`
	Note          string        `gorm:"default:''" json:"note"`
	Reimbursable  bool          `gorm:"default:false" json:"reimbursable"`
	Reimbursed    bool          `gorm:"default:false" json:"reimbursed"`
}
