package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"onepocket/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithName(t, db, fmt.Sprintf("user%d", nextID()))
}

// CreateTestUserWithName creates a user with the given username.
func CreateTestUserWithName(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: userID,
		Name:   name,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget for the given category and month.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category string, amount float64, month string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Month:    month,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestExpense creates a plain (non-reimbursable) expense.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, amount float64, reason string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Reason:        reason,
		Date:          date,
		PaymentMethod: models.PaymentMethodUPI,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestReimbursableExpense creates an expense flagged for reimbursement.
func CreateTestReimbursableExpense(t *testing.T, db *gorm.DB, userID string, amount float64, reason string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Reason:        reason,
		Date:          date,
		PaymentMethod: models.PaymentMethodUPI,
		Reimbursable:  true,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test reimbursable expense: %v", err)
	}
	return expense
}

// MarkReimbursed flags an existing expense as reimbursed.
func MarkReimbursed(t *testing.T, db *gorm.DB, expense *models.Expense) {
	t.Helper()

	if err := db.Model(expense).Update("reimbursed", true).Error; err != nil {
		t.Fatalf("failed to mark expense reimbursed: %v", err)
	}
}
