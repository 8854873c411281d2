package services

import (
	"time"

	"onepocket/internal/models"
	"onepocket/internal/types"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string) (*models.Category, error)
	GetUserCategories(userID string) ([]models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// BudgetUpdate holds the optional fields of a budget update. Nil fields are
// left unchanged.
type BudgetUpdate struct {
	Category *string
	Amount   *float64
	Month    *string
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, category string, amount float64, month string) (*models.Budget, error)
	GetUserBudgets(userID, month string) ([]models.Budget, error)
	UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	CreateExpense(userID string, amount float64, reason string, date time.Time, paymentMethod models.PaymentMethod, note string, reimbursable bool) (*models.Expense, error)
	GetUserExpenses(userID string, month *types.Month) ([]models.Expense, error)
	SearchExpensesByNote(userID, query string) ([]models.Expense, error)
	ReimburseExpense(userID, expenseID string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// CategorySpend is one slice of a month's category breakdown.
type CategorySpend struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// BudgetComparison contrasts a month's budget with what was actually spent
// in its category. Difference is budget minus actual, so overspending is
// negative.
type BudgetComparison struct {
	Category       string  `json:"category"`
	BudgetAmount   float64 `json:"budgetAmount"`
	ActualSpent    float64 `json:"actualSpent"`
	Difference     float64 `json:"difference"`
	PercentageUsed float64 `json:"percentageUsed"`
}

// MonthlySummary aggregates one month of spending for a user.
type MonthlySummary struct {
	Month             string             `json:"month"`
	TotalSpent        float64            `json:"totalSpent"`
	TotalReimbursable float64            `json:"totalReimbursable"`
	CategoryBreakdown []CategorySpend    `json:"categoryBreakdown"`
	BudgetComparisons []BudgetComparison `json:"budgetComparisons"`
}

// MonthComparison is one month's totals in a multi-month trend series.
type MonthComparison struct {
	Month             string  `json:"month"`
	Label             string  `json:"label"`
	TotalSpent        float64 `json:"totalSpent"`
	TotalReimbursable float64 `json:"totalReimbursable"`
}

// HistoryServicer defines the contract for the reporting component. It only
// reads from storage; all aggregation happens in memory per request.
type HistoryServicer interface {
	ListMonths(userID string) ([]string, error)
	GetMonthlySummary(userID string, month types.Month) (*MonthlySummary, error)
	GetMonthlyComparison(userID string, count int) ([]MonthComparison, error)
}
