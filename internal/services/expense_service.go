package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/models"
	"onepocket/internal/types"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// CreateExpense persists a new expense. The payment method defaults to upi
// and new expenses are never reimbursed.
func (s *expenseService) CreateExpense(
	userID string,
	amount float64,
	reason string,
	date time.Time,
	paymentMethod models.PaymentMethod,
	note string,
	reimbursable bool,
) (*models.Expense, error) {
	if amount <= 0 || reason == "" || date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide amount, reason, and date")
	}

	switch paymentMethod {
	case "":
		paymentMethod = models.PaymentMethodUPI
	case models.PaymentMethodCash, models.PaymentMethodCreditCard, models.PaymentMethodUPI:
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			`Invalid payment method. Must be "cash", "credit_card", or "upi"`)
	}

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Reason:        reason,
		Date:          date,
		PaymentMethod: paymentMethod,
		Note:          note,
		Reimbursable:  reimbursable,
		Reimbursed:    false,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses returns the user's active expenses, newest first.
// Reimbursed expenses are excluded. When month is non-nil only expenses
// dated within that calendar month are returned.
func (s *expenseService) GetUserExpenses(userID string, month *types.Month) ([]models.Expense, error) {
	query := s.db.Where("user_id = ? AND reimbursed = ?", userID, false)
	if month != nil {
		start, end := month.Bounds()
		query = query.Where("date BETWEEN ? AND ?", start, end)
	}

	var expenses []models.Expense
	if err := query.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// SearchExpensesByNote returns expenses whose note contains the query,
// case-insensitively, newest first.
func (s *expenseService) SearchExpensesByNote(userID, query string) ([]models.Expense, error) {
	if query == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide a search query")
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var expenses []models.Expense
	if err := s.db.
		Where("user_id = ? AND LOWER(note) LIKE ?", userID, pattern).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ReimburseExpense marks an expense as paid back. Reimbursing twice is an
// error so accidental double-submits are visible to the caller.
func (s *expenseService) ReimburseExpense(userID, expenseID string) (*models.Expense, error) {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if expense.Reimbursed {
		return nil, apperrors.ErrAlreadyReimbursed
	}

	if err := s.db.Model(expense).Update("reimbursed", true).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// DeleteExpense removes an expense after an ownership check.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwnedExpense fetches an expense by ID alone and then compares owners,
// so a foreign expense yields 403 rather than 404.
func (s *expenseService) getOwnedExpense(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if expense.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to access this expense")
	}
	return &expense, nil
}
