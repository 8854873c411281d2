package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/models"
	"onepocket/internal/types"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a budget for a (category, month) pair. A user may
// have at most one budget per category per month.
func (s *budgetService) CreateBudget(userID, category string, amount float64, month string) (*models.Budget, error) {
	if category == "" || month == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide category, amount, and month")
	}
	if _, err := types.ParseMonth(month); err != nil {
		return nil, apperrors.ErrInvalidMonth
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be a positive number")
	}

	var count int64
	if err := s.db.Model(&models.Budget{}).
		Where("user_id = ? AND category = ? AND month = ?", userID, category, month).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Month:    month,
	}

	if err := s.db.Create(budget).Error; err != nil {
		// The pre-check does not close the race window; the unique index on
		// (user_id, category, month) does, and the loser gets the same error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrBudgetExists
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetUserBudgets returns the user's budgets, newest-created first. When
// month is non-empty only that month's budgets are returned.
func (s *budgetService) GetUserBudgets(userID, month string) ([]models.Budget, error) {
	query := s.db.Where("user_id = ?", userID)
	if month != "" {
		if _, err := types.ParseMonth(month); err != nil {
			return nil, apperrors.ErrInvalidMonth
		}
		query = query.Where("month = ?", month)
	}

	var budgets []models.Budget
	if err := query.Order("created_at DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

// UpdateBudget applies a partial update after ownership and uniqueness
// checks. Last writer wins; there is no optimistic versioning.
func (s *budgetService) UpdateBudget(userID, budgetID string, update BudgetUpdate) (*models.Budget, error) {
	budget, err := s.getOwnedBudget(userID, budgetID)
	if err != nil {
		return nil, err
	}

	if update.Month != nil {
		if _, err := types.ParseMonth(*update.Month); err != nil {
			return nil, apperrors.ErrInvalidMonth
		}
	}
	if update.Amount != nil && *update.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be a positive number")
	}

	// Moving the budget to another (category, month) slot must not collide
	// with an existing budget other than this one.
	if update.Category != nil || update.Month != nil {
		checkCategory := budget.Category
		if update.Category != nil {
			checkCategory = *update.Category
		}
		checkMonth := budget.Month
		if update.Month != nil {
			checkMonth = *update.Month
		}

		var count int64
		if err := s.db.Model(&models.Budget{}).
			Where("id <> ? AND user_id = ? AND category = ? AND month = ?", budget.ID, userID, checkCategory, checkMonth).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.ErrBudgetExists
		}
	}

	updates := make(map[string]interface{})
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Amount != nil {
		updates["amount"] = *update.Amount
	}
	if update.Month != nil {
		updates["month"] = *update.Month
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrBudgetExists
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// DeleteBudget removes a budget after an ownership check.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.getOwnedBudget(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// getOwnedBudget fetches a budget by ID alone and then compares owners, so
// callers can distinguish a missing budget (404) from someone else's (403).
func (s *budgetService) getOwnedBudget(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, "id = ?", budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if budget.UserID != userID {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Not authorized to access this budget")
	}
	return &budget, nil
}
