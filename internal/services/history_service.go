package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/models"
	"onepocket/internal/types"
)

// Bounds for the comparison series length.
const (
	MinComparisonMonths     = 1
	MaxComparisonMonths     = 24
	DefaultComparisonMonths = 6
)

// historyService implements the read-only reporting component. Everything is
// computed in memory over data fetched fresh per request; nothing is cached.
type historyService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryServicer.
func NewHistoryService(db *gorm.DB) HistoryServicer {
	return &historyService{db: db}
}

// ListMonths returns the distinct calendar months that have expense data for
// the user, most recent first.
func (s *historyService) ListMonths(userID string) ([]string, error) {
	var expenses []models.Expense
	if err := s.db.Select("date").Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	seen := make(map[string]bool)
	months := []string{}
	for _, expense := range expenses {
		month := types.MonthOf(expense.Date).String()
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// GetMonthlySummary aggregates one month of expenses into spend totals, a
// category breakdown, and budget-vs-actual comparisons.
//
// Expenses split into two sets: the real spend set (neither reimbursable nor
// reimbursed) and the reimbursable set (flagged but not yet paid back).
// Reimbursed expenses count towards neither.
func (s *historyService) GetMonthlySummary(userID string, month types.Month) (*MonthlySummary, error) {
	start, end := month.Bounds()

	var expenses []models.Expense
	if err := s.db.
		Where("user_id = ? AND reimbursed = ? AND date BETWEEN ? AND ?", userID, false, start, end).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalSpent, totalReimbursable float64
	categoryTotals := make(map[string]float64)
	for _, expense := range expenses {
		if expense.Reimbursable {
			totalReimbursable += expense.Amount
			continue
		}
		totalSpent += expense.Amount
		categoryTotals[expense.Reason] += expense.Amount
	}

	breakdown := make([]CategorySpend, 0, len(categoryTotals))
	for category, amount := range categoryTotals {
		breakdown = append(breakdown, CategorySpend{
			Category:   category,
			Amount:     amount,
			Percentage: percentageOf(amount, totalSpent),
		})
	}
	// Largest categories first; name breaks ties so output is deterministic.
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND month = ?", userID, month.String()).Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	comparisons := make([]BudgetComparison, 0, len(budgets))
	for _, budget := range budgets {
		actual := categoryTotals[budget.Category]
		comparisons = append(comparisons, BudgetComparison{
			Category:       budget.Category,
			BudgetAmount:   budget.Amount,
			ActualSpent:    actual,
			Difference:     budget.Amount - actual,
			PercentageUsed: percentageOf(actual, budget.Amount),
		})
	}

	return &MonthlySummary{
		Month:             month.String(),
		TotalSpent:        round2(totalSpent),
		TotalReimbursable: round2(totalReimbursable),
		CategoryBreakdown: breakdown,
		BudgetComparisons: comparisons,
	}, nil
}

// GetMonthlyComparison builds totals for the most recent count calendar
// months ending at the current month, oldest first. Filtering the full
// expense set once per month is O(months x expenses), fine for the data
// volumes of a single user.
func (s *historyService) GetMonthlyComparison(userID string, count int) ([]MonthComparison, error) {
	if count < MinComparisonMonths || count > MaxComparisonMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be between 1 and 24")
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND reimbursed = ?", userID, false).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	months := types.MonthOf(time.Now()).LastMonths(count)
	comparisons := make([]MonthComparison, 0, len(months))
	for _, month := range months {
		start, end := month.Bounds()

		var totalSpent, totalReimbursable float64
		for _, expense := range expenses {
			if expense.Date.Before(start) || expense.Date.After(end) {
				continue
			}
			if expense.Reimbursable {
				totalReimbursable += expense.Amount
			} else {
				totalSpent += expense.Amount
			}
		}

		comparisons = append(comparisons, MonthComparison{
			Month:             month.String(),
			Label:             month.Label(),
			TotalSpent:        round2(totalSpent),
			TotalReimbursable: round2(totalReimbursable),
		})
	}

	return comparisons, nil
}

// percentageOf returns part/whole as a percentage rounded to one decimal,
// or 0 when the whole is zero.
func percentageOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	ratio := decimal.NewFromFloat(part).Div(decimal.NewFromFloat(whole))
	result, _ := ratio.Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return result
}

// round2 rounds an amount to two decimal places.
func round2(amount float64) float64 {
	result, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return result
}
