package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/models"
	"onepocket/internal/services"
	"onepocket/internal/types"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
type CreateExpenseRequest struct {
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	Reason        string    `json:"reason" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	PaymentMethod string    `json:"paymentMethod" binding:"omitempty,payment_method"`
	Note          string    `json:"note"`
	Reimbursable  bool      `json:"reimbursable"`
}

// GetExpenses lists the user's active expenses, newest first, optionally
// restricted to one calendar month.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var month *types.Month
	if v := c.Query("month"); v != "" {
		m, err := types.ParseMonth(v)
		if err != nil {
			respondWithError(c, apperrors.ErrInvalidMonth)
			return
		}
		month = &m
	}

	expenses, err := h.expenseService.GetUserExpenses(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// CreateExpense records a new expense for the user.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.CreateExpense(
		userID, req.Amount, req.Reason, req.Date,
		models.PaymentMethod(req.PaymentMethod), req.Note, req.Reimbursable,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": expense})
}

// SearchExpenses finds expenses whose note contains the query string.
func (h *ExpenseHandler) SearchExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.SearchExpensesByNote(userID, c.Query("query"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// ReimburseExpense marks one of the user's expenses as paid back.
func (h *ExpenseHandler) ReimburseExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.ReimburseExpense(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": expense})
}

// DeleteExpense removes one of the user's expenses.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Expense deleted successfully"})
}
