package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/services"
	"onepocket/internal/types"
)

// HistoryHandler serves the read-only reporting endpoints.
type HistoryHandler struct {
	historyService services.HistoryServicer
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService services.HistoryServicer) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// GetMonths lists the months that have expense data, most recent first.
func (h *HistoryHandler) GetMonths(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months, err := h.historyService.ListMonths(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, months)
}

// GetMonthlySummary returns one month's totals, category breakdown, and
// budget comparisons.
func (h *HistoryHandler) GetMonthlySummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	monthStr := c.Query("month")
	if monthStr == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please provide month in YYYY-MM format"))
		return
	}

	month, err := types.ParseMonth(monthStr)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidMonth)
		return
	}

	summary, err := h.historyService.GetMonthlySummary(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMonthlyComparison returns a trend series for the most recent N months,
// N defaulting to six.
func (h *HistoryHandler) GetMonthlyComparison(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	count := services.DefaultComparisonMonths
	if v := c.Query("months"); v != "" {
		count, err = strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be a number"))
			return
		}
	}

	comparison, err := h.historyService.GetMonthlyComparison(userID, count)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, comparison)
}
