package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "onepocket/internal/errors"
	"onepocket/internal/logger"
	"onepocket/internal/middleware"
	"onepocket/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if the auth gate did not run.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// parsePathID validates a UUID path parameter. Postgres rejects malformed
// uuid literals with a driver error, so bad IDs are caught here instead.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// respondWithError writes the API's {success:false, message} error envelope.
// AppErrors keep their status code and message; anything else is logged and
// returned as a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{"success": false, "message": appErr.Message})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"success": false,
		"message": apperrors.ErrInternalServer.Message,
	})
}
