package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/apperr"
	"taskboard/pkg/logger"
)

// respondError maps a service error to an HTTP response. Internal failures
// get a generic body; the real error only appears in the server log.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var v *apperr.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusBadRequest, gin.H{"message": v.Msg})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": apperr.ErrInvalidCredentials.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
	default:
		logger.WithTrace(c.Request.Context(), log).Error("Internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// requesterID reads the user id the auth middleware stored in the context.
func requesterID(c *gin.Context) (int, bool) {
	userID, ok := c.Get("user_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated"})
		return 0, false
	}
	return userID.(int), true
}
