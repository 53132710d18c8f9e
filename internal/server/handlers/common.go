package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/stockroom/internal/access"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// SessionKey is the gin context key under which the router's middleware
// stores the resolved access.Session.
const SessionKey = "stockroom.session"

func session(c *gin.Context) access.Session {
	if value, ok := c.Get(SessionKey); ok {
		if sess, ok := value.(access.Session); ok {
			return sess
		}
	}
	// No middleware in the chain; fall back to the read-only role.
	return access.Session{Role: access.RoleSupervisor}
}

// writeError maps the domain error taxonomy to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrInsufficientStock):
		status = http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
