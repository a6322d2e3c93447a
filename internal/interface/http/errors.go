package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/timbr/internal/application"
	"github.com/oksasatya/timbr/pkg/response"
	"github.com/oksasatya/timbr/pkg/validation"
)

const (
	msgInvalidInput = "Invalid input"
	msgSwipeFailed  = "Invalid input or already swiped"
	msgInternal     = "Internal server error"
)

// writeError maps service errors onto status codes and {"error": ...} bodies.
// Anything unrecognised is logged and reported as a 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, msgInvalidInput)
	case errors.Is(err, application.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, application.ErrDuplicateSwipe):
		response.Error(c, http.StatusBadRequest, msgSwipeFailed)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, "Forbidden")
	case errors.Is(err, application.ErrBuyerProfileNotFound):
		response.Error(c, http.StatusNotFound, "Buyer profile not found")
	case errors.Is(err, application.ErrAgentNotFound):
		response.Error(c, http.StatusNotFound, "Agent not found")
	case errors.Is(err, application.ErrNotFound):
		response.Error(c, http.StatusNotFound, "Not found")
	case errors.Is(err, application.ErrStorageUnavailable):
		response.Error(c, http.StatusServiceUnavailable, "Image storage not configured")
	default:
		_ = c.Error(err)
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("unhandled error")
		response.Error(c, http.StatusInternalServerError, msgInternal)
	}
}

// badInput reports a binding failure as a plain 400 and logs the field details.
func badInput(c *gin.Context, logger *logrus.Logger, err error, message string) {
	logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"details":    validation.ToDetails(err),
	}).Debug("request rejected")
	response.Error(c, http.StatusBadRequest, message)
}
