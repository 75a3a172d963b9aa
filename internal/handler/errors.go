package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/internal/domain"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/response"
)

// handleError maps domain errors to HTTP responses. Anything that is
// not a known domain error becomes an opaque 500.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGroupFull):
		response.Conflict(c, "GROUP_FULL", "This group is already full")
	case errors.Is(err, domain.ErrAlreadyCancelled):
		response.Conflict(c, "ALREADY_CANCELLED", "This registration is already cancelled")
	case errors.Is(err, domain.ErrAdminAlreadyExists):
		response.Conflict(c, "ADMIN_EXISTS", "An admin with this email already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, domain.ErrInvalidToken):
		response.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, domain.ErrEventInactive):
		response.Error(c, http.StatusNotFound, "EVENT_INACTIVE", "This event is no longer available")
	case domain.IsNotFoundError(err):
		response.NotFound(c, "Not found")
	case domain.IsValidationError(err):
		response.BadRequest(c, err.Error())
	default:
		logger.Get().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c)
	}
}
