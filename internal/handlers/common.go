// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/inventra/inventra-backend/internal/services"
	"github.com/inventra/inventra-backend/internal/utils"
)

// handleServiceError maps service-layer sentinel errors onto the response
// envelope. Anything unrecognized is logged and reported as internal.
func handleServiceError(c *gin.Context, err error, resource string) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrDuplicateName):
		utils.ConflictResponse(c, "A record with this name already exists")
	case errors.Is(err, services.ErrDuplicateSKU):
		utils.ConflictResponse(c, "A product with this SKU already exists")
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, "An account with this email already exists")
	case errors.Is(err, services.ErrSentinelCategory):
		utils.ForbiddenResponse(c, "The Uncategorized category cannot be modified or deleted")
	case errors.Is(err, services.ErrNoProductsSelected):
		utils.BadRequestResponse(c, "No products selected", nil)
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, "Quantity must be between 0 and 10000", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, services.ErrEmailNotVerified):
		utils.ForbiddenResponse(c, "Please verify your email address before logging in")
	case errors.Is(err, services.ErrInvalidToken):
		utils.UnauthorizedResponse(c, "Invalid or expired token")
	case errors.Is(err, services.ErrAIUnavailable):
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "AI_UNAVAILABLE", "AI assistance is currently unavailable", nil)
	default:
		logrus.WithError(err).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "")
	}
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}
