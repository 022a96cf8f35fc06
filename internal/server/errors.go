package server

import (
	"errors"
	"net/http"

	dogdomain "github.com/freshbowl/freshbowl/internal/dog/domain"
	"github.com/freshbowl/freshbowl/internal/nutrition"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	"github.com/freshbowl/freshbowl/internal/pricing"
	"github.com/freshbowl/freshbowl/internal/providers/payment"
	recipedomain "github.com/freshbowl/freshbowl/internal/recipe/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, pricing.ErrUnresolved):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "pricing_unresolved",
			Message: "could not determine plan pricing",
		}
	case errors.Is(err, payment.ErrLookupFailed):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "payment processor unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, plandomain.ErrNoRecipes),
		errors.Is(err, orderdomain.ErrInvalidEvent),
		errors.Is(err, nutrition.ErrInvalidWeight),
		errors.Is(err, nutrition.ErrInvalidActivity),
		errors.Is(err, nutrition.ErrInvalidPlanType),
		errors.Is(err, nutrition.ErrInvalidTopperPercent),
		errors.Is(err, nutrition.ErrNoRecipes):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, plandomain.ErrNotFound),
		errors.Is(err, plandomain.ErrDogNotFound),
		errors.Is(err, plandomain.ErrRecipeNotFound),
		errors.Is(err, dogdomain.ErrNotFound),
		errors.Is(err, recipedomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
