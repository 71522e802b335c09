package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"uchef/internal/checkout"
	"uchef/internal/domain"
	orderrepo "uchef/internal/repository/order"
	mealsvc "uchef/internal/service/meal"
	ordersvc "uchef/internal/service/order"
	restaurantsvc "uchef/internal/service/restaurant"
	reviewsvc "uchef/internal/service/review"
	usersvc "uchef/internal/service/user"
)

// respondError maps service errors onto HTTP statuses. Anything unmapped is
// a 500 with the error surfaced verbatim.
func respondError(c *gin.Context, err error) {
	var unavailable *checkout.UnavailableError
	if errors.As(err, &unavailable) {
		c.JSON(http.StatusConflict, gin.H{
			"message":                 err.Error(),
			"is_available":            false,
			"unavailable_ingredients": unavailable.Ingredients,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, usersvc.ErrInvalidCredentials), errors.Is(err, usersvc.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, restaurantsvc.ErrNotOwner),
		errors.Is(err, mealsvc.ErrNotOwner),
		errors.Is(err, ordersvc.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, restaurantsvc.ErrAlreadyRegistered),
		errors.Is(err, reviewsvc.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, orderrepo.ErrInsufficientStock),
		errors.Is(err, orderrepo.ErrStaleStatus),
		errors.Is(err, ordersvc.ErrInvalidTransition),
		errors.Is(err, checkout.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalid),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoRestaurant),
		errors.Is(err, ordersvc.ErrReasonRequired),
		errors.Is(err, restaurantsvc.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}
