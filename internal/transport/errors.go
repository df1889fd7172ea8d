package transport

import (
	"errors"
	"net/http"

	"gomarket/internal/middleware"
	"gomarket/internal/repository"
	"gomarket/internal/service"

	"go.uber.org/zap"
)

// respondServiceError maps service and repository errors onto the HTTP error
// envelope. Unexpected errors become a 500 and are logged with their cause;
// expected ones are surfaced with their mapped status code.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "user not found, invalid id")
	case errors.Is(err, repository.ErrUserAlreadyExists):
		middleware.RespondWithError(w, http.StatusBadRequest, "user with this email already exists")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found, invalid id")
	case errors.Is(err, repository.ErrCategoryNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "category not found, invalid id")
	case errors.Is(err, repository.ErrCartNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "you do not have a cart")
	case errors.Is(err, repository.ErrCartItemNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product does not exist in your cart")
	case errors.Is(err, repository.ErrOrderNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "order not found, invalid id")
	case errors.Is(err, repository.ErrInsufficientStock):
		middleware.RespondWithError(w, http.StatusBadRequest, "insufficient stock for a product in the cart")
	case errors.Is(err, service.ErrQuantityExceedsStock):
		middleware.RespondWithError(w, http.StatusBadRequest, "the requested quantity exceeds available stock")
	case errors.Is(err, service.ErrProductAlreadyInCart):
		middleware.RespondWithError(w, http.StatusMethodNotAllowed, "product is already in your cart, you cannot add it again")
	case errors.Is(err, service.ErrCartItemAlreadyRemoved):
		middleware.RespondWithError(w, http.StatusBadRequest, "the product has been removed before")
	case errors.Is(err, service.ErrCartEmpty):
		middleware.RespondWithError(w, http.StatusBadRequest, "no products in the cart")
	case errors.Is(err, service.ErrNotOwner):
		middleware.RespondWithError(w, http.StatusUnauthorized, "you are not the owner of this resource")
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid credentials")
	default:
		logger.Error("Unexpected service error", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
