package http

import (
	"errors"
	"log"
	"net/http"

	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/domain/identity"

	"github.com/labstack/echo/v4"
)

// Map domain errors → HTTP codes
func writeError(c echo.Context, err error) error {
	code, msg := classify(err)
	if code >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(code, ErrorResponse{Error: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidationFailed):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAmountOutOfRange):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrApplicationConflict):
		return http.StatusConflict, domain.ErrApplicationConflict.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, domain.ErrInvalidTransition.Error()
	case errors.Is(err, domain.ErrNotApproved):
		return http.StatusConflict, domain.ErrNotApproved.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrRecordTooLarge):
		return http.StatusRequestEntityTooLarge, domain.ErrRecordTooLarge.Error()
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, domain.ErrStorageUnavailable.Error()

	case errors.Is(err, identity.ErrInvalidPhone), errors.Is(err, identity.ErrInvalidOTP):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, identity.ErrInvalidSession),
		errors.Is(err, identity.ErrSessionExpired),
		errors.Is(err, identity.ErrInvalidCredential):
		return http.StatusUnauthorized, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
