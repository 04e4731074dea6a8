package http

import (
	"errors"
	"fmt"
	"net/http"

	"onlineshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

func invalidOrderID(cause error) error {
	return fmt.Errorf("%w: %w", errs.ErrInvalidOrderID, cause)
}

func invalidCustomerID(cause error) error {
	return fmt.Errorf("%w: %w", errs.ErrInvalidCustomerID, cause)
}

func invalidProductID(cause error) error {
	return fmt.Errorf("%w: %w", errs.ErrInvalidProductID, cause)
}

// statusOf maps a use case error to an HTTP status. The first matching rule wins.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidOrderID) && errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidOperation):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidProducts),
		errors.Is(err, errs.ErrInvalidProductID),
		errors.Is(err, errs.ErrInvalidCustomerID),
		errors.Is(err, errs.ErrInvalidOrderID):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotEnoughStock),
		errors.Is(err, errs.ErrOrderCanceled),
		errors.Is(err, errs.ErrOrderAlreadyDelivered),
		errors.Is(err, errs.ErrOrderNotDeliveredYet),
		errors.Is(err, errs.ErrOrderAlreadyReturned):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error body. Internal errors are logged and their text is not
// sent to the client.
func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	status := statusOf(err)
	entry := s.logger.WithError(err).WithField("operation", operation)

	message := err.Error()
	if status == http.StatusInternalServerError {
		entry.Error("request failed")
		message = http.StatusText(status)
	} else {
		entry.Warn("request rejected")
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}
