package http

import (
	"errors"
	"net/http"

	"asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/request"
	productuc "asset-custody/internal/usecase/product"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Map domain errors → HTTP codes
func respondError(c echo.Context, err error) error {
	var conflict *product.ConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: conflict.Error(),
			Details: []FieldError{
				{Field: "assignments", Message: itoa(conflict.Assignments)},
				{Field: "invoice_lines", Message: itoa(conflict.InvoiceLines)},
			},
		})
	case errors.Is(err, product.ErrNotFound),
		errors.Is(err, assignment.ErrNotFound),
		errors.Is(err, request.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, assignment.ErrActiveExists),
		errors.Is(err, assignment.ErrAlreadyReturned),
		errors.Is(err, request.ErrAlreadyDecided):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, assignment.ErrHolderRequired),
		errors.Is(err, assignment.ErrInvalidStatus),
		errors.Is(err, product.ErrInvalidStatus),
		errors.Is(err, productuc.ErrNameRequired),
		errors.Is(err, request.ErrInvalidKind),
		errors.Is(err, request.ErrInvalidStatus),
		errors.Is(err, request.ErrTitleRequired),
		errors.Is(err, request.ErrRequesterNotFound),
		errors.Is(err, request.ErrApproverNotFound):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	}
	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request().Method,
		"path":   c.Path(),
	}).Error("unhandled error")
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func bindAndValidate(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(dst); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
