package http

import (
	"errors"
	"net/http"

	"creditos-backend/internal/domain/amortization"
	domainCredit "creditos-backend/internal/domain/credit"
	domainPayment "creditos-backend/internal/domain/payment"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	codeInvalidBody       = "invalid_body"
	codeValidation        = "validation_failed"
	codeInvalidInput      = "invalid_input"
	codeNotFound          = "not_found"
	codeInvalidTransition = "invalid_transition"
	codeAlreadyProcessed  = "already_processed"
	codeInternal          = "internal"
)

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: codeInvalidBody})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Code:    codeValidation,
		Details: ToFieldErrors(err),
	})
}

// Map domain errors → HTTP codes
func domainError(c echo.Context, log *zap.Logger, err error) error {
	var ite *domainCredit.InvalidTransitionError
	switch {
	case errors.As(err, &ite):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error: err.Error(),
			Code:  codeInvalidTransition,
			Meta:  map[string]any{"estado": ite.Status, "accion": ite.Action},
		})
	case errors.Is(err, domainCredit.ErrNotFound), errors.Is(err, domainPayment.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: codeNotFound})
	case errors.Is(err, domainPayment.ErrAlreadyProcessed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: codeAlreadyProcessed})
	case errors.Is(err, domainCredit.ErrInvalidInput),
		errors.Is(err, domainPayment.ErrInvalidInput),
		errors.Is(err, amortization.ErrInvalidTerms):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: codeInvalidInput})
	}
	log.Error("request failed",
		zap.String("method", c.Request().Method),
		zap.String("path", c.Path()),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: codeInternal})
}
