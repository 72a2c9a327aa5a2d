package web

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/chickentitle/titlehall/titlehall/database/repositories"
	"github.com/chickentitle/titlehall/titlehall/economy"
	"github.com/chickentitle/titlehall/titlehall/services"
)

// APIResponse is the envelope every endpoint returns.
type APIResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the machine-readable error code and detail.
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data any, message string) error {
	return SendJSON(c, http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data any, message string) error {
	return SendJSON(c, http.StatusCreated, APIResponse{Success: true, Data: data, Message: message})
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message, Details: details},
	})
}

// SendDomainError maps a service error onto its HTTP status and code.
// Unrecognized errors become 500s with the detail withheld.
func SendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case services.IsValidation(err):
		return SendError(c, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotAuthenticated):
		return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
	case errors.Is(err, services.ErrPermissionDenied):
		return SendError(c, http.StatusForbidden, "FORBIDDEN", err.Error(), nil)
	case errors.Is(err, economy.ErrUnknownUnlock), repositories.IsNotFound(err):
		return SendError(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrDuplicateAccount),
		errors.Is(err, services.ErrAlreadyAuthenticated),
		errors.Is(err, economy.ErrAlreadyOwned),
		errors.Is(err, economy.ErrNotOwned),
		repositories.IsConflict(err):
		return SendError(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case economy.IsInsufficientFunds(err):
		return SendError(c, http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", err.Error(), nil)
	default:
		return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal error", nil)
	}
}
