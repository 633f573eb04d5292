package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpark/services"
)

// APIResponse is the envelope shared by every endpoint.
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse returns a successful reply.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse returns a failed reply with an explicit code.
func ErrorResponse(c *gin.Context, statusCode int, message, err, code string) {
	c.JSON(statusCode, APIResponse{
		Status:  false,
		Message: message,
		Error:   err,
		Code:    code,
	})
}

// ServiceError maps a service failure to its HTTP status and notice
// code. Every failure here is recoverable: the client shows a
// dismissable notice and the ledger stays in its prior state.
func ServiceError(c *gin.Context, message string, err error) {
	status := http.StatusInternalServerError
	code := "ERR_INTERNAL"
	switch {
	case errors.Is(err, services.ErrValidation):
		status, code = http.StatusBadRequest, "ERR_VALIDATION"
	case errors.Is(err, services.ErrSlotUnavailable):
		status, code = http.StatusConflict, "ERR_SLOT_UNAVAILABLE"
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, "ERR_NOT_FOUND"
	case errors.Is(err, services.ErrInvalidTransition):
		status, code = http.StatusConflict, "ERR_INVALID_TRANSITION"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "ERR_AUTH"
	case errors.Is(err, services.ErrEmailInUse):
		status, code = http.StatusBadRequest, "ERR_AUTH"
	case errors.Is(err, services.ErrTooManyAttempts):
		status, code = http.StatusTooManyRequests, "ERR_AUTH"
	case errors.Is(err, services.ErrPermissionDenied):
		status, code = http.StatusForbidden, "ERR_PERMISSION_DENIED"
	}
	ErrorResponse(c, status, message, err.Error(), code)
}
