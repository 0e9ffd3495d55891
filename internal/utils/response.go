package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, "notfound")
}

// BadRequestResponse sends a 400 response for input the handler could not use
func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusBadRequest, "validation")
}

// StoreErrorResponse maps a store error to its HTTP status: validation 400,
// not found 404, anything else 500.
func StoreErrorResponse(c *fiber.Ctx, err error) error {
	status, errorType := StatusForError(err)
	message := err.Error()
	var custom *types.CustomError
	if errors.As(err, &custom) {
		message = custom.Message
	}
	return ErrorResponse(c, message, status, errorType)
}

// StatusForError returns the HTTP status and error type for err.
func StatusForError(err error) (int, string) {
	var custom *types.CustomError
	var fe *fiber.Error
	switch {
	case errors.Is(err, types.ErrValidation):
		return fiber.StatusBadRequest, "validation"
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound, "notfound"
	case errors.Is(err, types.ErrStorage):
		return fiber.StatusInternalServerError, "storage"
	case errors.As(err, &custom):
		return custom.Code, custom.Type
	case errors.As(err, &fe):
		return fe.Code, "http"
	default:
		return fiber.StatusInternalServerError, "unknown"
	}
}

// MutationSuccessResponse sends a success response for deletes
func MutationSuccessResponse(c *fiber.Ctx, affectedID string) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:   "Success",
		Ok:        true,
		ID:        affectedID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for mutation success responses
type SuccessResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}
