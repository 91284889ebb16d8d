package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeAlreadyLiked = "ALREADY_LIKED"
	CodeNotLiked     = "NOT_LIKED"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse is the standardized API error payload.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Code   string   `json:"code,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// AppError is the application error type flowing from repositories and
// services up to the HTTP layer, which maps codes to statuses.
type AppError struct {
	Code    string
	Message string
	Fields  []string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a missing resource. Malformed identifiers are
// reported through the same constructor: the caller cannot distinguish a
// bad id from an absent record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewValidationError(message string, fields ...string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewAlreadyLikedError() *AppError {
	return &AppError{Code: CodeAlreadyLiked, Message: "Already liked the post"}
}

func NewNotLikedError() *AppError {
	return &AppError{Code: CodeNotLiked, Message: "User has not liked the post"}
}

// NewInternalError wraps an unexpected store or transport failure. The
// wrapped error is logged server-side but not detailed to the caller.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Err: err}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// RespondWithError writes the standardized error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error:  appErr.Message,
			Code:   appErr.Code,
			Fields: appErr.Fields,
		}
	} else {
		response = ErrorResponse{Error: err.Error()}
	}

	return c.Status(status).JSON(response)
}
