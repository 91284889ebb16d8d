package server

import (
	"errors"

	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. A value
// that does not parse is reported exactly like an absent record, with the
// given NotFound message, so callers cannot distinguish a malformed id
// from a missing one. On failure the response is already written and
// handlers should return nil.
func (s *Server) parseID(c *fiber.Ctx, param, notFoundMessage string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(notFoundMessage))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// statusForError maps an AppError code onto an HTTP status. Service-level
// UNAUTHORIZED means an ownership failure on an authenticated request,
// hence 403; the auth gate answers 401 directly before handlers run.
func statusForError(err error) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case models.CodeNotFound:
		return fiber.StatusNotFound
	case models.CodeValidation, models.CodeAlreadyLiked, models.CodeNotLiked:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

func respondServiceError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, statusForError(err), err)
}

func currentUserID(c *fiber.Ctx) uint {
	return c.Locals("userID").(uint)
}
