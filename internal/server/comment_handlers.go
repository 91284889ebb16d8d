package server

import (
	"devlink/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/posts/comment/:id
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id", "Post not found")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comments, err := s.commentService.AddComment(c.Context(), currentUserID(c), postID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:postId/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId", "Post not found")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId", "Comment does not exist")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.RemoveComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
