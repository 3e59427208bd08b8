package handlers

import (
	"errors"
	"net/http"

	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// writeError maps service errors onto HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	var aggErr *services.AggregationError
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrEmptyComment):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "comment is empty"})
	case errors.As(err, &aggErr) && errors.Is(aggErr.Kind, services.ErrAuthorResolutionFailed):
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":      "author resolution failed",
			"kind":       "AuthorResolutionFailed",
			"comment_id": aggErr.CommentID,
		})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage unavailable",
			"kind":  "StorageUnavailable",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// ErrorHandler renders errors returned from middleware as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
