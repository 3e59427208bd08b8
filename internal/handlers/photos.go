package handlers

import (
	"net/http"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PhotosOfUserHandler returns the photos of user :id with comment authors inlined
func PhotosOfUserHandler(photoService *services.PhotoService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		photos, err := photoService.ListPhotosWithAuthors(c.UserContext(), principalFrom(c), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(photos)
	}
}

// AddCommentHandler appends a comment by the authenticated user to :photo_id
func AddCommentHandler(commentService *services.CommentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.NewCommentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		}

		comment, err := commentService.AddComment(c.UserContext(), principalFrom(c), c.Params("photo_id"), req.Comment)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(comment)
	}
}
