package handlers

import (
	"photoshare-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// GetUserHandler returns the public profile of user :id
func GetUserHandler(userService *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := userService.GetProfile(c.UserContext(), principalFrom(c), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(u)
	}
}
