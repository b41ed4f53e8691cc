package handlers

import (
	"errors"
	"net/http"

	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"
	"thriftlink-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /createUser. Registration needs no authentication.
func CreateUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if fields := validateStruct(req); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields", "fields": fields})
		}

		id, err := users.Register(c.Context(), req)
		if err != nil {
			if errors.Is(err, errs.ErrEmailTaken) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Email already in use"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "User created", "user_id": id})
	}
}

// UpdateUser handles PUT /updateUser: a partial update of the caller's own
// username and/or profile picture URL.
func UpdateUser(users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateUserRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if fields := validateStruct(req.Credentials); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required authentication fields", "fields": fields})
		}

		userID, err := users.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if err := users.UpdateProfile(c.Context(), userID, req.UserPatch); err != nil {
			if errors.Is(err, errs.ErrNothingToUpdate) {
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"message": "User updated successfully"})
	}
}
