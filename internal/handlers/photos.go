package handlers

import (
	"errors"
	"net/http"

	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"
	"thriftlink-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AddListingPhoto handles PUT /addListingPhoto. The photo is attached to a
// listing the caller must own.
func AddListingPhoto(users *services.UserService, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AddListingPhotoRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if fields := validateStruct(req); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields", "fields": fields})
		}

		userID, err := users.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		id, err := listings.AddPhoto(c.Context(), userID, req.ListingID, req.PhotoURL)
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
			case errors.Is(err, errs.ErrForbidden):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "You do not own this listing"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Photo added successfully", "photo_id": id})
	}
}

// DeleteListingPhoto handles DELETE /deleteListingPhoto. Deletion is hard;
// the row is removed.
func DeleteListingPhoto(users *services.UserService, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DeleteListingPhotoRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if fields := validateStruct(req); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields", "fields": fields})
		}

		userID, err := users.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		if err := listings.DeletePhoto(c.Context(), userID, req.PhotoID); err != nil {
			switch {
			case errors.Is(err, errs.ErrNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Photo not found"})
			case errors.Is(err, errs.ErrForbidden):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "You do not own this listing's photo"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"message": "Photo deleted successfully"})
	}
}
