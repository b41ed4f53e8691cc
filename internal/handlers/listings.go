package handlers

import (
	"errors"
	"net/http"

	"thriftlink-backend/internal/errs"
	"thriftlink-backend/internal/models"
	"thriftlink-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CreateListing handles POST /createListing.
func CreateListing(users *services.UserService, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateListingRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if fields := validateStruct(req.Credentials); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing authentication fields", "fields": fields})
		}
		if fields := validateStruct(req); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Missing required listing fields", "fields": fields})
		}

		userID, err := users.Authenticate(c.Context(), req.Email, req.Password)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		id, err := listings.Create(c.Context(), userID, req)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Listing created successfully", "listing_id": id})
	}
}

// UpdateListing handles PUT /updateListing: a partial update of an owned
// listing's title, price and/or description.
func UpdateListing(users *services.UserService, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UpdateListingRequest
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

		if err := listings.Update(c.Context(), userID, req.ListingID, req.ListingPatch); err != nil {
			switch {
			case errors.Is(err, errs.ErrNothingToUpdate):
				return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Nothing to update"})
			case errors.Is(err, errs.ErrNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
			case errors.Is(err, errs.ErrForbidden):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "You do not own this listing"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(fiber.Map{"message": "Listing updated successfully"})
	}
}

// DeactivateListing handles DELETE /deleteListing: the soft delete. Repeating
// it on an already-inactive listing succeeds without writing.
func DeactivateListing(users *services.UserService, listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DeleteListingRequest
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

		alreadyInactive, err := listings.Deactivate(c.Context(), userID, req.ListingID)
		if err != nil {
			switch {
			case errors.Is(err, errs.ErrNotFound):
				return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
			case errors.Is(err, errs.ErrForbidden):
				return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": "You do not own this listing"})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		if alreadyInactive {
			return c.JSON(fiber.Map{"message": "Listing is already inactive"})
		}
		return c.JSON(fiber.Map{"message": "Listing status changed to 'inactive'"})
	}
}

// GetListings handles GET /getListings: all active listings created within
// the requested window, with owners and photos embedded.
func GetListings(listings *services.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ListingWindow
		if err := c.QueryParser(&req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		if req.StartTime == "" || req.EndTime == "" {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "Missing required query parameters: startTime, endTime",
			})
		}
		if fields := validateStruct(req); fields != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error":  "Invalid startTime or endTime format, expected YYYY-MM-DD HH:MM:SS",
				"fields": fields,
			})
		}

		views, err := listings.ListActive(c.Context(), req.StartTime, req.EndTime)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(views)
	}
}
