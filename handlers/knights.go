// handlers/knights.go
package handlers

import (
	"errors"

	"eduventure/game"
	"eduventure/middleware"

	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	KnightName string `json:"knight_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// GetCurrentKnight returns the live session snapshot for the caller
func (h *Handlers) GetCurrentKnight(c *fiber.Ctx) error {
	knightID, err := middleware.GetKnightID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	engine, err := h.sessions.Engine(knightID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Knight not found"})
	}

	snap := engine.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"knight":  snap.Knight,
	})
}

// UpdateProfile edits the display name and contact fields
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	knightID, err := middleware.GetKnightID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.KnightName == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Knight name required"})
	}

	engine, err := h.sessions.Engine(knightID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Knight not found"})
	}

	if err := engine.UpdateProfile(req.KnightName, req.Email, req.Phone); err != nil {
		if errors.Is(err, game.ErrNotLoggedIn) {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not logged in"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update profile"})
	}

	snap := engine.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"knight":  snap.Knight,
	})
}
