// handlers/quests.go
package handlers

import (
	"eduventure/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetRoutes returns the route catalog as loaded into the caller's session
func (h *Handlers) GetRoutes(c *fiber.Ctx) error {
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
		"routes":  snap.Routes,
	})
}

// CompleteModule marks a quest module defeated and returns the updated
// snapshot. An unknown or already-completed module id changes nothing; the
// response reflects whatever the session holds afterwards.
func (h *Handlers) CompleteModule(c *fiber.Ctx) error {
	knightID, err := middleware.GetKnightID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	moduleID := c.Params("id")
	if moduleID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Module ID required"})
	}

	engine, err := h.sessions.Engine(knightID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Knight not found"})
	}

	if err := engine.CompleteModule(moduleID); err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to complete module"})
	}

	snap := engine.Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"knight":  snap.Knight,
		"routes":  snap.Routes,
	})
}
