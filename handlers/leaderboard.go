// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"eduventure/models"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the top knights by total XP
// GET /api/leaderboard?limit=10&region=North+Kingdom
func (h *Handlers) GetLeaderboard(c *fiber.Ctx) error {
	limit := clampInt(parseIntDefault(c.Query("limit"), 10), 1, 100)
	region := c.Query("region")

	var (
		knights []models.KnightProfile
		err     error
	)
	if region != "" {
		knights, err = h.store.Knights.ListTopByRegion(region, limit)
	} else {
		knights, err = h.store.Knights.ListTopByExperience(limit)
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch leaderboard",
		})
	}

	total, _ := h.store.Knights.Count()

	return c.JSON(fiber.Map{
		"success": true,
		"knights": knights,
		"total":   total,
		"limit":   limit,
		"region":  region,
	})
}

// Helpers shared by the read-only query handlers.

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
