// handlers/teacher.go
package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// GetClassStats returns aggregate progression statistics for the teacher
// dashboard: knight count, average XP, rank distribution and per-module
// completion state.
func (h *Handlers) GetClassStats(c *fiber.Ctx) error {
	total, err := h.store.Knights.Count()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class stats"})
	}

	avgXP, err := h.store.Knights.AverageXP()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class stats"})
	}

	ranks, err := h.store.Knights.RankDistribution()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class stats"})
	}

	routes, err := h.store.Routes.ListAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch class stats"})
	}

	type moduleStat struct {
		RouteID   string `json:"route_id"`
		ModuleID  string `json:"module_id"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}

	modules := make([]moduleStat, 0)
	completedCount := 0
	for _, r := range routes {
		for _, m := range r.Modules {
			if m.IsCompleted {
				completedCount++
			}
			modules = append(modules, moduleStat{
				RouteID:   r.ID,
				ModuleID:  m.ID,
				Title:     m.Title,
				Completed: m.IsCompleted,
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"total_knights":     total,
		"average_xp":        avgXP,
		"rank_distribution": ranks,
		"modules":           modules,
		"modules_completed": completedCount,
	})
}
