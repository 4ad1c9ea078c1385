// game/badges.go
package game

import (
	"time"

	"eduventure/models"
)

// Milestone badges, earned by distinct defeated-enemy count. Badges are
// cosmetic: they carry no XP, so rank stays driven by module rewards alone.
var badgeMilestones = []struct {
	count int
	badge models.Badge
}{
	{1, models.Badge{ID: "first_quest", Name: "First Steps", Description: "Complete your first quest", Icon: "🎯"}},
	{5, models.Badge{ID: "quest_warrior", Name: "Quest Warrior", Description: "Complete 5 quests", Icon: "⚔️"}},
	{10, models.Badge{ID: "quest_master", Name: "Quest Master", Description: "Complete 10 quests", Icon: "👑"}},
}

// awardMilestoneBadges appends any newly earned milestone badges to the
// knight. The caller persists the profile.
func awardMilestoneBadges(k *models.KnightProfile) {
	defeated := len(k.DefeatedEnemies)
	now := time.Now().UnixMilli()
	for _, m := range badgeMilestones {
		if defeated >= m.count && !k.HasBadge(m.badge.ID) {
			b := m.badge
			b.UnlockedAt = now
			k.Badges = append(k.Badges, b)
		}
	}
}
