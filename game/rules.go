// game/rules.go
package game

import "eduventure/models"

// Rank thresholds, ascending, inclusive lower bounds.
const (
	xpForSquire = 100
	xpForKnight = 300
	xpForHero   = 600
)

// Weapon tier names.
const (
	WeaponWooden  = "Wooden Sword"
	WeaponIron    = "Iron Sword"
	WeaponGolden  = "Golden Sword"
	WeaponDiamond = "Diamond Sword"
)

// RankFor returns the highest rank whose XP threshold is met. XP is never
// decremented by any operation, so rank never decreases.
func RankFor(xp int) models.KnightRank {
	switch {
	case xp >= xpForHero:
		return models.RankHero
	case xp >= xpForKnight:
		return models.RankKnight
	case xp >= xpForSquire:
		return models.RankSquire
	default:
		return models.RankNovice
	}
}

// WeaponFor maps the distinct defeated-enemy count to the equipped weapon.
// It re-derives from the current count rather than incrementing a tier, so
// it self-corrects if the count is ever adjusted externally.
func WeaponFor(defeatedCount int) string {
	switch {
	case defeatedCount >= 5:
		return WeaponDiamond
	case defeatedCount >= 3:
		return WeaponGolden
	case defeatedCount >= 1:
		return WeaponIron
	default:
		return WeaponWooden
	}
}
