// models/knight.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// KnightRank is a student's rank tier. It is derived from total XP and must
// never be persisted out of sync with it.
type KnightRank string

const (
	RankNovice KnightRank = "NOVICE"
	RankSquire KnightRank = "SQUIRE"
	RankKnight KnightRank = "KNIGHT"
	RankHero   KnightRank = "HERO"
)

// Title returns the display title for a rank.
func (r KnightRank) Title() string {
	switch r {
	case RankSquire:
		return "Squire"
	case RankKnight:
		return "Knight"
	case RankHero:
		return "Hero"
	default:
		return "Novice"
	}
}

const (
	DefaultRegion  = "North Kingdom"
	StarterRouteID = "math_route"
	StartingHP     = 100
)

// Badge is a cosmetic award pinned to a knight profile.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	UnlockedAt  int64  `json:"unlocked_at"` // unix millis
}

type KnightProfile struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	LoginID      string `gorm:"uniqueIndex;not null;size:50" json:"login_id"`
	PasswordHash string `gorm:"not null" json:"-"`
	KnightName   string `gorm:"size:100" json:"knight_name"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	PhoneNumber  string `gorm:"size:50" json:"phone_number,omitempty"`
	Region       string `gorm:"size:50;default:'North Kingdom'" json:"region"`

	// Progression
	Rank           KnightRank `gorm:"size:20;default:'NOVICE'" json:"rank"`
	TotalXP        int        `gorm:"default:0" json:"total_xp"`
	CurrentHP      int        `gorm:"default:100" json:"current_hp"`
	MaxHP          int        `gorm:"default:100" json:"max_hp"`
	EquippedWeapon string     `gorm:"size:50;default:'Wooden Sword'" json:"equipped_weapon"`
	EquippedArmor  string     `gorm:"size:50;default:'Leather Armor'" json:"equipped_armor"`

	// Collections, stored as JSON columns (route and module content travel
	// with the owning row, they are not independently queryable).
	DefeatedEnemies datatypes.JSONSlice[string] `json:"defeated_enemies"`
	UnlockedRoutes  datatypes.JSONSlice[string] `json:"unlocked_routes"`
	Badges          datatypes.JSONSlice[Badge]  `json:"badges"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`
}

func (KnightProfile) TableName() string {
	return "knight_profiles"
}

// Clone returns a deep copy. Session state is mutated copy-and-replace, never
// in place, so every published snapshot is a wholly new value.
func (k KnightProfile) Clone() KnightProfile {
	c := k
	c.DefeatedEnemies = append(datatypes.JSONSlice[string]{}, k.DefeatedEnemies...)
	c.UnlockedRoutes = append(datatypes.JSONSlice[string]{}, k.UnlockedRoutes...)
	c.Badges = append(datatypes.JSONSlice[Badge]{}, k.Badges...)
	return c
}

// HasDefeated reports whether the enemy is already in the defeated set.
func (k KnightProfile) HasDefeated(enemy string) bool {
	for _, e := range k.DefeatedEnemies {
		if e == enemy {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge id has already been earned.
func (k KnightProfile) HasBadge(id string) bool {
	for _, b := range k.Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}
