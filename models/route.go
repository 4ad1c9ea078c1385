// models/route.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// RouteTheme is a cosmetic background theme for a learning route.
type RouteTheme string

const (
	ThemeForest   RouteTheme = "FOREST"
	ThemeMountain RouteTheme = "MOUNTAIN"
	ThemeDesert   RouteTheme = "DESERT"
	ThemeCastle   RouteTheme = "CASTLE"
	ThemeDungeon  RouteTheme = "DUNGEON"
	ThemeMystic   RouteTheme = "MYSTIC"
)

// QuestModule is one step of a learning route. Order is given by ModuleNumber,
// not by position in the containing slice.
type QuestModule struct {
	ID           string `json:"id"`
	ModuleNumber int    `json:"module_number"`
	Title        string `json:"title"`
	Topic        string `json:"topic"`

	// Narrative flavor only; EnemyLevel feeds no rule.
	EnemyName        string `json:"enemy_name"`
	EnemyDescription string `json:"enemy_description"`
	EnemyLevel       int    `json:"enemy_level"`

	XPReward int `json:"xp_reward"`

	// Pass-through video reference. VideoEndTime nil means play to the end.
	VideoURL       string `json:"video_url"`
	VideoStartTime int    `json:"video_start_time"`
	VideoEndTime   *int   `json:"video_end_time,omitempty"`

	IsCompleted bool `json:"is_completed"`
	IsBoss      bool `json:"is_boss"`
}

type LearningRoute struct {
	ID              string     `gorm:"primaryKey;size:50" json:"id"`
	Subject         string     `gorm:"size:100" json:"subject"`
	RouteName       string     `gorm:"size:100" json:"route_name"`
	Description     string     `gorm:"type:text" json:"description"`
	BackgroundTheme RouteTheme `gorm:"size:20" json:"background_theme"`
	FinalBoss       string     `gorm:"size:100" json:"final_boss"`
	IsUnlocked      bool       `gorm:"default:true" json:"is_unlocked"`

	Modules datatypes.JSONSlice[QuestModule] `json:"modules"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LearningRoute) TableName() string {
	return "learning_routes"
}

// Clone returns a deep copy of the route and its module list.
func (r LearningRoute) Clone() LearningRoute {
	c := r
	c.Modules = append(datatypes.JSONSlice[QuestModule]{}, r.Modules...)
	return c
}

// ModuleIndex returns the position of the module with the given id, or -1.
func (r LearningRoute) ModuleIndex(moduleID string) int {
	for i, m := range r.Modules {
		if m.ID == moduleID {
			return i
		}
	}
	return -1
}
