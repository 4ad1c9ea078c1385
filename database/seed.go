// database/seed.go - Default Content Seeding
package database

import (
	"log"
	"time"

	"eduventure/models"
	"eduventure/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// SeedDefaultContent inserts the starter route and the demo leaderboard
// accounts, each only when its table is empty. InsertIfAbsent itself is not
// idempotent; the emptiness check here is what keeps first-run seeding safe.
func SeedDefaultContent(st *store.Store) error {
	routeCount, err := st.Routes.Count()
	if err != nil {
		return err
	}
	if routeCount == 0 {
		log.Println("Seeding default learning routes...")
		if err := st.Routes.InsertIfAbsent(DefaultRoutes()); err != nil {
			return err
		}
	}

	knightCount, err := st.Knights.Count()
	if err != nil {
		return err
	}
	if knightCount == 0 {
		log.Println("Seeding demo knight accounts...")
		for _, k := range demoKnights() {
			if err := st.Knights.Insert(&k); err != nil {
				return err
			}
		}
	}

	return nil
}

// DefaultRoutes returns the built-in route catalog.
func DefaultRoutes() []models.LearningRoute {
	return []models.LearningRoute{mathRoute()}
}

func mathRoute() models.LearningRoute {
	return models.LearningRoute{
		ID:              models.StarterRouteID,
		Subject:         "Mathematics",
		RouteName:       "The Path of Numbers",
		Description:     "Journey through the mystical realm of mathematics and defeat the dark forces that threaten the kingdom!",
		BackgroundTheme: models.ThemeMystic,
		FinalBoss:       "The Demon Lord of Mathematics",
		IsUnlocked:      true,
		Modules: datatypes.JSONSlice[models.QuestModule]{
			{
				ID:               "math_module_1",
				ModuleNumber:     1,
				Title:            "Module 1: Sets",
				Topic:            "Sets - The Foundation",
				EnemyName:        "The Necromancer of Sets",
				EnemyDescription: "The Necromancer of Sets has been raiding the village, capturing townsfolk in his mysterious collections. Complete this module to save the villagers and learn the ancient art of Sets!",
				EnemyLevel:       5,
				XPReward:         50,
				VideoURL:         "https://www.youtube.com/embed/jKUpw3TyjHI",
				VideoStartTime:   0,
				VideoEndTime:     intPtr(1008),
			},
			{
				ID:               "math_module_2",
				ModuleNumber:     2,
				Title:            "Module 2: Relations and Functions",
				Topic:            "Relations and Functions",
				EnemyName:        "The Sorceress of Relations",
				EnemyDescription: "The Sorceress has cursed the land, breaking all connections between the kingdoms. Master Relations and Functions to restore harmony and defeat her dark magic!",
				EnemyLevel:       10,
				XPReward:         75,
				VideoURL:         "PASTE_YOUTUBE_URL_HERE_FOR_RELATIONS",
			},
			{
				ID:               "math_module_3",
				ModuleNumber:     3,
				Title:            "Module 3: Trigonometric Functions",
				Topic:            "Trigonometric Functions",
				EnemyName:        "The Triangle Titan",
				EnemyDescription: "A colossal Titan made of triangles terrorizes the mountain pass. Learn the secrets of Trigonometric Functions to measure your way to victory!",
				EnemyLevel:       15,
				XPReward:         100,
				VideoURL:         "PASTE_YOUTUBE_URL_HERE_FOR_TRIGONOMETRY",
			},
			{
				ID:               "math_module_4",
				ModuleNumber:     4,
				Title:            "Module 4: Complex Numbers",
				Topic:            "Complex Numbers",
				EnemyName:        "The Phantom of Imaginary Realm",
				EnemyDescription: "A ghostly Phantom dwells in the realm between real and imaginary. Unravel the mysteries of Complex Numbers to banish this spectral menace!",
				EnemyLevel:       20,
				XPReward:         125,
				VideoURL:         "PASTE_YOUTUBE_URL_HERE_FOR_COMPLEX_NUMBERS",
			},
			{
				ID:               "math_module_5",
				ModuleNumber:     5,
				Title:            "Module 5: Quadratic Functions",
				Topic:            "Quadratic Functions",
				EnemyName:        "The Parabola Dragon",
				EnemyDescription: "A mighty Dragon whose flight path curves through the sky. Master Quadratic Functions to predict its movements and strike it down!",
				EnemyLevel:       25,
				XPReward:         150,
				VideoURL:         "PASTE_YOUTUBE_URL_HERE_FOR_QUADRATIC",
			},
			{
				ID:               "math_module_6",
				ModuleNumber:     6,
				Title:            "Module 6: Linear Inequalities",
				Topic:            "Linear Inequalities",
				EnemyName:        "The Demon Lord of Mathematics",
				EnemyDescription: "The ultimate evil has risen! The Demon Lord of Mathematics threatens to plunge the world into eternal darkness. Complete this final module and master Linear Inequalities to bring back light to the world!",
				EnemyLevel:       30,
				XPReward:         200,
				VideoURL:         "PASTE_YOUTUBE_URL_HERE_FOR_LINEAR_INEQUALITIES",
				IsBoss:           true,
			},
		},
	}
}

type demoKnight struct {
	id       string
	loginID  string
	name     string
	rank     models.KnightRank
	xp       int
	defeated []string
	weapon   string
	armor    string
	email    string
	phone    string
	region   string
}

// demoKnights builds the ten demo leaderboard accounts. All of them share
// the password "password123".
func demoKnights() []models.KnightProfile {
	seeds := []demoKnight{
		{"1", "STU001", "Arthur Pendragon", models.RankHero, 850,
			[]string{"Necromancer", "Sorceress", "Titan", "Phantom", "Dragon", "Demon Lord"},
			"Diamond Sword", "Legendary Armor", "arthur@example.com", "123-456-7890", "North Kingdom"},
		{"2", "STU002", "Lancelot the Brave", models.RankKnight, 520,
			[]string{"Necromancer", "Sorceress", "Titan"},
			"Golden Sword", "Steel Armor", "lancelot@example.com", "", "East Empire"},
		{"3", "STU003", "Guinevere", models.RankKnight, 480,
			[]string{"Necromancer", "Sorceress", "Titan"},
			"Golden Sword", "Enchanted Robes", "guin@example.com", "", "West Realm"},
		{"4", "STU004", "Merlin the Wise", models.RankSquire, 280,
			[]string{"Necromancer", "Sorceress"},
			"Iron Sword", "Mage Robes", "", "", "South Dominion"},
		{"5", "STU005", "Gawain", models.RankSquire, 245,
			[]string{"Necromancer", "Sorceress"},
			"Iron Sword", "Leather Armor", "", "", "North Kingdom"},
		{"6", "STU006", "Tristan", models.RankSquire, 220,
			[]string{"Necromancer"},
			"Iron Sword", "Leather Armor", "", "", "East Empire"},
		{"7", "STU007", "Isolde", models.RankSquire, 180,
			[]string{"Necromancer"},
			"Iron Sword", "Cloth Armor", "", "", "West Realm"},
		{"8", "STU008", "Percival", models.RankNovice, 85,
			nil, "Wooden Sword", "Cloth Armor", "", "", "South Dominion"},
		{"9", "STU009", "Galahad", models.RankNovice, 60,
			nil, "Wooden Sword", "Leather Armor", "", "", "North Kingdom"},
		{"10", "STU010", "Bedivere", models.RankNovice, 40,
			nil, "Wooden Sword", "Cloth Armor", "", "", "East Empire"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	now := time.Now()
	knights := make([]models.KnightProfile, 0, len(seeds))
	for _, s := range seeds {
		knights = append(knights, models.KnightProfile{
			ID:              s.id,
			LoginID:         s.loginID,
			PasswordHash:    string(hash),
			KnightName:      s.name,
			Email:           s.email,
			PhoneNumber:     s.phone,
			Region:          s.region,
			Rank:            s.rank,
			TotalXP:         s.xp,
			CurrentHP:       models.StartingHP,
			MaxHP:           models.StartingHP,
			EquippedWeapon:  s.weapon,
			EquippedArmor:   s.armor,
			DefeatedEnemies: datatypes.JSONSlice[string](append([]string{}, s.defeated...)),
			UnlockedRoutes:  datatypes.JSONSlice[string]{models.StarterRouteID},
			Badges:          datatypes.JSONSlice[models.Badge]{},
			CreatedAt:       now,
			LastLogin:       now,
		})
	}
	return knights
}

func intPtr(v int) *int {
	return &v
}
