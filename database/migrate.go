// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"eduventure/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.KnightProfile{},
		&models.LearningRoute{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes beyond what AutoMigrate declares
func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_knight_profiles_total_xp ON knight_profiles(total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_knight_profiles_region ON knight_profiles(region)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_knight_profiles_rank ON knight_profiles(rank)")
}
