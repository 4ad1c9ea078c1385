package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"eduventure/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Imports learning routes from a JSON file into the local sqlite database.
// Existing routes with the same id are replaced, so the file can be re-run
// after editing module content.
//
//	go run ./cmd/route-importer routes/math_route.json

func main() {
	jsonPath := "./routes/math_route.json"
	if len(os.Args) > 1 {
		jsonPath = os.Args[1]
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/eduventure.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.LearningRoute{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var routes []models.LearningRoute
	if err := json.Unmarshal(data, &routes); err != nil {
		// Accept a single route object as well as an array.
		var one models.LearningRoute
		if err2 := json.Unmarshal(data, &one); err2 != nil {
			log.Fatal("Failed to parse JSON:", err)
		}
		routes = []models.LearningRoute{one}
	}

	fmt.Printf("Found %d route(s) in %s\n\n", len(routes), jsonPath)

	imported := 0
	for _, route := range routes {
		if route.ID == "" {
			log.Printf("Skipping route with empty id (name %q)\n", route.RouteName)
			continue
		}
		fmt.Printf("Importing: %s (%d modules)\n", route.RouteName, len(route.Modules))
		if err := db.Save(&route).Error; err != nil {
			log.Printf("Error importing route %s: %v\n", route.ID, err)
			continue
		}
		imported++
	}

	fmt.Printf("\n✅ Imported %d route(s) into %s\n", imported, dbPath)
}
