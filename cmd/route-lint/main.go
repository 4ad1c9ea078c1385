package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"eduventure/models"
)

// Validates route JSON files before they are imported: module ids must be
// unique, module numbers sequential from 1, XP rewards positive, and the
// boss module (if any) must come last.

func main() {
	pattern := "./routes/*.json"
	if len(os.Args) > 1 {
		pattern = os.Args[1]
	}

	files, err := filepath.Glob(pattern)
	if err != nil {
		fmt.Println("error: bad glob pattern:", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("no route files match %s\n", pattern)
		return
	}

	exitCode := 0
	for _, f := range files {
		if problems := lintFile(f); len(problems) > 0 {
			for _, p := range problems {
				fmt.Printf("%s: %s\n", f, p)
			}
			exitCode = 1
		} else {
			fmt.Printf("%s: OK\n", f)
		}
	}
	os.Exit(exitCode)
}

func lintFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{fmt.Sprintf("read error: %v", err)}
	}

	var routes []models.LearningRoute
	if err := json.Unmarshal(data, &routes); err != nil {
		var one models.LearningRoute
		if err2 := json.Unmarshal(data, &one); err2 != nil {
			return []string{fmt.Sprintf("parse error: %v", err)}
		}
		routes = []models.LearningRoute{one}
	}

	var problems []string
	for _, route := range routes {
		problems = append(problems, lintRoute(route)...)
	}
	return problems
}

func lintRoute(route models.LearningRoute) []string {
	var problems []string

	if route.ID == "" {
		problems = append(problems, "route has empty id")
	}
	if route.RouteName == "" {
		problems = append(problems, fmt.Sprintf("route %s has empty name", route.ID))
	}
	if len(route.Modules) == 0 {
		problems = append(problems, fmt.Sprintf("route %s has no modules", route.ID))
		return problems
	}

	seen := make(map[string]bool)
	for i, m := range route.Modules {
		if m.ID == "" {
			problems = append(problems, fmt.Sprintf("route %s module %d has empty id", route.ID, i+1))
			continue
		}
		if seen[m.ID] {
			problems = append(problems, fmt.Sprintf("route %s has duplicate module id %s", route.ID, m.ID))
		}
		seen[m.ID] = true

		if m.ModuleNumber != i+1 {
			problems = append(problems, fmt.Sprintf("route %s module %s has number %d, expected %d", route.ID, m.ID, m.ModuleNumber, i+1))
		}
		if m.XPReward <= 0 {
			problems = append(problems, fmt.Sprintf("route %s module %s has non-positive xp reward %d", route.ID, m.ID, m.XPReward))
		}
		if m.EnemyName == "" {
			problems = append(problems, fmt.Sprintf("route %s module %s has no enemy name", route.ID, m.ID))
		}
		if m.IsBoss && i != len(route.Modules)-1 {
			problems = append(problems, fmt.Sprintf("route %s boss module %s is not the last module", route.ID, m.ID))
		}
	}

	return problems
}
