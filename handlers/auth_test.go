// handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eduventure/middleware"
	"eduventure/models"
	"eduventure/services"
	"eduventure/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KnightProfile{}, &models.LearningRoute{}))

	st := store.New(db)
	route := models.LearningRoute{
		ID:         models.StarterRouteID,
		RouteName:  "The Path of Numbers",
		IsUnlocked: true,
		Modules: datatypes.JSONSlice[models.QuestModule]{
			{ID: "m1", ModuleNumber: 1, EnemyName: "Goblin", XPReward: 50},
			{ID: "m2", ModuleNumber: 2, EnemyName: "Troll", XPReward: 75},
		},
	}
	require.NoError(t, st.Routes.InsertIfAbsent([]models.LearningRoute{route}))

	sessions := services.NewSessionRegistry(st, time.Hour)
	h := New(st, sessions)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	app.Post("/api/auth/logout", middleware.AuthMiddleware, h.Logout)
	app.Post("/api/auth/change-password", middleware.AuthMiddleware, h.ChangePassword)
	app.Get("/api/knights/me", middleware.AuthMiddleware, h.GetCurrentKnight)
	app.Put("/api/knights/me", middleware.AuthMiddleware, h.UpdateProfile)
	app.Get("/api/routes", middleware.AuthMiddleware, h.GetRoutes)
	app.Post("/api/modules/:id/complete", middleware.AuthMiddleware, h.CompleteModule)
	app.Get("/api/leaderboard", h.GetLeaderboard)
	app.Get("/api/teacher/class-stats", h.GetClassStats)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)

	var parsed map[string]interface{}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &parsed))
	return resp, parsed
}

func registerKnight(t *testing.T, app *fiber.App, studentID string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", RegisterRequest{
		StudentID:  studentID,
		Password:   "pw123456",
		KnightName: "Sir " + studentID,
	})
	require.Equal(t, 200, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndFetchProfile(t *testing.T) {
	app := newTestApp(t)
	token := registerKnight(t, app, "STU100")

	resp, body := doJSON(t, app, "GET", "/api/knights/me", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	knight := body["knight"].(map[string]interface{})
	assert.Equal(t, "STU100", knight["login_id"])
	assert.Equal(t, "Sir STU100", knight["knight_name"])
	assert.Equal(t, string(models.RankNovice), knight["rank"])
	assert.Equal(t, float64(0), knight["total_xp"])
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", RegisterRequest{
		StudentID: "STU100",
		Password:  "short",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = doJSON(t, app, "POST", "/api/auth/register", "", RegisterRequest{
		Password: "pw123456",
	})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestRegisterDuplicateStudentID(t *testing.T) {
	app := newTestApp(t)
	registerKnight(t, app, "STU100")

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", RegisterRequest{
		StudentID: "STU100",
		Password:  "pw123456",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Student ID already exists", body["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	registerKnight(t, app, "STU100")

	resp, body := doJSON(t, app, "POST", "/api/auth/login", "", LoginRequest{
		StudentID: "STU100",
		Password:  "wrong-password",
	})
	assert.Equal(t, 401, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestCompleteModuleEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerKnight(t, app, "STU100")

	resp, body := doJSON(t, app, "POST", "/api/modules/m1/complete", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	knight := body["knight"].(map[string]interface{})
	assert.Equal(t, float64(50), knight["total_xp"])
	assert.Equal(t, "Iron Sword", knight["equipped_weapon"])

	routes := body["routes"].([]interface{})
	require.Len(t, routes, 1)
	modules := routes[0].(map[string]interface{})["modules"].([]interface{})
	assert.Equal(t, true, modules[0].(map[string]interface{})["is_completed"])

	// Unknown module ids change nothing.
	resp, body = doJSON(t, app, "POST", "/api/modules/nope/complete", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	knight = body["knight"].(map[string]interface{})
	assert.Equal(t, float64(50), knight["total_xp"])
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest("GET", "/api/knights/me", nil)
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/knights/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err = app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestChangePasswordEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerKnight(t, app, "STU100")

	resp, body := doJSON(t, app, "POST", "/api/auth/change-password", token, ChangePasswordRequest{
		OldPassword: "wrong-old",
		NewPassword: "brand-new-pw",
	})
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Incorrect old password", body["error"])

	resp, _ = doJSON(t, app, "POST", "/api/auth/change-password", token, ChangePasswordRequest{
		OldPassword: "pw123456",
		NewPassword: "brand-new-pw",
	})
	assert.Equal(t, 200, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/login", "", LoginRequest{
		StudentID: "STU100",
		Password:  "brand-new-pw",
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestLogoutThenRestore(t *testing.T) {
	app := newTestApp(t)
	token := registerKnight(t, app, "STU100")

	resp, _ := doJSON(t, app, "POST", "/api/auth/logout", token, nil)
	assert.Equal(t, 200, resp.StatusCode)

	// The token is still valid; the session is restored from the store.
	resp, body := doJSON(t, app, "GET", "/api/knights/me", token, nil)
	assert.Equal(t, 200, resp.StatusCode)
	knight := body["knight"].(map[string]interface{})
	assert.Equal(t, "STU100", knight["login_id"])
}

func TestLeaderboardOrdering(t *testing.T) {
	app := newTestApp(t)
	alpha := registerKnight(t, app, "STU101")
	registerKnight(t, app, "STU102")

	// STU101 earns XP; STU102 stays at zero.
	resp, _ := doJSON(t, app, "POST", "/api/modules/m1/complete", alpha, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/leaderboard?limit=10", "", nil)
	assert.Equal(t, 200, resp.StatusCode)

	knights := body["knights"].([]interface{})
	require.Len(t, knights, 2)
	first := knights[0].(map[string]interface{})
	assert.Equal(t, "STU101", first["login_id"])
	assert.Equal(t, float64(50), first["total_xp"])
}

func TestClassStatsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := registerKnight(t, app, "STU100")

	resp, _ := doJSON(t, app, "POST", "/api/modules/m1/complete", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/teacher/class-stats", "", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), body["total_knights"])
	assert.Equal(t, float64(50), body["average_xp"])
	assert.Equal(t, float64(1), body["modules_completed"])
}
