// handlers/auth.go
package handlers

import (
	"errors"
	"time"

	"eduventure/game"
	"eduventure/middleware"
	"eduventure/models"
	"eduventure/services"
	"eduventure/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Handlers carries the explicitly injected dependencies shared by all
// endpoint handlers.
type Handlers struct {
	store    *store.Store
	sessions *services.SessionRegistry
}

func New(st *store.Store, sessions *services.SessionRegistry) *Handlers {
	return &Handlers{store: st, sessions: sessions}
}

type RegisterRequest struct {
	StudentID  string `json:"student_id"`
	Password   string `json:"password"`
	KnightName string `json:"knight_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AuthResponse struct {
	Success bool                  `json:"success"`
	Token   string                `json:"token,omitempty"`
	Knight  *models.KnightProfile `json:"knight,omitempty"`
	Error   string                `json:"error,omitempty"`
}

// Register creates a new knight account and opens a session
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if req.StudentID == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Student ID and password required"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Password must be at least 6 characters"})
	}
	if req.KnightName == "" {
		req.KnightName = req.StudentID
	}

	engine := game.NewEngine(h.store)
	knight, err := engine.Register(req.StudentID, req.Password, req.KnightName, req.Email, req.Phone)
	if errors.Is(err, game.ErrLoginTaken) {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Student ID already exists"})
	}
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Registration failed"})
	}

	h.sessions.Attach(knight.ID, engine)

	token, err := generateToken(knight)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, Knight: knight})
}

// Login authenticates a knight and opens a session
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Invalid request body"})
	}

	if req.StudentID == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Success: false, Error: "Student ID and password required"})
	}

	engine := game.NewEngine(h.store)
	knight, err := engine.Login(req.StudentID, req.Password)
	if errors.Is(err, game.ErrInvalidCredentials) {
		return c.Status(401).JSON(AuthResponse{Success: false, Error: "Invalid credentials"})
	}
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Login failed"})
	}

	h.sessions.Attach(knight.ID, engine)

	token, err := generateToken(knight)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Success: false, Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, Knight: knight})
}

// Logout closes the knight's session. Idempotent.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	knightID, err := middleware.GetKnightID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	h.sessions.Remove(knightID)

	return c.JSON(fiber.Map{"success": true})
}

// ChangePassword verifies the old password before storing the new one
func (h *Handlers) ChangePassword(c *fiber.Ctx) error {
	knightID, err := middleware.GetKnightID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Password must be at least 6 characters"})
	}

	engine, err := h.sessions.Engine(knightID)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Session not found"})
	}

	switch err := engine.ChangePassword(req.OldPassword, req.NewPassword); {
	case errors.Is(err, game.ErrIncorrectPassword):
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Incorrect old password"})
	case errors.Is(err, game.ErrNotLoggedIn):
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Not logged in"})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to change password"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// Helper functions

func generateToken(knight *models.KnightProfile) (string, error) {
	claims := jwt.MapClaims{
		"knight_id": knight.ID,
		"login_id":  knight.LoginID,
		"exp":       time.Now().Add(time.Hour * 720).Unix(), // 30 days
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(middleware.JWTSecret()))
}
