// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTSecret returns the signing secret. validateEnvironment in main fatals
// when it is unset, the fallback only exists for tests.
func JWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "eduventure-secret-change-in-production"
	}
	return secret
}

// AuthMiddleware validates the Bearer token and stores the knight identity
// in request locals.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	claims, err := parseToken(parts[1])
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	c.Locals("knightId", claims["knight_id"])
	c.Locals("loginId", claims["login_id"])

	return c.Next()
}

// WebSocketAuthMiddleware validates the token for WebSocket upgrades. The
// browser WebSocket API cannot set headers, so a ?token= query parameter and
// the token cookie are accepted as well.
func WebSocketAuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	if tokenString == "" {
		tokenString = c.Cookies("token")
	}
	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "Missing token"})
	}

	claims, err := parseToken(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	c.Locals("knightId", claims["knight_id"])
	c.Locals("loginId", claims["login_id"])

	return c.Next()
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(JWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(401, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fiber.NewError(401, "Invalid token claims")
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, fiber.NewError(401, "Token expired")
	}

	return claims, nil
}

// GetKnightID returns the authenticated knight's id from request locals.
func GetKnightID(c *fiber.Ctx) (string, error) {
	knightID := c.Locals("knightId")
	if knightID == nil {
		return "", fiber.NewError(401, "Not authenticated")
	}

	if id, ok := knightID.(string); ok && id != "" {
		return id, nil
	}

	return "", fiber.NewError(401, "Invalid knight ID format")
}
