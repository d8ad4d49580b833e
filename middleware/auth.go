package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

// JWTSecret returns the token signing key.
func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "fallback_secret"
	}
	return []byte(secret)
}

// Protected validates the bearer token and stores the caller's identity in
// request locals (userID, username, role, accountType).
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   JWTSecret(),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "No authentication token, access denied",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Token is not valid",
				})
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Token is not valid",
				})
			}

			c.Locals("userID", userID)
			if username, ok := claims["username"].(string); ok {
				c.Locals("username", username)
			}
			if role, ok := claims["role"].(string); ok {
				c.Locals("role", role)
			}
			if accountType, ok := claims["type"].(string); ok {
				c.Locals("accountType", accountType)
			}
			return c.Next()
		},
	})
}

// RequireAdmin allows only administrative callers through. The role set is
// closed: admin and rector pass, member and editor do not.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		switch role {
		case "admin", "rector":
			return c.Next()
		default:
			// member, editor or missing role
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Access denied. Admin or Rector only.",
			})
		}
	}
}

// extractUserID handles the formats a numeric ID can take in decoded claims.
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Invalid or expired token",
	})
}
