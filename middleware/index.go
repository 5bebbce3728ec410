package middleware

import (
	"errors"
	"fmt"
	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected verifies the bearer token, re-loads the user and rejects tokens
// whose version no longer matches (password change, logout-all, suspension).
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := ""
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}

		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Missing token", errors.New("no token"))
		}

		jwtToken, err := helper.ParseToken(token)
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token", err)
		}

		claims, ok := jwtToken.Claims.(jwt.MapClaims)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token claims", nil)
		}

		userIdFloat, ok := claims["userId"].(float64)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token: missing user identifier", nil)
		}
		tokenVersion := float64(1)
		if v, ok := claims["tokenVersion"].(float64); ok {
			tokenVersion = v
		}

		var user model.User
		if err := database.DB.First(&user, uint(userIdFloat)).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Account not found", err)
		}

		if uint(tokenVersion) != user.TokenVersion {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token has been invalidated", errors.New("token version mismatch"))
		}

		if user.Status != constants.USER_ACTIVE {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_NOT_ACTIVE, errors.New("status "+user.Status))
		}

		c.Locals("currentUser", &user)
		return c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated user's
// role is on the allow-list.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := helper.CurrentUser(c)
		if user == nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", nil)
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		helper.Audit(c, &user.ID, "permission_denied", false, map[string]any{
			"path":     c.Path(),
			"required": strings.Join(roles, ","),
			"role":     user.Role,
		})
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.PERMISSION_DENIED,
			fmt.Errorf("required roles: %s, your role: %s", strings.Join(roles, ", "), user.Role))
	}
}
