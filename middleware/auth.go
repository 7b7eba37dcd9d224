package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"crmdesk/config"
	"crmdesk/models"
	"crmdesk/utils"
)

// Protected authenticates the request from the auth-token cookie (or a Bearer
// header) and loads the account into request locals.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authorization format", nil)
			}
			token = tokenParts[1]
		} else {
			token = c.Cookies(utils.AuthCookieName)
			if token == "" {
				return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authorization required", nil)
			}
		}

		claims, err := utils.ParseJWTToken(token)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid or expired token", nil)
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "User not found", nil)
		}

		if user.Status != models.UserStatusActive {
			return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Account is not active", nil)
		}

		c.Locals("user", &user)
		c.Locals("userID", user.ID)

		return c.Next()
	}
}

// RequireRole gates a route group to the given dashboard roles. Admin is not
// implicitly allowed; list it where intended.
func RequireRole(roles ...models.UserRole) fiber.Handler {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*models.User)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Authorization required", nil)
		}
		if _, ok := allowed[user.Role]; !ok {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "The requested resource was not found", nil)
		}
		return c.Next()
	}
}
