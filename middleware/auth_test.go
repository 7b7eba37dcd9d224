package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/models"
	"crmdesk/utils"
)

func roleGateApp(role models.UserRole, required ...models.UserRole) *fiber.App {
	app := fiber.New()
	app.Get("/admin-only",
		func(c *fiber.Ctx) error {
			user := &models.User{Role: role}
			user.ID = 1
			c.Locals("user", user)
			return c.Next()
		},
		RequireRole(required...),
		func(c *fiber.Ctx) error {
			return c.JSON(utils.SuccessResponse("ok"))
		},
	)
	return app
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	app := roleGateApp(models.RoleAdmin, models.RoleAdmin)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

// Lower roles get 404, not 403, so gated sections stay invisible.
func TestRequireRoleHidesRouteFromOtherRoles(t *testing.T) {
	for _, role := range []models.UserRole{models.RoleSales, models.RoleDeveloper} {
		app := roleGateApp(role, models.RoleAdmin)

		resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(role))

		var env utils.Envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		resp.Body.Close()
		assert.Equal(t, utils.CodeNotFound, env.ErrorCode)
	}
}

func TestRequireRoleWithoutUser(t *testing.T) {
	app := fiber.New()
	app.Get("/admin-only", RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(utils.SuccessResponse("ok"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin-only", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Get("/private", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(utils.SuccessResponse("ok"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsMalformedAuthorizationHeader(t *testing.T) {
	app := fiber.New()
	app.Get("/private", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(utils.SuccessResponse("ok"))
	})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	var env utils.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	assert.Equal(t, utils.CodeUnauthorized, env.ErrorCode)
}

func TestProtectedRejectsGarbageToken(t *testing.T) {
	app := fiber.New()
	app.Get("/private", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(utils.SuccessResponse("ok"))
	})

	req := httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
