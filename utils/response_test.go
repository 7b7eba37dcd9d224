package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		page, limit, offset := ParsePagination(c)
		return c.JSON(fiber.Map{"page": page, "limit": limit, "offset": offset})
	})
	return app
}

func getPagination(t *testing.T, app *fiber.App, query string) (page, limit, offset int) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", "/"+query, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out struct {
		Page   int `json:"page"`
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Page, out.Limit, out.Offset
}

func TestParsePaginationDefaults(t *testing.T) {
	app := paginationApp(t)

	page, limit, offset := getPagination(t, app, "")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)
}

func TestParsePaginationOffset(t *testing.T) {
	app := paginationApp(t)

	page, limit, offset := getPagination(t, app, "?page=3&limit=25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)
}

func TestParsePaginationClampsBadInput(t *testing.T) {
	app := paginationApp(t)

	page, limit, _ := getPagination(t, app, "?page=-2&limit=0")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)

	_, limit, _ = getPagination(t, app, "?limit=999999")
	assert.Equal(t, MaxPageSize, limit)

	page, limit, _ = getPagination(t, app, "?page=abc&limit=xyz")
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestSuccessResponseEnvelope(t *testing.T) {
	env := SuccessResponse(fiber.Map{"hello": "world"})

	assert.Equal(t, CodeOK, env.ErrorCode)
	assert.Empty(t, env.ErrorMessage)
	assert.NotNil(t, env.Data)
}

func TestErrorResponseEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusNotFound, CodeNotFound, "Client not found", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, CodeNotFound, env.ErrorCode)
	assert.Equal(t, "Client not found", env.ErrorMessage)
}

func TestErrorResponseFallbackMessage(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return ErrorResponse(c, fiber.StatusBadRequest, CodeBadRequest, "", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "Unknown error", env.ErrorMessage)
}
